package ledger

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	sealHRP   = "fbseal"
	sealBytes = 20
)

// Seal renders the first bytes of a chain head as a checksummed code that
// can be printed on a label and typed back.
func Seal(head chainhash.Hash) (string, error) {
	data, err := bech32.ConvertBits(head[:sealBytes], 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert seal bits: %w", err)
	}
	seal, err := bech32.Encode(sealHRP, data)
	if err != nil {
		return "", fmt.Errorf("encode seal: %w", err)
	}
	return seal, nil
}

// MatchSeal reports whether seal was produced from head. Case is ignored.
func MatchSeal(seal string, head chainhash.Hash) (bool, error) {
	hrp, data, err := bech32.Decode(strings.ToLower(strings.TrimSpace(seal)))
	if err != nil {
		return false, fmt.Errorf("decode seal: %w", err)
	}
	if hrp != sealHRP {
		return false, fmt.Errorf("decode seal: unexpected prefix %q", hrp)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return false, fmt.Errorf("convert seal bits: %w", err)
	}
	return bytes.Equal(raw, head[:sealBytes]), nil
}
