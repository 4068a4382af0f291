package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/goodnatureofminers/farmtrace-backend/internal/registry"
	"github.com/goodnatureofminers/farmtrace-backend/internal/verification"
)

var (
	okColor    = color.New(color.FgGreen, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	failColor  = color.New(color.FgRed, color.Bold)
	faintColor = color.New(color.Faint)
)

// printVerdict renders the outcome of one lookup for a person at the counter.
func printVerdict(w io.Writer, id model.BatchID, view *verification.View, err error) {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		failColor.Fprintf(w, "✗ %s: no such batch\n", id)
		return
	case errors.Is(err, registry.ErrTransport):
		warnColor.Fprintf(w, "! %s: registry unreachable, try again\n", id)
		return
	case err != nil:
		failColor.Fprintf(w, "✗ %s: %v\n", id, err)
		return
	case view == nil:
		failColor.Fprintf(w, "✗ %s: no such batch\n", id)
		return
	}

	b := view.Batch
	switch {
	case view.Tampered:
		failColor.Fprintf(w, "✗ %s: TIMELINE TAMPERED\n", b.ID)
	case view.Verified:
		okColor.Fprintf(w, "✓ %s: VERIFIED\n", b.ID)
	default:
		warnColor.Fprintf(w, "! %s: NOT VERIFIED\n", b.ID)
	}

	fmt.Fprintf(w, "  %s from %s, %s\n", b.CropType, b.FarmerName, b.Location)
	if b.Grade != nil {
		fmt.Fprintf(w, "  grade %s (%.0f%%)\n", b.Grade.Label, b.Grade.Confidence*100)
	}
	for _, e := range view.Timeline {
		mark := okColor.Sprint("✓")
		if !e.Verified || e.Anomaly {
			mark = warnColor.Sprint("!")
		}
		fmt.Fprintf(w, "  %s %-10s %-24s %s %s\n", mark, e.Stage, e.Title,
			e.Timestamp.Format("2006-01-02 15:04"), faintColor.Sprint(e.Location))
	}
	if p := view.PriceBreakdown; p != nil {
		fmt.Fprintf(w, "  price/kg %s: farmer %s%%, transport %s%%, retailer %s%%\n",
			p.Total.StringFixed(2), p.FarmerShare.String(), p.TransportShare.String(), p.RetailerShare.String())
	}
	if len(view.AnomalyFlags) > 0 {
		kinds := make([]string, 0, len(view.AnomalyFlags))
		for _, k := range view.Kinds() {
			kinds = append(kinds, string(k))
		}
		warnColor.Fprintf(w, "  anomalies: %s\n", strings.Join(kinds, ", "))
	}
	if view.Seal != "" {
		faintColor.Fprintf(w, "  seal %s\n", view.Seal)
	}
}
