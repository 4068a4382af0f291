package verification

import (
	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PriceBreakdown splits the retail price per kg between the supply-chain parties.
type PriceBreakdown struct {
	Farmer         decimal.Decimal `json:"farmer"`
	Transport      decimal.Decimal `json:"transport"`
	Retailer       decimal.Decimal `json:"retailer"`
	Total          decimal.Decimal `json:"total"`
	FarmerShare    decimal.Decimal `json:"farmerShare"`
	TransportShare decimal.Decimal `json:"transportShare"`
	RetailerShare  decimal.Decimal `json:"retailerShare"`
}

func farmGatePrice(events []model.TimelineEvent) (decimal.Decimal, bool) {
	for _, e := range events {
		if e.Stage == model.StageFarm && e.PricePerKg != nil {
			return *e.PricePerKg, true
		}
	}
	return decimal.Decimal{}, false
}

// breakdown needs a farm-gate and a retail price; the last aggregator or
// transport price before retail splits the margin, otherwise it all goes to
// the retailer.
func breakdown(events []model.TimelineEvent) *PriceBreakdown {
	farm, ok := farmGatePrice(events)
	if !ok {
		return nil
	}

	var (
		middle = farm
		retail *decimal.Decimal
	)
	for _, e := range events {
		if e.PricePerKg == nil {
			continue
		}
		switch e.Stage {
		case model.StageAggregator, model.StageTransport:
			if retail == nil {
				middle = *e.PricePerKg
			}
		case model.StageRetailer:
			retail = e.PricePerKg
		}
	}
	if retail == nil || !retail.IsPositive() {
		return nil
	}

	b := &PriceBreakdown{
		Farmer:    farm,
		Transport: middle.Sub(farm),
		Retailer:  retail.Sub(middle),
		Total:     *retail,
	}
	b.FarmerShare = share(b.Farmer, b.Total)
	b.TransportShare = share(b.Transport, b.Total)
	b.RetailerShare = share(b.Retailer, b.Total)
	return b
}

func share(part, total decimal.Decimal) decimal.Decimal {
	return part.Mul(hundred).Div(total).Round(1)
}
