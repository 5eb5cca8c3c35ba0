package output

import (
	"github.com/tubby124/Deal-Analyzer/pkg/closing"
	"github.com/tubby124/Deal-Analyzer/pkg/market"
	"github.com/tubby124/Deal-Analyzer/pkg/mathutil"
	"github.com/tubby124/Deal-Analyzer/pkg/taxes"
)

// SaleProjection estimates the seller's walk-away position for a future
// disposition: commission, capital gains tax, and net proceeds after the
// remaining mortgage balance is retired.
type SaleProjection struct {
	Years            int                      `json:"years"`
	SalePrice        float64                  `json:"salePrice"`
	Commission       closing.CommissionResult `json:"commission"`
	RemainingBalance float64                  `json:"remainingBalance"`
	CapitalGain      float64                  `json:"capitalGain"`
	CapitalGainsTax  taxes.CapitalGainsResult `json:"capitalGainsTax"`
	NetProceeds      float64                  `json:"netProceeds"`
}

// ProjectSale prices out a disposition at salePrice. The capital gain is
// measured against the original purchase price plus selling costs; a
// principal residence is exempt from the gains tax entirely. otherIncome
// positions the taxable gain in the seller's marginal brackets.
func ProjectSale(province market.Province, years int, purchasePrice, salePrice, remainingBalance, otherIncome float64, principalResidence bool) SaleProjection {
	commission := closing.Commission(province, salePrice)
	gain := mathutil.Max(0, salePrice-purchasePrice-commission.Total)

	var gainsTax taxes.CapitalGainsResult
	if !principalResidence {
		gainsTax = taxes.CapitalGains(province, gain, otherIncome)
	}

	return SaleProjection{
		Years:            years,
		SalePrice:        salePrice,
		Commission:       commission,
		RemainingBalance: remainingBalance,
		CapitalGain:      gain,
		CapitalGainsTax:  gainsTax,
		NetProceeds:      salePrice - commission.Total - remainingBalance - gainsTax.Tax,
	}
}
