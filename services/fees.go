package services

import (
	"github.com/shopspring/decimal"
)

// FeeBreakdown is the computed charge set for one merchant's slice of a
// checkout. Total is always Base + GST + PlatformFee.
type FeeBreakdown struct {
	Base        int64 `json:"baseAmount"`
	GST         int64 `json:"gstAmount"`
	PlatformFee int64 `json:"platformFeeAmount"`
	Total       int64 `json:"totalAmount"`
}

// CalculateFees computes GST and platform fee on a base amount. Both
// components round half away from zero to the nearest whole currency unit.
func CalculateFees(base int64, gstRate, platformFeeRate decimal.Decimal) FeeBreakdown {
	b := decimal.NewFromInt(base)
	gst := b.Mul(gstRate).Round(0).IntPart()
	fee := b.Mul(platformFeeRate).Round(0).IntPart()
	return FeeBreakdown{
		Base:        base,
		GST:         gst,
		PlatformFee: fee,
		Total:       base + gst + fee,
	}
}
