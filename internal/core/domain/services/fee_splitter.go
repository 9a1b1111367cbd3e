package services

import (
	"fmt"

	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DefaultPlatformFeeRate is the share of a task price kept by the platform.
var DefaultPlatformFeeRate = decimal.RequireFromString("0.10")

// FeeSplitter divides a captured task price between the platform and the courier.
// The fee is floor(price * rate); the courier receives the remainder, so no
// minor unit is ever lost to rounding.
type FeeSplitter struct {
	rate decimal.Decimal
}

func NewFeeSplitter(rate decimal.Decimal) (FeeSplitter, error) {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return FeeSplitter{}, errs.NewValueIsOutOfRangeError("platformFeeRate", rate.String(), "0", "1")
	}
	return FeeSplitter{rate: rate}, nil
}

// Split returns the platform fee and the courier payout for price.
func (s FeeSplitter) Split(price int64) (fee int64, payout int64, err error) {
	if price < 0 {
		return 0, 0, errs.NewValueIsOutOfRangeError("price", price, 0, "unbounded")
	}
	fee = decimal.NewFromInt(price).Mul(s.rate).Floor().IntPart()
	payout = price - fee
	if payout < 0 {
		return 0, 0, fmt.Errorf("fee %d exceeds price %d", fee, price)
	}
	return fee, payout, nil
}

func (s FeeSplitter) Rate() decimal.Decimal {
	return s.rate
}
