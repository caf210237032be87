package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FeeConfiguration is the deployment-wide merchant fee schedule.
// It is replaced wholesale on update; Version increases with every replacement.
type FeeConfiguration struct {
	DefaultFeePercentage decimal.Decimal            `json:"default_fee_percentage"`
	MinimumFee           decimal.Decimal            `json:"minimum_fee"`
	MaximumFee           decimal.Decimal            `json:"maximum_fee"`
	MerchantSpecificFees map[string]decimal.Decimal `json:"merchant_specific_fees,omitempty"`
	Version              int64                      `json:"version"`
	UpdatedAt            time.Time                  `json:"updated_at"`
}

// DefaultFeeConfiguration is served until an operator stores one.
func DefaultFeeConfiguration() FeeConfiguration {
	return FeeConfiguration{
		DefaultFeePercentage: decimal.RequireFromString("1"),
		MinimumFee:           decimal.RequireFromString("0.0001"),
		MaximumFee:           decimal.RequireFromString("0.01"),
		MerchantSpecificFees: map[string]decimal.Decimal{},
	}
}

// Validate checks percentages lie in [0,100] and 0 <= minimum <= maximum.
func (c *FeeConfiguration) Validate() error {
	if err := validPercentage(c.DefaultFeePercentage); err != nil {
		return fmt.Errorf("default fee percentage: %w", err)
	}
	if c.MinimumFee.IsNegative() || c.MaximumFee.IsNegative() {
		return errors.New("fee bounds must not be negative")
	}
	if c.MinimumFee.GreaterThan(c.MaximumFee) {
		return errors.New("minimum fee exceeds maximum fee")
	}
	for walletID, pct := range c.MerchantSpecificFees {
		if err := validPercentage(pct); err != nil {
			return fmt.Errorf("fee percentage for %s: %w", walletID, err)
		}
	}
	return nil
}

// RateFor returns the percentage charged on payments to merchantWalletID.
func (c *FeeConfiguration) RateFor(merchantWalletID string) decimal.Decimal {
	if pct, ok := c.MerchantSpecificFees[merchantWalletID]; ok {
		return pct
	}
	return c.DefaultFeePercentage
}

// Compute derives the fee and net amount for a payment of amount to merchantWalletID.
// fee = clamp(amount * rate / 100, minimum, maximum), both rounded to Precision.
func (c *FeeConfiguration) Compute(merchantWalletID string, amount decimal.Decimal) (fee, net decimal.Decimal) {
	fee = Round(amount.Mul(c.RateFor(merchantWalletID)).Div(hundred))
	if fee.LessThan(c.MinimumFee) {
		fee = c.MinimumFee
	}
	if fee.GreaterThan(c.MaximumFee) {
		fee = c.MaximumFee
	}
	fee = Round(fee)
	net = Round(amount.Sub(fee))
	return fee, net
}

func validPercentage(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(hundred) {
		return fmt.Errorf("percentage %s outside [0,100]", p.String())
	}
	return nil
}
