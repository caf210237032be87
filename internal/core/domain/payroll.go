package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PayrollCycle is how often an employer runs payroll.
type PayrollCycle string

const (
	PayrollCycleWeekly   PayrollCycle = "weekly"
	PayrollCycleBiweekly PayrollCycle = "biweekly"
	PayrollCycleMonthly  PayrollCycle = "monthly"
)

// PayrollDateLayout is the calendar-date format payroll runs are keyed by.
const PayrollDateLayout = "2006-01-02"

// PayrollConfiguration maps each employee wallet to the amount it receives per run.
type PayrollConfiguration struct {
	EmployerWalletID string                     `json:"employer_wallet_id"`
	Cycle            PayrollCycle               `json:"cycle"`
	Day              int                        `json:"day"` // weekday 0-6 for weekly cycles, day of month 1-31 for monthly
	Employees        map[string]decimal.Decimal `json:"employees"`
	Version          int64                      `json:"version"`
	UpdatedAt        time.Time                  `json:"updated_at"`
}

// Validate checks the cycle, day and that every configured amount is positive.
func (p *PayrollConfiguration) Validate() error {
	if p.EmployerWalletID == "" {
		return errors.New("employer wallet id is required")
	}
	switch p.Cycle {
	case PayrollCycleWeekly, PayrollCycleBiweekly:
		if p.Day < 0 || p.Day > 6 {
			return fmt.Errorf("weekday %d outside 0-6", p.Day)
		}
	case PayrollCycleMonthly:
		if p.Day < 1 || p.Day > 31 {
			return fmt.Errorf("day of month %d outside 1-31", p.Day)
		}
	default:
		return fmt.Errorf("unknown payroll cycle %q", p.Cycle)
	}
	if len(p.Employees) == 0 {
		return errors.New("payroll has no employees")
	}
	for walletID, amount := range p.Employees {
		if walletID == p.EmployerWalletID {
			return errors.New("employer cannot pay itself")
		}
		if !Round(amount).IsPositive() {
			return fmt.Errorf("amount for %s must be positive", walletID)
		}
	}
	return nil
}

// Payments returns the configured payments sorted by wallet id, amounts rounded.
func (p *PayrollConfiguration) Payments() []Payment {
	out := make([]Payment, 0, len(p.Employees))
	for walletID, amount := range p.Employees {
		out = append(out, Payment{WalletID: walletID, Amount: Round(amount)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WalletID < out[j].WalletID })
	return out
}

// Total is the sum of every rounded payment.
func (p *PayrollConfiguration) Total() decimal.Decimal {
	total := decimal.Zero
	for _, pay := range p.Payments() {
		total = total.Add(pay.Amount)
	}
	return Round(total)
}
