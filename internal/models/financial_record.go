package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FinancialRecord is a single row of the revenue table. Revenue and Costs are
// invalid when the source did not supply them; Profit is only valid after
// transformation.
type FinancialRecord struct {
	Timestamp string              `db:"timestamp" json:"timestamp"`
	Revenue   decimal.NullDecimal `db:"revenue" json:"revenue"`
	Costs     decimal.NullDecimal `db:"costs" json:"costs"`
	Profit    decimal.NullDecimal `db:"profit" json:"profit,omitempty"`
}

// NewFinancialRecord builds a record with both monetary fields present.
func NewFinancialRecord(timestamp string, revenue, costs decimal.Decimal) FinancialRecord {
	return FinancialRecord{
		Timestamp: timestamp,
		Revenue:   decimal.NewNullDecimal(revenue),
		Costs:     decimal.NewNullDecimal(costs),
	}
}

// ComputeProfit sets Profit to Revenue - Costs.
func (r *FinancialRecord) ComputeProfit() error {
	if !r.Revenue.Valid {
		return fmt.Errorf("%w: revenue", ErrMissingField)
	}
	if !r.Costs.Valid {
		return fmt.Errorf("%w: costs", ErrMissingField)
	}
	r.Profit = decimal.NewNullDecimal(r.Revenue.Decimal.Sub(r.Costs.Decimal))
	return nil
}

// RecordSet is an ordered table of financial records. Rows have no identity
// beyond their position.
type RecordSet []FinancialRecord

// Len returns the number of rows.
func (rs RecordSet) Len() int {
	return len(rs)
}

// Clone returns a copy so a stage can derive columns without touching its input.
func (rs RecordSet) Clone() RecordSet {
	out := make(RecordSet, len(rs))
	copy(out, rs)
	return out
}
