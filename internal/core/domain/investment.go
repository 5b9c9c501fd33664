package domain

import (
	"github.com/shopspring/decimal"
)

// Investment is a single buy or sell record in the ledger.
//
// Amount is always present and is the signed contribution to the invested
// total (negative for net sales). When both UnitPrice and Units were supplied
// at creation time, Amount == UnitPrice * Units by construction; this is not
// re-validated afterwards. Records are immutable once created, the only
// mutation the ledger supports is deleting the whole record.
type Investment struct {
	InvestmentID string          `json:"investmentID"` // decimal string of Timestamp
	Timestamp    int64           `json:"timestamp"`    // creation order, monotonic within process lifetime
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"` // 3-letter code
	Fund         string          `json:"fund"`
	Platform     string          `json:"platform"`
	Date         string          `json:"date"` // calendar date, YYYY-MM-DD

	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"` // >= 0 when present
	Units     *decimal.Decimal `json:"units,omitempty"`     // negative means sale

	IsSale bool `json:"isSale"`
}

// HasUnitPrice reports whether the record carries an explicit unit price.
func (i Investment) HasUnitPrice() bool {
	return i.UnitPrice != nil
}

// HasUnits reports whether the record carries an explicit unit count.
func (i Investment) HasUnits() bool {
	return i.Units != nil
}

// YearMonth returns the YYYY-MM prefix of the record's calendar date, or an
// empty string when the date is too short to carry one.
func (i Investment) YearMonth() string {
	if len(i.Date) < 7 {
		return ""
	}
	return i.Date[:7]
}

// Newer reports whether this record should be considered more recent than
// other for valuation purposes: calendar date first, creation timestamp as the
// tie-break. Multiple entries can share a calendar date, the timestamp keeps
// the comparison deterministic.
func (i Investment) Newer(other Investment) bool {
	if i.Date != other.Date {
		return i.Date > other.Date
	}
	return i.Timestamp > other.Timestamp
}
