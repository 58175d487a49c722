package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AllSecurityClasses is the filter value that disables class filtering.
const AllSecurityClasses = "all"

// Direction tells whether a feed entry moved securities into or out of the
// member's holding.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// SecurityClassSummary is a member's current position in one security class.
// It is derived on every read and never stored.
type SecurityClassSummary struct {
	SecurityClassID     string
	SecurityClassName   string
	SecurityClassSymbol string
	TotalQuantity       int64
	TotalAmountPaid     decimal.Decimal
	TotalAmountUnpaid   decimal.Decimal
	Currency            string
	// TrancheCount counts incoming transactions only; outgoing transactions
	// reduce the totals but leave this untouched.
	TrancheCount int
}

// FeedEntry is a transaction annotated with its direction relative to the
// member the feed was built for.
type FeedEntry struct {
	Transaction *Transaction
	Direction   Direction
}

// Holdings is the full reconciliation result for one member.
type Holdings struct {
	Summaries    []SecurityClassSummary
	Transactions []FeedEntry
}

// SummarizeHoldings folds a member's incoming (to) and outgoing (from)
// transactions into one summary per security class. Summaries come back in
// order of first appearance among incoming transactions. Outgoing
// transactions only adjust classes that already have an incoming record.
func SummarizeHoldings(to, from []*Transaction, currency string) []SecurityClassSummary {
	index := make(map[string]int)
	summaries := make([]SecurityClassSummary, 0)

	for _, tx := range to {
		if tx == nil || tx.SecurityClass == nil {
			continue
		}

		if i, ok := index[tx.SecurityClass.ID]; ok {
			s := &summaries[i]
			s.TotalQuantity += tx.Quantity
			s.TotalAmountPaid = s.TotalAmountPaid.Add(tx.PaidTotal())
			s.TotalAmountUnpaid = s.TotalAmountUnpaid.Add(tx.UnpaidTotal())
			s.TrancheCount++
			continue
		}

		index[tx.SecurityClass.ID] = len(summaries)
		summaries = append(summaries, SecurityClassSummary{
			SecurityClassID:     tx.SecurityClass.ID,
			SecurityClassName:   tx.SecurityClass.Name,
			SecurityClassSymbol: tx.SecurityClass.Symbol,
			TotalQuantity:       tx.Quantity,
			TotalAmountPaid:     tx.PaidTotal(),
			TotalAmountUnpaid:   tx.UnpaidTotal(),
			Currency:            currency,
			TrancheCount:        1,
		})
	}

	for _, tx := range from {
		if tx == nil || tx.SecurityClass == nil {
			continue
		}

		i, ok := index[tx.SecurityClass.ID]
		if !ok {
			continue
		}

		s := &summaries[i]
		s.TotalQuantity -= tx.Quantity
		s.TotalAmountPaid = s.TotalAmountPaid.Sub(tx.PaidTotal())
		s.TotalAmountUnpaid = s.TotalAmountUnpaid.Sub(tx.UnpaidTotal())
	}

	return summaries
}

// BuildTransactionFeed tags outgoing transactions OUT and incoming ones IN and
// returns them newest first. Entries with equal dates keep input order, with
// outgoing entries ahead of incoming ones.
func BuildTransactionFeed(from, to []*Transaction) []FeedEntry {
	feed := make([]FeedEntry, 0, len(from)+len(to))

	for _, tx := range from {
		if tx == nil {
			continue
		}
		feed = append(feed, FeedEntry{Transaction: tx, Direction: DirectionOut})
	}

	for _, tx := range to {
		if tx == nil {
			continue
		}
		feed = append(feed, FeedEntry{Transaction: tx, Direction: DirectionIn})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Transaction.EffectiveDate().After(feed[j].Transaction.EffectiveDate())
	})

	return feed
}

// FilterFeed keeps the entries referencing securityClassID. An empty ID or
// AllSecurityClasses returns a copy of the feed unchanged.
func FilterFeed(feed []FeedEntry, securityClassID string) []FeedEntry {
	if securityClassID == "" || securityClassID == AllSecurityClasses {
		out := make([]FeedEntry, len(feed))
		copy(out, feed)
		return out
	}

	out := make([]FeedEntry, 0, len(feed))
	for _, entry := range feed {
		if entry.Transaction.SecurityClassID() == securityClassID {
			out = append(out, entry)
		}
	}

	return out
}

// ReconcileHoldings computes the summaries and the filtered feed for one
// member in a single call.
func ReconcileHoldings(to, from []*Transaction, currency, securityClassID string) *Holdings {
	return &Holdings{
		Summaries:    SummarizeHoldings(to, from, currency),
		Transactions: FilterFeed(BuildTransactionFeed(from, to), securityClassID),
	}
}
