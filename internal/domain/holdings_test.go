package domain

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ordinary   = &SecurityClassRef{ID: "sc-ord", Name: "Ordinary Shares", Symbol: "ORD"}
	preference = &SecurityClassRef{ID: "sc-pref", Name: "Preference Shares", Symbol: "PREF"}
	options    = &SecurityClassRef{ID: "sc-opt", Name: "Options", Symbol: "OPT"}
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func paid(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

func newTx(id string, class *SecurityClassRef, qty int64, date string) *Transaction {
	return &Transaction{
		ID:              id,
		TransactionType: TransactionTypeTransfer,
		Quantity:        qty,
		SecurityClass:   class,
		TransactionDate: day(date),
	}
}

func TestSummarizeHoldings_Empty(t *testing.T) {
	summaries := SummarizeHoldings(nil, nil, "AUD")
	if len(summaries) != 0 {
		t.Fatalf("expected no summaries, got %d", len(summaries))
	}

	feed := BuildTransactionFeed(nil, nil)
	if len(feed) != 0 {
		t.Fatalf("expected empty feed, got %d entries", len(feed))
	}
}

func TestSummarizeHoldings_IncomingAccumulates(t *testing.T) {
	first := newTx("t1", ordinary, 100, "2024-01-01")
	first.TotalAmountPaid = paid(100)
	second := newTx("t2", ordinary, 50, "2024-02-01")
	second.TotalAmountPaid = paid(50)

	summaries := SummarizeHoldings([]*Transaction{first, second}, nil, "AUD")
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}

	s := summaries[0]
	if s.TotalQuantity != 150 {
		t.Errorf("expected quantity 150, got %d", s.TotalQuantity)
	}
	if !s.TotalAmountPaid.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected paid 150, got %s", s.TotalAmountPaid)
	}
	if s.TrancheCount != 2 {
		t.Errorf("expected 2 tranches, got %d", s.TrancheCount)
	}
	if s.Currency != "AUD" {
		t.Errorf("expected currency AUD, got %s", s.Currency)
	}
	if s.SecurityClassSymbol != "ORD" || s.SecurityClassName != "Ordinary Shares" {
		t.Errorf("unexpected class labels: %+v", s)
	}
}

func TestSummarizeHoldings_OutgoingOffsets(t *testing.T) {
	in := newTx("t1", ordinary, 100, "2024-01-01")
	in.TotalAmountPaid = paid(100)
	in.TotalAmountUnpaid = paid(20)
	out := newTx("t2", ordinary, 30, "2024-02-01")
	out.TotalAmountPaid = paid(30)
	out.TotalAmountUnpaid = paid(5)

	summaries := SummarizeHoldings([]*Transaction{in}, []*Transaction{out}, "AUD")
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}

	s := summaries[0]
	if s.TotalQuantity != 70 {
		t.Errorf("expected quantity 70, got %d", s.TotalQuantity)
	}
	if !s.TotalAmountPaid.Equal(decimal.NewFromInt(70)) {
		t.Errorf("expected paid 70, got %s", s.TotalAmountPaid)
	}
	if !s.TotalAmountUnpaid.Equal(decimal.NewFromInt(15)) {
		t.Errorf("expected unpaid 15, got %s", s.TotalAmountUnpaid)
	}
	if s.TrancheCount != 1 {
		t.Errorf("expected outgoing to leave tranche count at 1, got %d", s.TrancheCount)
	}
}

func TestSummarizeHoldings_FullyRedeemedKeepsRow(t *testing.T) {
	in := newTx("t1", ordinary, 100, "2024-01-01")
	out := newTx("t2", ordinary, 100, "2024-02-01")

	summaries := SummarizeHoldings([]*Transaction{in}, []*Transaction{out}, "AUD")
	if len(summaries) != 1 {
		t.Fatalf("expected the redeemed class to keep its row, got %d rows", len(summaries))
	}
	if summaries[0].TotalQuantity != 0 || summaries[0].TrancheCount != 1 {
		t.Fatalf("expected zero quantity with 1 tranche, got %+v", summaries[0])
	}
}

func TestSummarizeHoldings_OutgoingOnlyClassIgnored(t *testing.T) {
	in := newTx("t1", ordinary, 100, "2024-01-01")
	out := newTx("t2", preference, 10, "2024-02-01")

	summaries := SummarizeHoldings([]*Transaction{in}, []*Transaction{out}, "AUD")
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].SecurityClassID != "sc-ord" {
		t.Fatalf("expected only ordinary summary, got %s", summaries[0].SecurityClassID)
	}
}

func TestSummarizeHoldings_MissingAmountsDefaultToZero(t *testing.T) {
	in := newTx("t1", ordinary, 10, "2024-01-01")
	in.TotalAmountPaid = decimal.NullDecimal{}

	summaries := SummarizeHoldings([]*Transaction{in}, nil, "AUD")
	if !summaries[0].TotalAmountPaid.IsZero() {
		t.Fatalf("expected zero paid total, got %s", summaries[0].TotalAmountPaid)
	}
	if !summaries[0].TotalAmountUnpaid.IsZero() {
		t.Fatalf("expected zero unpaid total, got %s", summaries[0].TotalAmountUnpaid)
	}
}

func TestSummarizeHoldings_SkipsTransactionsWithoutClass(t *testing.T) {
	classless := newTx("t0", nil, 500, "2024-01-01")
	in := newTx("t1", ordinary, 10, "2024-01-02")

	summaries := SummarizeHoldings([]*Transaction{classless, in}, []*Transaction{classless}, "AUD")
	if len(summaries) != 1 || summaries[0].TotalQuantity != 10 {
		t.Fatalf("expected classless transaction to be skipped, got %+v", summaries)
	}

	feed := BuildTransactionFeed([]*Transaction{classless}, []*Transaction{in})
	if len(feed) != 2 {
		t.Fatalf("expected classless transaction to stay in the feed, got %d entries", len(feed))
	}
}

func TestSummarizeHoldings_FirstAppearanceOrder(t *testing.T) {
	to := []*Transaction{
		newTx("t1", preference, 1, "2024-05-01"),
		newTx("t2", ordinary, 1, "2024-01-01"),
		newTx("t3", preference, 1, "2024-06-01"),
		newTx("t4", options, 1, "2023-01-01"),
	}

	summaries := SummarizeHoldings(to, nil, "AUD")

	got := make([]string, len(summaries))
	for i, s := range summaries {
		got[i] = s.SecurityClassID
	}
	want := []string{"sc-pref", "sc-ord", "sc-opt"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected order %v, got %v", want, got)
	}
}

func TestBuildTransactionFeed_DirectionAndOrder(t *testing.T) {
	out := newTx("out", ordinary, 10, "2024-01-01")
	in := newTx("in", ordinary, 20, "2024-03-01")

	feed := BuildTransactionFeed([]*Transaction{out}, []*Transaction{in})
	if len(feed) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(feed))
	}

	if feed[0].Transaction.ID != "in" || feed[0].Direction != DirectionIn {
		t.Errorf("expected newest IN entry first, got %s/%s", feed[0].Transaction.ID, feed[0].Direction)
	}
	if feed[1].Transaction.ID != "out" || feed[1].Direction != DirectionOut {
		t.Errorf("expected OUT entry second, got %s/%s", feed[1].Transaction.ID, feed[1].Direction)
	}
}

func TestBuildTransactionFeed_PrefersSettlementDate(t *testing.T) {
	settled := day("2024-06-01")
	early := newTx("early", ordinary, 1, "2024-01-01")
	early.SettlementDate = &settled
	late := newTx("late", ordinary, 1, "2024-03-01")

	feed := BuildTransactionFeed(nil, []*Transaction{late, early})
	if feed[0].Transaction.ID != "early" {
		t.Fatalf("expected settlement date to drive ordering, got %s first", feed[0].Transaction.ID)
	}
}

func TestBuildTransactionFeed_StableForEqualDates(t *testing.T) {
	a := newTx("a", ordinary, 1, "2024-01-01")
	b := newTx("b", ordinary, 1, "2024-01-01")
	c := newTx("c", ordinary, 1, "2024-01-01")

	feed := BuildTransactionFeed([]*Transaction{a}, []*Transaction{b, c})

	ids := []string{feed[0].Transaction.ID, feed[1].Transaction.ID, feed[2].Transaction.ID}
	if !reflect.DeepEqual(ids, []string{"a", "b", "c"}) {
		t.Fatalf("expected input order to be kept for ties, got %v", ids)
	}
}

func TestFilterFeed(t *testing.T) {
	to := []*Transaction{
		newTx("t1", ordinary, 1, "2024-01-01"),
		newTx("t2", preference, 1, "2024-02-01"),
		newTx("t3", options, 1, "2024-03-01"),
		newTx("t4", preference, 1, "2024-04-01"),
	}
	feed := BuildTransactionFeed(nil, to)

	filtered := FilterFeed(feed, "sc-pref")
	if len(filtered) != 2 {
		t.Fatalf("expected 2 preference entries, got %d", len(filtered))
	}
	for _, entry := range filtered {
		if entry.Transaction.SecurityClassID() != "sc-pref" {
			t.Fatalf("unexpected class %s in filtered feed", entry.Transaction.SecurityClassID())
		}
	}

	all := FilterFeed(feed, AllSecurityClasses)
	if !reflect.DeepEqual(all, feed) {
		t.Fatalf("expected 'all' to return the feed unchanged")
	}

	if none := FilterFeed(feed, "sc-missing"); len(none) != 0 {
		t.Fatalf("expected no entries for unknown class, got %d", len(none))
	}
}

func TestReconcileHoldings_Idempotent(t *testing.T) {
	in1 := newTx("t1", ordinary, 100, "2024-01-01")
	in1.TotalAmountPaid = paid(100)
	in2 := newTx("t2", preference, 40, "2024-02-01")
	out := newTx("t3", ordinary, 25, "2024-03-01")
	out.TotalAmountPaid = paid(25)

	to := []*Transaction{in1, in2}
	from := []*Transaction{out}

	first := ReconcileHoldings(to, from, "AUD", AllSecurityClasses)
	second := ReconcileHoldings(to, from, "AUD", AllSecurityClasses)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results across calls")
	}
	if len(to) != 2 || to[0].ID != "t1" || len(from) != 1 {
		t.Fatalf("expected inputs to be left untouched")
	}
}
