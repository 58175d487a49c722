package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goregistry/internal/domain"
	"github.com/iho/goregistry/internal/usecase"
)

// Amount is a monetary request field. It accepts JSON numbers and numeric
// strings; null, empty and unparseable values decode as absent.
type Amount struct {
	decimal.NullDecimal
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(b []byte) error {
	raw := string(bytes.Trim(b, `"`))

	d, ok := domain.ParseNullAmount(raw)
	if !ok {
		a.NullDecimal = decimal.NullDecimal{}
		return nil
	}

	a.NullDecimal = decimal.NewNullDecimal(d)
	return nil
}

// Date accepts either a calendar date (2006-01-02) or an RFC 3339 timestamp.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}

	return fmt.Errorf("invalid date %q", s)
}

func (d *Date) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// RecordTransactionRequest represents a request to record a transaction.
type RecordTransactionRequest struct {
	EntityID                string `json:"entityId"`
	TransactionType         string `json:"transactionType"`
	SecurityClassID         string `json:"securityClassId"`
	FromMemberID            string `json:"fromMemberId,omitempty"`
	ToMemberID              string `json:"toMemberId,omitempty"`
	Quantity                int64  `json:"quantity"`
	AmountPaidPerSecurity   Amount `json:"amountPaidPerSecurity"`
	AmountUnpaidPerSecurity Amount `json:"amountUnpaidPerSecurity"`
	TotalAmountPaid         Amount `json:"totalAmountPaid"`
	TotalAmountUnpaid       Amount `json:"totalAmountUnpaid"`
	TransactionDate         *Date  `json:"transactionDate,omitempty"`
	SettlementDate          *Date  `json:"settlementDate,omitempty"`
	Reference               string `json:"reference,omitempty"`
	Description             string `json:"description,omitempty"`
}

// ToUseCaseInput converts request to use case input.
func (r *RecordTransactionRequest) ToUseCaseInput() usecase.RecordTransactionInput {
	return usecase.RecordTransactionInput{
		EntityID:                r.EntityID,
		TransactionType:         domain.TransactionType(r.TransactionType),
		SecurityClassID:         r.SecurityClassID,
		FromMemberID:            r.FromMemberID,
		ToMemberID:              r.ToMemberID,
		Quantity:                r.Quantity,
		AmountPaidPerSecurity:   r.AmountPaidPerSecurity.NullDecimal,
		AmountUnpaidPerSecurity: r.AmountUnpaidPerSecurity.NullDecimal,
		TotalAmountPaid:         r.TotalAmountPaid.NullDecimal,
		TotalAmountUnpaid:       r.TotalAmountUnpaid.NullDecimal,
		TransactionDate:         r.TransactionDate.ptr(),
		SettlementDate:          r.SettlementDate.ptr(),
		Reference:               r.Reference,
		Description:             r.Description,
	}
}
