package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a movement of securities.
type TransactionType string

const (
	TransactionTypeIssue        TransactionType = "ISSUE"
	TransactionTypeTransfer     TransactionType = "TRANSFER"
	TransactionTypeRedemption   TransactionType = "REDEMPTION"
	TransactionTypeConversion   TransactionType = "CONVERSION"
	TransactionTypeCancellation TransactionType = "CANCELLATION"
)

var validTransactionTypes = map[TransactionType]bool{
	TransactionTypeIssue:        true,
	TransactionTypeTransfer:     true,
	TransactionTypeRedemption:   true,
	TransactionTypeConversion:   true,
	TransactionTypeCancellation: true,
}

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return validTransactionTypes[t]
}

// SecurityClassRef is the part of a security class carried on a transaction.
type SecurityClassRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// MemberRef identifies a counterparty of a transaction.
type MemberRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Transaction is a single movement of a security between two parties, or an
// issuance to / redemption from one party.
type Transaction struct {
	ID                      string
	EntityID                string
	TransactionType         TransactionType
	Quantity                int64
	SecurityClass           *SecurityClassRef
	FromMember              *MemberRef
	ToMember                *MemberRef
	AmountPaidPerSecurity   decimal.NullDecimal
	AmountUnpaidPerSecurity decimal.NullDecimal
	TotalAmountPaid         decimal.NullDecimal
	TotalAmountUnpaid       decimal.NullDecimal
	TransactionDate         time.Time
	SettlementDate          *time.Time
	Reference               string
	Description             string
	CreatedAt               time.Time
}

// EffectiveDate is the date used to order transactions: the settlement date
// when recorded, otherwise the transaction date.
func (t *Transaction) EffectiveDate() time.Time {
	if t.SettlementDate != nil && !t.SettlementDate.IsZero() {
		return *t.SettlementDate
	}
	return t.TransactionDate
}

// PaidTotal returns the total amount paid, zero when absent.
func (t *Transaction) PaidTotal() decimal.Decimal {
	return amountOrZero(t.TotalAmountPaid)
}

// UnpaidTotal returns the total amount unpaid, zero when absent.
func (t *Transaction) UnpaidTotal() decimal.Decimal {
	return amountOrZero(t.TotalAmountUnpaid)
}

// SecurityClassID returns the referenced class ID or "" when the transaction
// carries no class.
func (t *Transaction) SecurityClassID() string {
	if t.SecurityClass == nil {
		return ""
	}
	return t.SecurityClass.ID
}

// Validate checks the structural rules every recorded transaction must obey.
func (t *Transaction) Validate() error {
	if t.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	if !t.TransactionType.IsValid() {
		return ErrInvalidTransactionType
	}

	if t.FromMember == nil && t.ToMember == nil {
		return ErrMissingParty
	}

	if t.FromMember != nil && t.ToMember != nil && t.FromMember.ID == t.ToMember.ID {
		return ErrSameMember
	}

	if t.SecurityClass == nil || t.SecurityClass.ID == "" {
		return ErrSecurityClassRequired
	}

	for _, amount := range []decimal.NullDecimal{
		t.AmountPaidPerSecurity,
		t.AmountUnpaidPerSecurity,
		t.TotalAmountPaid,
		t.TotalAmountUnpaid,
	} {
		if amount.Valid && amount.Decimal.IsNegative() {
			return ErrNegativeAmount
		}
	}

	return nil
}

// FillTotals derives missing totals from the per-security amounts.
func (t *Transaction) FillTotals() {
	qty := decimal.NewFromInt(t.Quantity)

	if !t.TotalAmountPaid.Valid && t.AmountPaidPerSecurity.Valid {
		t.TotalAmountPaid = decimal.NewNullDecimal(t.AmountPaidPerSecurity.Decimal.Mul(qty))
	}

	if !t.TotalAmountUnpaid.Valid && t.AmountUnpaidPerSecurity.Valid {
		t.TotalAmountUnpaid = decimal.NewNullDecimal(t.AmountUnpaidPerSecurity.Decimal.Mul(qty))
	}
}
