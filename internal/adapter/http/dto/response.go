package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goregistry/internal/compliance"
	"github.com/iho/goregistry/internal/domain"
	"github.com/iho/goregistry/internal/usecase"
)

// TransactionResponse represents a transaction in API responses. Absent
// amounts are null.
type TransactionResponse struct {
	ID                      string                   `json:"id"`
	EntityID                string                   `json:"entityId"`
	TransactionType         string                   `json:"transactionType"`
	Quantity                int64                    `json:"quantity"`
	SecurityClass           *domain.SecurityClassRef `json:"securityClass"`
	FromMember              *domain.MemberRef        `json:"fromMember"`
	ToMember                *domain.MemberRef        `json:"toMember"`
	AmountPaidPerSecurity   decimal.NullDecimal      `json:"amountPaidPerSecurity"`
	AmountUnpaidPerSecurity decimal.NullDecimal      `json:"amountUnpaidPerSecurity"`
	TotalAmountPaid         decimal.NullDecimal      `json:"totalAmountPaid"`
	TotalAmountUnpaid       decimal.NullDecimal      `json:"totalAmountUnpaid"`
	TransactionDate         time.Time                `json:"transactionDate"`
	SettlementDate          *time.Time               `json:"settlementDate"`
	Reference               string                   `json:"reference,omitempty"`
	Description             string                   `json:"description,omitempty"`
	CreatedAt               time.Time                `json:"createdAt"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                      t.ID,
		EntityID:                t.EntityID,
		TransactionType:         string(t.TransactionType),
		Quantity:                t.Quantity,
		SecurityClass:           t.SecurityClass,
		FromMember:              t.FromMember,
		ToMember:                t.ToMember,
		AmountPaidPerSecurity:   t.AmountPaidPerSecurity,
		AmountUnpaidPerSecurity: t.AmountUnpaidPerSecurity,
		TotalAmountPaid:         t.TotalAmountPaid,
		TotalAmountUnpaid:       t.TotalAmountUnpaid,
		TransactionDate:         t.TransactionDate,
		SettlementDate:          t.SettlementDate,
		Reference:               t.Reference,
		Description:             t.Description,
		CreatedAt:               t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// MemberResponse represents a member in API responses.
type MemberResponse struct {
	ID         string    `json:"id"`
	EntityID   string    `json:"entityId"`
	Name       string    `json:"name"`
	MemberType string    `json:"memberType"`
	Email      string    `json:"email,omitempty"`
	Address    string    `json:"address,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// MemberWithTransactionsResponse is a member together with the transactions
// it sent and received.
type MemberWithTransactionsResponse struct {
	*MemberResponse
	TransactionsFrom []*TransactionResponse `json:"transactionsFrom"`
	TransactionsTo   []*TransactionResponse `json:"transactionsTo"`
}

// MemberFromDomain converts domain member to response.
func MemberFromDomain(m *domain.Member) *MemberResponse {
	return &MemberResponse{
		ID:         m.ID,
		EntityID:   m.EntityID,
		Name:       m.Name,
		MemberType: string(m.MemberType),
		Email:      m.Email,
		Address:    m.Address,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// MemberWithTransactionsFromDomain converts a member and its transactions.
func MemberWithTransactionsFromDomain(m *domain.Member) *MemberWithTransactionsResponse {
	return &MemberWithTransactionsResponse{
		MemberResponse:   MemberFromDomain(m),
		TransactionsFrom: TransactionsFromDomain(m.TransactionsFrom),
		TransactionsTo:   TransactionsFromDomain(m.TransactionsTo),
	}
}

// MembersFromDomain converts domain members to responses.
func MembersFromDomain(members []*domain.Member) []*MemberResponse {
	result := make([]*MemberResponse, len(members))
	for i, m := range members {
		result[i] = MemberFromDomain(m)
	}
	return result
}

// SummaryResponse is one security class position.
type SummaryResponse struct {
	SecurityClassID     string          `json:"securityClassId"`
	SecurityClassName   string          `json:"securityClassName"`
	SecurityClassSymbol string          `json:"securityClassSymbol"`
	TotalQuantity       int64           `json:"totalQuantity"`
	TotalAmountPaid     decimal.Decimal `json:"totalAmountPaid"`
	TotalAmountUnpaid   decimal.Decimal `json:"totalAmountUnpaid"`
	Currency            string          `json:"currency"`
	TrancheCount        int             `json:"trancheCount"`
}

// FeedEntryResponse is a transaction with its direction for the member.
type FeedEntryResponse struct {
	*TransactionResponse
	Direction string `json:"direction"`
}

// HoldingsResponse is the reconciled holdings of one member.
type HoldingsResponse struct {
	MemberID     string               `json:"memberId"`
	MemberName   string               `json:"memberName"`
	Summaries    []SummaryResponse    `json:"summaries"`
	Transactions []*FeedEntryResponse `json:"transactions"`
}

// HoldingsFromDomain converts reconciled holdings to response.
func HoldingsFromDomain(h *usecase.MemberHoldings) *HoldingsResponse {
	resp := &HoldingsResponse{
		MemberID:     h.Member.ID,
		MemberName:   h.Member.Name,
		Summaries:    make([]SummaryResponse, len(h.Holdings.Summaries)),
		Transactions: make([]*FeedEntryResponse, len(h.Holdings.Transactions)),
	}

	for i, s := range h.Holdings.Summaries {
		resp.Summaries[i] = SummaryResponse{
			SecurityClassID:     s.SecurityClassID,
			SecurityClassName:   s.SecurityClassName,
			SecurityClassSymbol: s.SecurityClassSymbol,
			TotalQuantity:       s.TotalQuantity,
			TotalAmountPaid:     s.TotalAmountPaid,
			TotalAmountUnpaid:   s.TotalAmountUnpaid,
			Currency:            s.Currency,
			TrancheCount:        s.TrancheCount,
		}
	}

	for i, e := range h.Holdings.Transactions {
		resp.Transactions[i] = &FeedEntryResponse{
			TransactionResponse: TransactionFromDomain(e.Transaction),
			Direction:           string(e.Direction),
		}
	}

	return resp
}

// IdentifierResponse is an entity identifier with its display label.
type IdentifierResponse struct {
	Type           string `json:"type"`
	Label          string `json:"label"`
	Value          string `json:"value"`
	FormattedValue string `json:"formattedValue"`
	Primary        bool   `json:"primary"`
}

// EntityResponse represents an entity in API responses.
type EntityResponse struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Country         string               `json:"country"`
	EntityType      string               `json:"entityType"`
	EntityTypeLabel string               `json:"entityTypeLabel"`
	Identifiers     []IdentifierResponse `json:"identifiers"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// EntityFromView converts an entity view to response.
func EntityFromView(v *usecase.EntityView) *EntityResponse {
	resp := &EntityResponse{
		ID:              v.Entity.ID,
		Name:            v.Entity.Name,
		Country:         v.Entity.Country,
		EntityType:      v.Entity.EntityTypeCode,
		EntityTypeLabel: v.EntityTypeLabel,
		Identifiers:     make([]IdentifierResponse, len(v.Identifiers)),
		CreatedAt:       v.Entity.CreatedAt,
		UpdatedAt:       v.Entity.UpdatedAt,
	}

	for i, ident := range v.Identifiers {
		resp.Identifiers[i] = IdentifierResponse{
			Type:           ident.Type,
			Label:          ident.Label,
			Value:          ident.Value,
			FormattedValue: ident.FormattedValue,
			Primary:        ident.Primary,
		}
	}

	return resp
}

// IdentifierTypeResponse describes an identifier type, optionally applied to
// a value.
type IdentifierTypeResponse struct {
	Country        string `json:"country"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	Length         int    `json:"length,omitempty"`
	Value          string `json:"value,omitempty"`
	FormattedValue string `json:"formattedValue,omitempty"`
}

// IdentifierTypeFromCompliance converts a compliance identifier type.
func IdentifierTypeFromCompliance(country string, t compliance.IdentifierType, value string) *IdentifierTypeResponse {
	resp := &IdentifierTypeResponse{
		Country: country,
		Code:    t.Code,
		Name:    t.Name,
		Length:  t.Format.Length(),
	}

	if value != "" {
		resp.Value = value
		resp.FormattedValue = t.FormatValue(value)
	}

	return resp
}

// EntityTypeResponse describes an entity type of a country.
type EntityTypeResponse struct {
	Country string `json:"country"`
	Code    string `json:"code"`
	Name    string `json:"name"`
}
