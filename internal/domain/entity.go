package domain

import "time"

// Entity represents a registered corporate or legal entity.
type Entity struct {
	ID             string
	Name           string
	Country        string
	EntityTypeCode string
	Identifiers    []EntityIdentifier
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EntityIdentifier is a registration number issued to an entity, such as an
// ABN or a company number.
type EntityIdentifier struct {
	Type    string
	Value   string
	Primary bool
}

// MemberType classifies a member of an entity.
type MemberType string

const (
	MemberTypeIndividual MemberType = "INDIVIDUAL"
	MemberTypeJoint      MemberType = "JOINT"
	MemberTypeCorporate  MemberType = "CORPORATE"
)

// Member represents a shareholder or unit-holder of an entity.
type Member struct {
	ID         string
	EntityID   string
	Name       string
	MemberType MemberType
	Email      string
	Address    string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Populated only when transactions were requested.
	TransactionsFrom []*Transaction
	TransactionsTo   []*Transaction
}

// Ref returns the reference form of the member used on transactions.
func (m *Member) Ref() *MemberRef {
	return &MemberRef{ID: m.ID, Name: m.Name}
}

// SecurityClass is a category of instrument issued by an entity.
type SecurityClass struct {
	ID           string
	EntityID     string
	Name         string
	Symbol       string
	VotingRights bool
	IsActive     bool
	CreatedAt    time.Time
}

// Ref returns the reference form of the class used on transactions.
func (c *SecurityClass) Ref() *SecurityClassRef {
	return &SecurityClassRef{ID: c.ID, Name: c.Name, Symbol: c.Symbol}
}
