package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/goregistry/internal/domain"
	"github.com/iho/goregistry/internal/usecase"
)

const transactionSelect = `
	SELECT t.id, t.entity_id, t.transaction_type, t.quantity,
		sc.id, sc.name, sc.symbol,
		t.from_member_id, fm.name,
		t.to_member_id, tm.name,
		t.amount_paid_per_security, t.amount_unpaid_per_security,
		t.total_amount_paid, t.total_amount_unpaid,
		t.transaction_date, t.settlement_date,
		t.reference, t.description, t.created_at
	FROM transactions t
	JOIN security_classes sc ON sc.id = t.security_class_id
	LEFT JOIN members fm ON fm.id = t.from_member_id
	LEFT JOIN members tm ON tm.id = t.to_member_id
`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	db querier
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: pool}
}

// Create inserts a transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	query := `
		INSERT INTO transactions (
			id, entity_id, transaction_type, quantity, security_class_id,
			from_member_id, to_member_id,
			amount_paid_per_security, amount_unpaid_per_security,
			total_amount_paid, total_amount_unpaid,
			transaction_date, settlement_date, reference, description, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	var fromID, toID string
	if transaction.FromMember != nil {
		fromID = transaction.FromMember.ID
	}
	if transaction.ToMember != nil {
		toID = transaction.ToMember.ID
	}

	_, err := pgxTx(tx).Exec(ctx, query,
		transaction.ID,
		transaction.EntityID,
		string(transaction.TransactionType),
		transaction.Quantity,
		transaction.SecurityClassID(),
		textOrNull(fromID),
		textOrNull(toID),
		nullDecimalToNumeric(transaction.AmountPaidPerSecurity),
		nullDecimalToNumeric(transaction.AmountUnpaidPerSecurity),
		nullDecimalToNumeric(transaction.TotalAmountPaid),
		nullDecimalToNumeric(transaction.TotalAmountUnpaid),
		transaction.TransactionDate,
		timePtrToPgTimestamptz(transaction.SettlementDate),
		transaction.Reference,
		transaction.Description,
		transaction.CreatedAt,
	)

	return err
}

// ListByMember returns the transactions the member sent and received, each in
// recording order.
func (r *TransactionRepository) ListByMember(ctx context.Context, memberID string) (from, to []*domain.Transaction, err error) {
	return listByMember(ctx, r.db, memberID)
}

// ListByMemberTx is ListByMember inside tx, so it observes rows locked there.
func (r *TransactionRepository) ListByMemberTx(ctx context.Context, tx usecase.Transaction, memberID string) (from, to []*domain.Transaction, err error) {
	return listByMember(ctx, pgxTx(tx), memberID)
}

func listByMember(ctx context.Context, db querier, memberID string) (from, to []*domain.Transaction, err error) {
	from, err = queryTransactions(ctx, db, transactionSelect+` WHERE t.from_member_id = $1 ORDER BY t.created_at, t.id`, memberID)
	if err != nil {
		return nil, nil, err
	}

	to, err = queryTransactions(ctx, db, transactionSelect+` WHERE t.to_member_id = $1 ORDER BY t.created_at, t.id`, memberID)
	if err != nil {
		return nil, nil, err
	}

	return from, to, nil
}

func queryTransactions(ctx context.Context, db querier, query string, args ...any) ([]*domain.Transaction, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	return transactions, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t               domain.Transaction
		transactionType string
		class           domain.SecurityClassRef
		fromID, fromNm  pgtype.Text
		toID, toNm      pgtype.Text
		paidPer         pgtype.Numeric
		unpaidPer       pgtype.Numeric
		paidTotal       pgtype.Numeric
		unpaidTotal     pgtype.Numeric
		settlement      pgtype.Timestamptz
	)

	err := row.Scan(
		&t.ID,
		&t.EntityID,
		&transactionType,
		&t.Quantity,
		&class.ID,
		&class.Name,
		&class.Symbol,
		&fromID,
		&fromNm,
		&toID,
		&toNm,
		&paidPer,
		&unpaidPer,
		&paidTotal,
		&unpaidTotal,
		&t.TransactionDate,
		&settlement,
		&t.Reference,
		&t.Description,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.TransactionType = domain.TransactionType(transactionType)
	t.SecurityClass = &class
	if fromID.Valid {
		t.FromMember = &domain.MemberRef{ID: fromID.String, Name: fromNm.String}
	}
	if toID.Valid {
		t.ToMember = &domain.MemberRef{ID: toID.String, Name: toNm.String}
	}
	t.AmountPaidPerSecurity = numericToNullDecimal(paidPer)
	t.AmountUnpaidPerSecurity = numericToNullDecimal(unpaidPer)
	t.TotalAmountPaid = numericToNullDecimal(paidTotal)
	t.TotalAmountUnpaid = numericToNullDecimal(unpaidTotal)
	t.SettlementDate = pgTimestamptzToTimePtr(settlement)

	return &t, nil
}
