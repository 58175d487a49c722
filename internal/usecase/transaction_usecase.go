package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/goregistry/internal/domain"
)

// TransactionUseCase records securities transactions.
type TransactionUseCase struct {
	txManager       TransactionManager
	memberRepo      MemberRepository
	classRepo       SecurityClassRepository
	transactionRepo TransactionRepository
	idGen           IDGenerator
	retrier         Retrier
	cache           Cache
	metrics         MetricsRecorder
	logger          zerolog.Logger
}

// TransactionUseCaseConfig holds the dependencies of TransactionUseCase.
// Retrier, Cache and Metrics are optional.
type TransactionUseCaseConfig struct {
	TxManager       TransactionManager
	MemberRepo      MemberRepository
	ClassRepo       SecurityClassRepository
	TransactionRepo TransactionRepository
	IDGen           IDGenerator
	Retrier         Retrier
	Cache           Cache
	Metrics         MetricsRecorder
	Logger          zerolog.Logger
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(cfg TransactionUseCaseConfig) *TransactionUseCase {
	if cfg.Metrics == nil {
		cfg.Metrics = nopMetrics{}
	}

	return &TransactionUseCase{
		txManager:       cfg.TxManager,
		memberRepo:      cfg.MemberRepo,
		classRepo:       cfg.ClassRepo,
		transactionRepo: cfg.TransactionRepo,
		idGen:           cfg.IDGen,
		retrier:         cfg.Retrier,
		cache:           cfg.Cache,
		metrics:         cfg.Metrics,
		logger:          cfg.Logger,
	}
}

// RecordTransactionInput represents input for recording a transaction.
type RecordTransactionInput struct {
	EntityID                string
	TransactionType         domain.TransactionType
	SecurityClassID         string
	FromMemberID            string
	ToMemberID              string
	Quantity                int64
	AmountPaidPerSecurity   decimal.NullDecimal
	AmountUnpaidPerSecurity decimal.NullDecimal
	TotalAmountPaid         decimal.NullDecimal
	TotalAmountUnpaid       decimal.NullDecimal
	TransactionDate         *time.Time
	SettlementDate          *time.Time
	Reference               string
	Description             string
}

// RecordTransaction validates and persists a transaction. A sender must hold
// at least the quantity being moved in the security class.
func (uc *TransactionUseCase) RecordTransaction(ctx context.Context, input RecordTransactionInput) (*domain.Transaction, error) {
	transaction, err := uc.recordTransaction(ctx, input)
	if err != nil {
		uc.metrics.TransactionFailed(failureReason(err))
		return nil, err
	}

	uc.metrics.TransactionRecorded(string(transaction.TransactionType))
	uc.invalidate(ctx, input.FromMemberID, input.ToMemberID)

	return transaction, nil
}

func (uc *TransactionUseCase) recordTransaction(ctx context.Context, input RecordTransactionInput) (*domain.Transaction, error) {
	if err := domain.ValidateID(input.EntityID); err != nil {
		return nil, err
	}

	if err := domain.ValidateReference(input.Reference, input.Description); err != nil {
		return nil, err
	}

	class, err := uc.classRepo.GetByID(ctx, input.SecurityClassID)
	if err != nil {
		return nil, err
	}

	if class.EntityID != input.EntityID {
		return nil, domain.ErrEntityMismatch
	}

	now := time.Now().UTC()

	transactionDate := now
	if input.TransactionDate != nil {
		transactionDate = input.TransactionDate.UTC()
	}

	transaction := &domain.Transaction{
		ID:                      uc.idGen.Generate(),
		EntityID:                input.EntityID,
		TransactionType:         input.TransactionType,
		Quantity:                input.Quantity,
		SecurityClass:           class.Ref(),
		AmountPaidPerSecurity:   input.AmountPaidPerSecurity,
		AmountUnpaidPerSecurity: input.AmountUnpaidPerSecurity,
		TotalAmountPaid:         input.TotalAmountPaid,
		TotalAmountUnpaid:       input.TotalAmountUnpaid,
		TransactionDate:         transactionDate,
		SettlementDate:          input.SettlementDate,
		Reference:               input.Reference,
		Description:             input.Description,
		CreatedAt:               now,
	}

	if input.FromMemberID != "" {
		transaction.FromMember = &domain.MemberRef{ID: input.FromMemberID}
	}
	if input.ToMemberID != "" {
		transaction.ToMember = &domain.MemberRef{ID: input.ToMemberID}
	}

	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	transaction.FillTotals()

	persist := func() error {
		return uc.persist(ctx, transaction)
	}

	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, persist)
	} else {
		err = persist()
	}
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

func (uc *TransactionUseCase) persist(ctx context.Context, transaction *domain.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Lock members in sorted order to avoid deadlocks between opposite transfers.
	ids := memberIDs(transaction)
	sort.Strings(ids)

	members, err := uc.memberRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return err
	}

	if len(members) != len(ids) {
		return domain.ErrMemberNotFound
	}

	for _, m := range members {
		if m.EntityID != transaction.EntityID {
			return domain.ErrEntityMismatch
		}
		if transaction.FromMember != nil && m.ID == transaction.FromMember.ID {
			transaction.FromMember = m.Ref()
		}
		if transaction.ToMember != nil && m.ID == transaction.ToMember.ID {
			transaction.ToMember = m.Ref()
		}
	}

	if transaction.FromMember != nil {
		if err := uc.checkHolding(ctx, tx, transaction); err != nil {
			return err
		}
	}

	if err := uc.transactionRepo.Create(ctx, tx, transaction); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// checkHolding rejects a transaction whose sender holds fewer securities of
// the class than it moves.
func (uc *TransactionUseCase) checkHolding(ctx context.Context, tx Transaction, transaction *domain.Transaction) error {
	from, to, err := uc.transactionRepo.ListByMemberTx(ctx, tx, transaction.FromMember.ID)
	if err != nil {
		return err
	}

	var held int64
	for _, s := range domain.SummarizeHoldings(to, from, "") {
		if s.SecurityClassID == transaction.SecurityClass.ID {
			held = s.TotalQuantity
			break
		}
	}

	if held < transaction.Quantity {
		return domain.ErrInsufficientHolding
	}

	return nil
}

func (uc *TransactionUseCase) invalidate(ctx context.Context, memberIDs ...string) {
	if uc.cache == nil {
		return
	}

	keys := make([]string, 0, len(memberIDs))
	for _, id := range memberIDs {
		if id != "" {
			keys = append(keys, memberCacheKey(id))
		}
	}

	if err := uc.cache.Delete(ctx, keys...); err != nil {
		uc.logger.Warn().Err(err).Strs("keys", keys).Msg("failed to invalidate member cache")
	}
}

func memberIDs(transaction *domain.Transaction) []string {
	ids := make([]string, 0, 2)
	if transaction.FromMember != nil {
		ids = append(ids, transaction.FromMember.ID)
	}
	if transaction.ToMember != nil {
		ids = append(ids, transaction.ToMember.ID)
	}
	return ids
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientHolding):
		return "insufficient_holding"
	case errors.Is(err, domain.ErrMemberNotFound), errors.Is(err, domain.ErrSecurityClassNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrEntityMismatch):
		return "entity_mismatch"
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidTransactionType),
		errors.Is(err, domain.ErrMissingParty),
		errors.Is(err, domain.ErrSameMember),
		errors.Is(err, domain.ErrSecurityClassRequired),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrInvalidReference),
		errors.Is(err, domain.ErrInvalidIDFormat):
		return "validation"
	default:
		return "internal"
	}
}
