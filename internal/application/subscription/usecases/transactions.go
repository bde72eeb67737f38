package usecases

import (
	"context"
	"fmt"
	"io"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/application/subscription/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/subscription"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/export"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
	"github.com/orris-inc/tenantdesk/internal/shared/utils"
)

type ListTransactionsQuery struct {
	Principal      *access.Principal
	SubscriptionID *uint
	Page           int
	PageSize       int
}

type ListTransactionsResult struct {
	Transactions []*dto.TransactionResponse
	Total        int64
	Page         int
	PageSize     int
}

type ListTransactionsUseCase struct {
	transactionRepo subscription.TransactionRepository
	guard           *authorization.Guard
	logger          logger.Interface
}

func NewListTransactionsUseCase(transactionRepo subscription.TransactionRepository, guard *authorization.Guard, logger logger.Interface) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{transactionRepo: transactionRepo, guard: guard, logger: logger}
}

func (uc *ListTransactionsUseCase) Execute(ctx context.Context, query ListTransactionsQuery) (*ListTransactionsResult, error) {
	scope, err := uc.guard.Scope(query.Principal, access.ResourceTransaction)
	if err != nil {
		return nil, err
	}

	page := utils.NormalizePagination(query.Page, query.PageSize)
	list, total, err := uc.transactionRepo.List(ctx, subscription.TransactionFilter{
		Scope:          authorization.SubscriptionScope(scope),
		SubscriptionID: query.SubscriptionID,
		Page:           page.Page,
		PageSize:       page.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list transactions", "error", err)
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &ListTransactionsResult{
		Transactions: dto.ToTransactionResponses(list),
		Total:        total,
		Page:         page.Page,
		PageSize:     page.PageSize,
	}, nil
}

type ExportTransactionsQuery struct {
	Principal      *access.Principal
	SubscriptionID *uint
}

var transactionColumns = []string{
	"transaction_id", "subscription_id", "amount", "payment_method", "status", "payment_date",
}

// ExportTransactionsUseCase writes every transaction in the caller's scope as
// an XLSX workbook.
type ExportTransactionsUseCase struct {
	transactionRepo subscription.TransactionRepository
	guard           *authorization.Guard
	logger          logger.Interface
}

func NewExportTransactionsUseCase(transactionRepo subscription.TransactionRepository, guard *authorization.Guard, logger logger.Interface) *ExportTransactionsUseCase {
	return &ExportTransactionsUseCase{transactionRepo: transactionRepo, guard: guard, logger: logger}
}

// Execute returns the number of exported rows.
func (uc *ExportTransactionsUseCase) Execute(ctx context.Context, query ExportTransactionsQuery, w io.Writer) (int, error) {
	scope, err := uc.guard.Scope(query.Principal, access.ResourceTransaction)
	if err != nil {
		return 0, err
	}

	list, _, err := uc.transactionRepo.List(ctx, subscription.TransactionFilter{
		Scope:          authorization.SubscriptionScope(scope),
		SubscriptionID: query.SubscriptionID,
	})
	if err != nil {
		uc.logger.Errorw("failed to load transactions for export", "error", err)
		return 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	rows := make([][]any, 0, len(list))
	for _, t := range list {
		rows = append(rows, []any{
			t.Reference,
			t.SubscriptionID,
			t.Amount.Float64(),
			t.PaymentMethod,
			string(t.Status),
			t.PaymentDate.Format("2006-01-02 15:04:05"),
		})
	}

	if err := export.WriteXLSX(w, export.Table{Name: "Transactions", Columns: transactionColumns, Rows: rows}); err != nil {
		return 0, fmt.Errorf("failed to write transactions workbook: %w", err)
	}

	uc.logger.Infow("transactions exported", "rows", len(rows), "by", query.Principal.UserID())
	return len(rows), nil
}
