package handlers

import (
	"context"
	"io"

	"github.com/orris-inc/tenantdesk/internal/application/subscription/dto"
	"github.com/orris-inc/tenantdesk/internal/application/subscription/usecases"
)

// Use case interfaces for SubscriptionHandler and TransactionHandler

type createSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateSubscriptionCommand) (*dto.SubscribeResponse, error)
}

type getSubscriptionUseCase interface {
	Execute(ctx context.Context, query usecases.GetSubscriptionQuery) (*dto.SubscriptionResponse, error)
}

type listSubscriptionsUseCase interface {
	Execute(ctx context.Context, query usecases.ListSubscriptionsQuery) (*usecases.ListSubscriptionsResult, error)
}

type cancelSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd usecases.CancelSubscriptionCommand) (*dto.SubscriptionResponse, error)
}

type grantAccessUseCase interface {
	Execute(ctx context.Context, cmd usecases.GrantAccessCommand) (*dto.ServiceAccessResponse, error)
}

type revokeAccessUseCase interface {
	Execute(ctx context.Context, cmd usecases.RevokeAccessCommand) error
}

type listAccessUseCase interface {
	Execute(ctx context.Context, query usecases.ListAccessQuery) ([]*dto.ServiceAccessResponse, error)
}

type myAccessUseCase interface {
	Execute(ctx context.Context, query usecases.MyAccessQuery) ([]*dto.MyAccessResponse, error)
}

type listTransactionsUseCase interface {
	Execute(ctx context.Context, query usecases.ListTransactionsQuery) (*usecases.ListTransactionsResult, error)
}

type exportTransactionsUseCase interface {
	Execute(ctx context.Context, query usecases.ExportTransactionsQuery, w io.Writer) (int, error)
}
