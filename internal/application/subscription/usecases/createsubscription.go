package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/application/subscription/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/department"
	"github.com/orris-inc/tenantdesk/internal/domain/reseller"
	"github.com/orris-inc/tenantdesk/internal/domain/servicepackage"
	"github.com/orris-inc/tenantdesk/internal/domain/subscription"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/metrics"
	"github.com/orris-inc/tenantdesk/internal/shared/biztime"
	"github.com/orris-inc/tenantdesk/internal/shared/db"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/id"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type CreateSubscriptionCommand struct {
	Principal    *access.Principal
	DepartmentID uint
	PackageID    uint
	// ResellerID forces the reseller path through that reseller. When nil the
	// path follows from the caller's role on the department.
	ResellerID    *uint
	PaymentMethod string
}

type CreateSubscriptionUseCase struct {
	departmentRepo   department.Repository
	customerRepo     reseller.CustomerRepository
	packageRepo      servicepackage.Repository
	subscriptionRepo subscription.Repository
	transactionRepo  subscription.TransactionRepository
	txManager        db.Transactor
	guard            *authorization.Guard
	metrics          *metrics.Metrics
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	departmentRepo department.Repository,
	customerRepo reseller.CustomerRepository,
	packageRepo servicepackage.Repository,
	subscriptionRepo subscription.Repository,
	transactionRepo subscription.TransactionRepository,
	txManager db.Transactor,
	guard *authorization.Guard,
	metrics *metrics.Metrics,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		departmentRepo:   departmentRepo,
		customerRepo:     customerRepo,
		packageRepo:      packageRepo,
		subscriptionRepo: subscriptionRepo,
		transactionRepo:  transactionRepo,
		txManager:        txManager,
		guard:            guard,
		metrics:          metrics,
		logger:           logger,
	}
}

// Execute subscribes a department to a package. Root admins and the
// department's admins buy directly. A reseller admin buys through the
// reseller that has the department as an active customer, which stamps the
// subscription with source reseller. The subscription and its completed
// payment are written in one transaction.
func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*dto.SubscribeResponse, error) {
	source, resellerID, err := uc.authorize(cmd)
	if err != nil {
		return nil, err
	}

	var (
		sub *subscription.Subscription
		txn *subscription.Transaction
	)
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if source == subscription.SourceReseller {
			link, err := uc.customerRepo.GetActive(txCtx, *resellerID, cmd.DepartmentID)
			if err != nil {
				return fmt.Errorf("failed to get reseller customer: %w", err)
			}
			if link == nil {
				return apperrors.NewNotFoundError("department is not an active customer of this reseller")
			}
		} else {
			dept, err := uc.departmentRepo.GetByID(txCtx, cmd.DepartmentID)
			if err != nil {
				return fmt.Errorf("failed to get department: %w", err)
			}
			if dept == nil {
				return apperrors.NewNotFoundError("department not found")
			}
		}

		pkg, err := uc.packageRepo.GetByID(txCtx, cmd.PackageID)
		if err != nil {
			return fmt.Errorf("failed to get service package: %w", err)
		}
		if pkg == nil {
			return apperrors.NewNotFoundError("service package not found")
		}
		if !pkg.IsActive() {
			return apperrors.NewBadRequestError("service package is not available")
		}

		start := biztime.Today()
		sub, err = subscription.NewSubscription(cmd.DepartmentID, pkg.ID(), start, pkg.PeriodEnd(start), source, resellerID)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		if err := uc.subscriptionRepo.Create(txCtx, sub); err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}

		ref, err := id.NewTransactionReference()
		if err != nil {
			return fmt.Errorf("failed to generate transaction reference: %w", err)
		}
		txn, err = subscription.NewTransaction(sub.ID(), pkg.Price(), cmd.PaymentMethod, ref, subscription.PaymentCompleted)
		if err != nil {
			return err
		}
		if err := uc.transactionRepo.Create(txCtx, txn); err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		if apperrors.GetAppError(err) == nil {
			uc.logger.Errorw("failed to create subscription", "error", err,
				"department_id", cmd.DepartmentID, "package_id", cmd.PackageID)
		}
		return nil, err
	}

	uc.metrics.SubscriptionCreated(string(source))
	uc.logger.Infow("subscription created",
		"subscription_id", sub.ID(),
		"department_id", sub.DepartmentID(),
		"package_id", sub.PackageID(),
		"source", source,
		"transaction_id", txn.Reference,
		"by", cmd.Principal.UserID(),
	)

	return &dto.SubscribeResponse{
		Subscription: dto.ToSubscriptionResponse(sub),
		Transaction:  dto.ToTransactionResponse(txn),
	}, nil
}

// authorize decides the purchase path before anything is looked up.
func (uc *CreateSubscriptionUseCase) authorize(cmd CreateSubscriptionCommand) (subscription.Source, *uint, error) {
	p := cmd.Principal
	if cmd.ResellerID != nil {
		if err := uc.guard.Reseller(p, *cmd.ResellerID, access.ResourceSubscription, access.ActionCreate); err != nil {
			return "", nil, err
		}
		id := *cmd.ResellerID
		return subscription.SourceReseller, &id, nil
	}

	if err := uc.guard.Department(p, cmd.DepartmentID, access.ResourceSubscription, access.ActionCreate); err != nil {
		return "", nil, err
	}
	if p.IsRoot() || p.AdministersDepartment(cmd.DepartmentID) {
		return subscription.SourceDirect, nil, nil
	}
	if id, ok := p.ResellerFor(cmd.DepartmentID); ok {
		return subscription.SourceReseller, &id, nil
	}
	return "", nil, apperrors.NewForbiddenError("not allowed to subscribe this department")
}
