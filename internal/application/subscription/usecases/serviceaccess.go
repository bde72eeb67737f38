package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/application/subscription/dto"
	userdto "github.com/orris-inc/tenantdesk/internal/application/user/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/department"
	"github.com/orris-inc/tenantdesk/internal/domain/subscription"
	"github.com/orris-inc/tenantdesk/internal/domain/user"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/metrics"
	"github.com/orris-inc/tenantdesk/internal/shared/biztime"
	"github.com/orris-inc/tenantdesk/internal/shared/db"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type GrantAccessCommand struct {
	Principal      *access.Principal
	SubscriptionID uint
	UserID         uint
}

// GrantAccessUseCase gives a member of the subscribing department access to
// the subscribed package.
type GrantAccessUseCase struct {
	loader         subscriptionLoader
	accessRepo     subscription.AccessRepository
	assignmentRepo department.AssignmentRepository
	userRepo       user.Repository
	txManager      db.Transactor
	guard          *authorization.Guard
	metrics        *metrics.Metrics
	logger         logger.Interface
}

func NewGrantAccessUseCase(
	subscriptionRepo subscription.Repository,
	accessRepo subscription.AccessRepository,
	assignmentRepo department.AssignmentRepository,
	userRepo user.Repository,
	txManager db.Transactor,
	guard *authorization.Guard,
	metrics *metrics.Metrics,
	logger logger.Interface,
) *GrantAccessUseCase {
	return &GrantAccessUseCase{
		loader:         subscriptionLoader{subscriptionRepo},
		accessRepo:     accessRepo,
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		txManager:      txManager,
		guard:          guard,
		metrics:        metrics,
		logger:         logger,
	}
}

func (uc *GrantAccessUseCase) Execute(ctx context.Context, cmd GrantAccessCommand) (*dto.ServiceAccessResponse, error) {
	sub, err := uc.loader.load(ctx, cmd.Principal, cmd.SubscriptionID)
	if err != nil {
		return nil, err
	}
	if err := uc.guard.Subscription(cmd.Principal, sub, access.ResourceServiceAccess, access.ActionCreate); err != nil {
		return nil, err
	}

	var (
		grant *subscription.ServiceAccess
		u     *user.User
	)
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		u, err = uc.userRepo.GetByID(txCtx, cmd.UserID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if u == nil {
			return apperrors.NewNotFoundError("user not found")
		}

		member, err := uc.assignmentRepo.Exists(txCtx, department.RoleMember, u.ID(), sub.DepartmentID())
		if err != nil {
			return fmt.Errorf("failed to check department membership: %w", err)
		}
		if !member {
			return apperrors.NewBadRequestError("user is not a member of the subscribing department")
		}

		exists, err := uc.accessRepo.Exists(txCtx, u.ID(), sub.PackageID(), sub.ID())
		if err != nil {
			return fmt.Errorf("failed to check service access: %w", err)
		}
		if exists {
			return errAlreadyHasAccess
		}
		if !sub.IsActiveOn(biztime.Today()) {
			return apperrors.NewBadRequestError("subscription is not active")
		}

		grant, err = subscription.NewServiceAccess(u.ID(), sub)
		if err != nil {
			return err
		}
		if err := uc.accessRepo.Add(txCtx, grant); err != nil {
			if apperrors.IsDuplicateError(err) {
				return errAlreadyHasAccess
			}
			return fmt.Errorf("failed to grant service access: %w", err)
		}
		return nil
	})
	if err != nil {
		if apperrors.GetAppError(err) == nil {
			uc.logger.Errorw("failed to grant service access", "error", err,
				"subscription_id", sub.ID(), "user_id", cmd.UserID)
		}
		return nil, err
	}

	uc.metrics.AccessChanged("grant")
	uc.logger.Infow("service access granted",
		"subscription_id", sub.ID(),
		"package_id", sub.PackageID(),
		"user_id", u.ID(),
		"by", cmd.Principal.UserID(),
	)

	resp := dto.ToServiceAccessResponse(grant)
	summary := userdto.ToUserSummary(u)
	resp.User = &summary
	return resp, nil
}

var errAlreadyHasAccess = apperrors.NewConflictError("user already has access to this service")

type RevokeAccessCommand struct {
	Principal      *access.Principal
	SubscriptionID uint
	UserID         uint
}

type RevokeAccessUseCase struct {
	loader     subscriptionLoader
	accessRepo subscription.AccessRepository
	guard      *authorization.Guard
	metrics    *metrics.Metrics
	logger     logger.Interface
}

func NewRevokeAccessUseCase(
	subscriptionRepo subscription.Repository,
	accessRepo subscription.AccessRepository,
	guard *authorization.Guard,
	metrics *metrics.Metrics,
	logger logger.Interface,
) *RevokeAccessUseCase {
	return &RevokeAccessUseCase{
		loader:     subscriptionLoader{subscriptionRepo},
		accessRepo: accessRepo,
		guard:      guard,
		metrics:    metrics,
		logger:     logger,
	}
}

func (uc *RevokeAccessUseCase) Execute(ctx context.Context, cmd RevokeAccessCommand) error {
	sub, err := uc.loader.load(ctx, cmd.Principal, cmd.SubscriptionID)
	if err != nil {
		return err
	}
	if err := uc.guard.Subscription(cmd.Principal, sub, access.ResourceServiceAccess, access.ActionDelete); err != nil {
		return err
	}

	removed, err := uc.accessRepo.Remove(ctx, cmd.UserID, sub.PackageID(), sub.ID())
	if err != nil {
		uc.logger.Errorw("failed to revoke service access", "error", err, "subscription_id", sub.ID(), "user_id", cmd.UserID)
		return fmt.Errorf("failed to revoke service access: %w", err)
	}
	if !removed {
		return apperrors.NewNotFoundError("user has no access to this service")
	}

	uc.metrics.AccessChanged("revoke")
	uc.logger.Infow("service access revoked", "subscription_id", sub.ID(), "user_id", cmd.UserID, "by", cmd.Principal.UserID())
	return nil
}

type ListAccessQuery struct {
	Principal      *access.Principal
	SubscriptionID uint
}

type ListAccessUseCase struct {
	loader     subscriptionLoader
	accessRepo subscription.AccessRepository
	userRepo   user.Repository
	guard      *authorization.Guard
	logger     logger.Interface
}

func NewListAccessUseCase(
	subscriptionRepo subscription.Repository,
	accessRepo subscription.AccessRepository,
	userRepo user.Repository,
	guard *authorization.Guard,
	logger logger.Interface,
) *ListAccessUseCase {
	return &ListAccessUseCase{
		loader:     subscriptionLoader{subscriptionRepo},
		accessRepo: accessRepo,
		userRepo:   userRepo,
		guard:      guard,
		logger:     logger,
	}
}

func (uc *ListAccessUseCase) Execute(ctx context.Context, query ListAccessQuery) ([]*dto.ServiceAccessResponse, error) {
	sub, err := uc.loader.load(ctx, query.Principal, query.SubscriptionID)
	if err != nil {
		return nil, err
	}
	if err := uc.guard.Subscription(query.Principal, sub, access.ResourceServiceAccess, access.ActionRead); err != nil {
		return nil, err
	}

	grants, err := uc.accessRepo.ListBySubscription(ctx, sub.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list service access: %w", err)
	}
	ids := make([]uint, 0, len(grants))
	for _, g := range grants {
		ids = append(ids, g.UserID)
	}
	users, err := uc.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	byID := make(map[uint]*user.User, len(users))
	for _, u := range users {
		byID[u.ID()] = u
	}

	out := make([]*dto.ServiceAccessResponse, 0, len(grants))
	for _, g := range grants {
		resp := dto.ToServiceAccessResponse(g)
		if u, ok := byID[g.UserID]; ok {
			summary := userdto.ToUserSummary(u)
			resp.User = &summary
		}
		out = append(out, resp)
	}
	return out, nil
}
