package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	userdto "github.com/orris-inc/tenantdesk/internal/application/user/dto"
	userusecases "github.com/orris-inc/tenantdesk/internal/application/user/usecases"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/reseller"
	"github.com/orris-inc/tenantdesk/internal/domain/user"
	"github.com/orris-inc/tenantdesk/internal/shared/db"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

// UserProvisioner resolves an email to a user, creating the account when needed.
type UserProvisioner interface {
	Execute(ctx context.Context, cmd userusecases.EnsureUserCommand) (*userusecases.EnsureUserResult, error)
	Welcome(ctx context.Context, res *userusecases.EnsureUserResult, label string)
}

type AddResellerAdminCommand struct {
	Principal  *access.Principal
	ResellerID uint
	Email      string
	FullName   string
	Password   string
}

type AddResellerAdminResult struct {
	ResellerID  uint
	User        *userdto.UserResponse
	UserCreated bool
}

type AddResellerAdminUseCase struct {
	resellerRepo reseller.Repository
	adminRepo    reseller.AdminRepository
	userRepo     user.Repository
	users        UserProvisioner
	txManager    db.Transactor
	guard        *authorization.Guard
	logger       logger.Interface
}

func NewAddResellerAdminUseCase(
	resellerRepo reseller.Repository,
	adminRepo reseller.AdminRepository,
	userRepo user.Repository,
	users UserProvisioner,
	txManager db.Transactor,
	guard *authorization.Guard,
	logger logger.Interface,
) *AddResellerAdminUseCase {
	return &AddResellerAdminUseCase{
		resellerRepo: resellerRepo,
		adminRepo:    adminRepo,
		userRepo:     userRepo,
		users:        users,
		txManager:    txManager,
		guard:        guard,
		logger:       logger,
	}
}

func (uc *AddResellerAdminUseCase) Execute(ctx context.Context, cmd AddResellerAdminCommand) (*AddResellerAdminResult, error) {
	if err := uc.guard.Reseller(cmd.Principal, cmd.ResellerID, access.ResourceResellerAdmin, access.ActionCreate); err != nil {
		return nil, err
	}

	var (
		r        *reseller.Reseller
		provided *userusecases.EnsureUserResult
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		r, err = uc.resellerRepo.GetByID(txCtx, cmd.ResellerID)
		if err != nil {
			return fmt.Errorf("failed to get reseller: %w", err)
		}
		if r == nil {
			return apperrors.NewNotFoundError("reseller not found")
		}

		provided, err = uc.users.Execute(txCtx, userusecases.EnsureUserCommand{
			Email:    cmd.Email,
			FullName: cmd.FullName,
			Password: cmd.Password,
		})
		if err != nil {
			return err
		}
		u := provided.User

		exists, err := uc.adminRepo.Exists(txCtx, u.ID(), r.ID())
		if err != nil {
			return fmt.Errorf("failed to check reseller admin: %w", err)
		}
		if exists {
			return errAlreadyResellerAdmin
		}

		admin, err := reseller.NewAdmin(u.ID(), r.ID())
		if err != nil {
			return err
		}
		if err := uc.adminRepo.Add(txCtx, admin); err != nil {
			if apperrors.IsDuplicateError(err) {
				return errAlreadyResellerAdmin
			}
			return fmt.Errorf("failed to add reseller admin: %w", err)
		}

		if !u.IsResellerAdmin() {
			u.PromoteToResellerAdmin()
			if err := uc.userRepo.Update(txCtx, u); err != nil {
				return fmt.Errorf("failed to promote user: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if apperrors.GetAppError(err) == nil {
			uc.logger.Errorw("failed to add reseller admin", "error", err, "reseller_id", cmd.ResellerID)
		}
		return nil, err
	}

	uc.users.Welcome(ctx, provided, "reseller "+r.Name())
	uc.logger.Infow("reseller admin added",
		"reseller_id", r.ID(),
		"user_id", provided.User.ID(),
		"user_created", provided.Created,
		"by", cmd.Principal.UserID(),
	)

	return &AddResellerAdminResult{
		ResellerID:  r.ID(),
		User:        userdto.ToUserResponse(provided.User),
		UserCreated: provided.Created,
	}, nil
}

var errAlreadyResellerAdmin = apperrors.NewConflictError("user is already an admin of this reseller")

type RemoveResellerAdminCommand struct {
	Principal  *access.Principal
	ResellerID uint
	UserID     uint
}

type RemoveResellerAdminUseCase struct {
	adminRepo reseller.AdminRepository
	userRepo  user.Repository
	txManager db.Transactor
	guard     *authorization.Guard
	logger    logger.Interface
}

func NewRemoveResellerAdminUseCase(
	adminRepo reseller.AdminRepository,
	userRepo user.Repository,
	txManager db.Transactor,
	guard *authorization.Guard,
	logger logger.Interface,
) *RemoveResellerAdminUseCase {
	return &RemoveResellerAdminUseCase{adminRepo: adminRepo, userRepo: userRepo, txManager: txManager, guard: guard, logger: logger}
}

// Execute deletes the admin row. The user's reseller flag is cleared once
// they administer no reseller at all.
func (uc *RemoveResellerAdminUseCase) Execute(ctx context.Context, cmd RemoveResellerAdminCommand) error {
	if err := uc.guard.Reseller(cmd.Principal, cmd.ResellerID, access.ResourceResellerAdmin, access.ActionDelete); err != nil {
		return err
	}

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		removed, err := uc.adminRepo.Remove(txCtx, cmd.UserID, cmd.ResellerID)
		if err != nil {
			return fmt.Errorf("failed to remove reseller admin: %w", err)
		}
		if !removed {
			return apperrors.NewNotFoundError("user is not an admin of this reseller")
		}

		left, err := uc.adminRepo.CountForUser(txCtx, cmd.UserID)
		if err != nil {
			return fmt.Errorf("failed to count reseller roles: %w", err)
		}
		if left > 0 {
			return nil
		}
		u, err := uc.userRepo.GetByID(txCtx, cmd.UserID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if u == nil || !u.IsResellerAdmin() {
			return nil
		}
		u.DropResellerAdmin()
		return uc.userRepo.Update(txCtx, u)
	})
	if err != nil {
		if apperrors.GetAppError(err) == nil {
			uc.logger.Errorw("failed to remove reseller admin", "error", err, "reseller_id", cmd.ResellerID, "user_id", cmd.UserID)
		}
		return err
	}

	uc.logger.Infow("reseller admin removed", "reseller_id", cmd.ResellerID, "user_id", cmd.UserID, "by", cmd.Principal.UserID())
	return nil
}
