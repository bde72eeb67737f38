package handlers

import (
	"context"

	"github.com/orris-inc/tenantdesk/internal/application/auth/dto"
	"github.com/orris-inc/tenantdesk/internal/application/auth/usecases"
	userdto "github.com/orris-inc/tenantdesk/internal/application/user/dto"
)

// Use case interfaces for AuthHandler

type registerUseCase interface {
	Execute(ctx context.Context, cmd usecases.RegisterCommand) (*dto.AuthResponse, error)
}

type loginUseCase interface {
	Execute(ctx context.Context, cmd usecases.LoginCommand) (*dto.AuthResponse, error)
}

type refreshUseCase interface {
	Execute(ctx context.Context, cmd usecases.RefreshCommand) (*dto.AuthResponse, error)
}

type logoutUseCase interface {
	Execute(ctx context.Context, cmd usecases.LogoutCommand) error
}

type getProfileUseCase interface {
	Execute(ctx context.Context, query usecases.GetProfileQuery) (*userdto.UserResponse, error)
}

type updateProfileUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateProfileCommand) (*userdto.UserResponse, error)
}

type beginOAuthUseCase interface {
	Execute(ctx context.Context, cmd usecases.BeginOAuthCommand) (*dto.OAuthBeginResponse, error)
}

type oauthCallbackUseCase interface {
	Execute(ctx context.Context, cmd usecases.OAuthCallbackCommand) (*dto.AuthResponse, error)
}
