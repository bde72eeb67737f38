package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/orris-inc/tenantdesk/internal/application/auth/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/user"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/auth"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/cache"
	"github.com/orris-inc/tenantdesk/internal/shared/biztime"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

// OAuthProviders looks up a configured social login provider.
type OAuthProviders interface {
	Get(name string) (auth.OAuthClient, error)
}

type BeginOAuthCommand struct {
	Provider string
}

type BeginOAuthUseCase struct {
	providers OAuthProviders
	states    cache.StateStore
	logger    logger.Interface
}

func NewBeginOAuthUseCase(providers OAuthProviders, states cache.StateStore, logger logger.Interface) *BeginOAuthUseCase {
	return &BeginOAuthUseCase{providers: providers, states: states, logger: logger}
}

func (uc *BeginOAuthUseCase) Execute(ctx context.Context, cmd BeginOAuthCommand) (*dto.OAuthBeginResponse, error) {
	client, err := uc.providers.Get(cmd.Provider)
	if err != nil {
		if errors.Is(err, auth.ErrOAuthNotConfigured) {
			return nil, apperrors.NewNotFoundError("oauth provider not available", cmd.Provider)
		}
		return nil, err
	}

	state := uuid.NewString()
	url, verifier, err := client.AuthURL(state)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s auth url: %w", cmd.Provider, err)
	}
	if err := uc.states.Set(ctx, state, cache.StateInfo{
		Provider:     client.Name(),
		CodeVerifier: verifier,
		CreatedAt:    biztime.NowUTC(),
	}); err != nil {
		uc.logger.Errorw("failed to store oauth state", "error", err, "provider", cmd.Provider)
		return nil, fmt.Errorf("failed to store oauth state: %w", err)
	}

	return &dto.OAuthBeginResponse{AuthURL: url, State: state}, nil
}

type OAuthCallbackCommand struct {
	Provider string
	State    string
	Code     string
}

// OAuthCallbackUseCase finishes a social login. The provider's email decides
// the account: an existing user is linked, an unknown email gets a new
// password-less account.
type OAuthCallbackUseCase struct {
	providers OAuthProviders
	states    cache.StateStore
	userRepo  user.Repository
	tokens    TokenService
	recorder  AuthRecorder
	logger    logger.Interface
}

func NewOAuthCallbackUseCase(
	providers OAuthProviders,
	states cache.StateStore,
	userRepo user.Repository,
	tokens TokenService,
	recorder AuthRecorder,
	logger logger.Interface,
) *OAuthCallbackUseCase {
	return &OAuthCallbackUseCase{
		providers: providers,
		states:    states,
		userRepo:  userRepo,
		tokens:    tokens,
		recorder:  recorder,
		logger:    logger,
	}
}

func (uc *OAuthCallbackUseCase) Execute(ctx context.Context, cmd OAuthCallbackCommand) (*dto.AuthResponse, error) {
	method := "oauth_" + cmd.Provider

	info, err := uc.states.VerifyAndGet(ctx, cmd.State)
	if err != nil || info.Provider != cmd.Provider {
		uc.recorder.AuthAttempt(method, false)
		return nil, apperrors.NewOAuthError(cmd.Provider, "state")
	}

	client, err := uc.providers.Get(cmd.Provider)
	if err != nil {
		return nil, apperrors.NewNotFoundError("oauth provider not available", cmd.Provider)
	}
	profile, err := client.Exchange(ctx, cmd.Code, info.CodeVerifier)
	if err != nil {
		uc.recorder.AuthAttempt(method, false)
		uc.logger.Warnw("oauth exchange failed", "provider", cmd.Provider, "error", err)
		return nil, apperrors.NewOAuthError(cmd.Provider, "exchange")
	}
	if profile.Email == "" || !profile.EmailVerified {
		uc.recorder.AuthAttempt(method, false)
		return nil, apperrors.NewOAuthError(cmd.Provider, "email")
	}

	u, err := uc.findOrCreate(ctx, profile)
	if err != nil {
		return nil, err
	}

	resp, err := issue(uc.tokens, u)
	if err != nil {
		return nil, err
	}
	uc.recorder.AuthAttempt(method, true)
	uc.logger.Infow("user logged in", "user_id", u.ID(), "provider", cmd.Provider)
	return resp, nil
}

func (uc *OAuthCallbackUseCase) findOrCreate(ctx context.Context, profile *auth.OAuthUserInfo) (*user.User, error) {
	email, err := user.NormalizeEmail(profile.Email)
	if err != nil {
		return nil, apperrors.NewOAuthError(profile.Provider, "email")
	}

	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u != nil {
		if u.OAuthProvider() != profile.Provider || u.OAuthProviderID() != profile.ProviderID {
			u.LinkOAuth(profile.Provider, profile.ProviderID)
			if err := uc.userRepo.Update(ctx, u); err != nil {
				return nil, fmt.Errorf("failed to link oauth identity: %w", err)
			}
		}
		return u, nil
	}

	name := profile.Name
	if name == "" {
		name = email
	}
	u, err = user.NewUser(email, name)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	u.LinkOAuth(profile.Provider, profile.ProviderID)
	if err := uc.userRepo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	uc.logger.Infow("user created from oauth", "user_id", u.ID(), "provider", profile.Provider)
	return u, nil
}
