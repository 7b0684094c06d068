package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gameboxed/gameboxed/internal/auth"
	"github.com/gameboxed/gameboxed/internal/config"
	"github.com/gameboxed/gameboxed/internal/domain"
	"github.com/gameboxed/gameboxed/internal/repository"
	"github.com/google/uuid"
)

type AuthService struct {
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	sessionRepo repository.SessionRepository
	hasher      *auth.Hasher
	issuer      *auth.TokenIssuer
	validator   *auth.TokenValidator
}

func NewAuthService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, sessionRepo repository.SessionRepository, cfg *config.Config) *AuthService {
	tokenCfg := auth.TokenConfig{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.TokenTTL(),
	}
	return &AuthService{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		sessionRepo: sessionRepo,
		hasher:      auth.NewHasher(),
		issuer:      auth.NewTokenIssuer(tokenCfg),
		validator:   auth.NewTokenValidator(tokenCfg),
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	User  *domain.User
	Token string
}

// Register creates a user bound to the default role. Uniqueness of
// username and email is left to the storage constraint; there is no
// exists-then-insert window.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	role, err := s.roleRepo.GetOrCreateByName(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     foldCredential(input.Username),
		Email:        foldCredential(input.Email),
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user, role.ID); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials, issues a signed token and records a new
// Active session. Concurrent logins for the same user each get their own
// session row.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, foldCredential(input.Username))
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	roles, err := s.userRepo.GetRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(user.ID, user.Username, roles)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     token,
		Active:    true,
		LoginTime: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Token: token}, nil
}

// Logout revokes the session for the presented token. domain.ErrNotFound
// means there was nothing to revoke; callers should not treat it as fatal.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessionRepo.Revoke(ctx, token); err != nil {
		return err
	}

	if session, err := s.sessionRepo.GetByToken(ctx, token); err == nil {
		log.Printf("[AuthService.Logout] closed session %s for user %s after %s",
			session.ID, session.UserID, time.Since(session.LoginTime).Round(time.Second))
	}
	return nil
}

// Authorize runs the per-request gate: cryptographic validation first
// (pure, cheap), then the session registry check (storage I/O). The
// registry check is what makes logout effective against a token that is
// still cryptographically valid.
func (s *AuthService) Authorize(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.validator.Validate(token)
	if err != nil {
		return nil, err
	}

	active, err := s.sessionRepo.IsActive(ctx, token)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, domain.ErrRevokedToken
	}

	return claims, nil
}

// InspectToken reads the claims of a token without checking its lifetime.
// For administrative flows only; request authorization goes through
// Authorize.
func (s *AuthService) InspectToken(token string) (*auth.Claims, error) {
	return s.validator.DerivePrincipal(token)
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *AuthService) GetUserRoles(ctx context.Context, id uuid.UUID) ([]string, error) {
	return s.userRepo.GetRoles(ctx, id)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hashedPassword, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hashedPassword
	user.UpdatedAt = time.Now()
	return s.userRepo.Update(ctx, user)
}

// Usernames and emails are case-folded once, at the service boundary, so
// storage only ever sees the canonical form.
func foldCredential(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
