package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAnAdmin         = errors.New("can only delete admin users")
	ErrSuperAdminLocked   = errors.New("cannot delete super admin")
)

type RegisterInput struct {
	Email    string
	Name     string
	Phone    string
	Password string
}

type Service struct {
	repo     Repository
	secret   string
	tokenTTL time.Duration
	log      *zap.Logger
}

func NewService(repo Repository, secret string, tokenTTL time.Duration, log *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		secret:   secret,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Register creates a regular user account and returns it with a fresh token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, string, error) {
	return s.createUser(ctx, in, RoleUser)
}

// CreateAdmin is the super-admin-only path for provisioning admin accounts.
func (s *Service) CreateAdmin(ctx context.Context, in RegisterInput) (*User, error) {
	user, _, err := s.createUser(ctx, in, RoleAdmin)
	return user, err
}

func (s *Service) createUser(ctx context.Context, in RegisterInput, role Role) (*User, string, error) {
	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, "", fmt.Errorf("check existing user: %w", err)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := IssueToken(user, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("user created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))

	return user, token, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := IssueToken(user, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAdmins(ctx context.Context) ([]User, error) {
	admins, err := s.repo.ListByRole(ctx, RoleAdmin)
	if err != nil {
		return nil, err
	}
	if admins == nil {
		admins = []User{}
	}
	return admins, nil
}

// DeleteAdmin removes an admin account. Super admins are never deletable,
// and regular user accounts are not reachable through this path.
func (s *Service) DeleteAdmin(ctx context.Context, id string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	switch user.Role {
	case RoleSuperAdmin:
		return ErrSuperAdminLocked
	case RoleAdmin:
	default:
		return ErrNotAnAdmin
	}

	return s.repo.Delete(ctx, id)
}

// EnsureSuperAdmin creates the bootstrap super_admin account on startup if
// no account with that email exists yet.
func (s *Service) EnsureSuperAdmin(ctx context.Context, email, password string) error {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return fmt.Errorf("check super admin: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         "Super Admin",
		Phone:        "0000000000",
		Role:         RoleSuperAdmin,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		return err
	}

	s.log.Info("default super admin user created", zap.String("email", email))
	return nil
}
