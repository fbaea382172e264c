package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Frey210/SiWarga/config"
	"github.com/Frey210/SiWarga/internal/dto"
	"github.com/Frey210/SiWarga/internal/model"
	"github.com/Frey210/SiWarga/internal/repository"
	"github.com/Frey210/SiWarga/pkg/jwt"
	"github.com/Frey210/SiWarga/pkg/redis"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles registration, login and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
	// Logout blacklists the token's JTI until its natural expiry. A no-op
	// success when Redis is not configured.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	// EnsureBootstrapAdmin seeds the configured ADMIN_RW account when the
	// database holds none, so a fresh deployment has a reviewer to log in as.
	EnsureBootstrapAdmin(ctx context.Context) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService creates the AuthService implementation.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	// 1. reject duplicate email
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("lookup user by email failed", zap.Error(err))
		return nil, err
	}

	// 2. hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}

	// 3. persist; registration always yields a resident account
	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleWarga,
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		NIK:          req.NIK,
		KKNumber:     req.KKNumber,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("create user failed", zap.Error(err))
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// unknown email and wrong password are indistinguishable to the caller
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("lookup user by email failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("generate access token failed", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("generate refresh token failed", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User:         dto.NewUserResponse(user),
	}, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("lookup user failed", zap.Error(err))
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *authService) EnsureBootstrapAdmin(ctx context.Context) error {
	exists, err := s.repo.User.HasRole(ctx, model.RoleAdminRW)
	if err != nil {
		s.logger.Error("check for admin account failed", zap.Error(err))
		return err
	}
	if exists {
		return nil
	}

	if s.cfg.Auth.BootstrapAdminPassword == "" {
		s.logger.Warn("no ADMIN_RW account exists and no bootstrap admin password is configured; skipping seed",
			zap.String("email", s.cfg.Auth.BootstrapAdminEmail))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Auth.BootstrapAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash bootstrap admin password failed", zap.Error(err))
		return err
	}

	admin := &model.User{
		Email:        s.cfg.Auth.BootstrapAdminEmail,
		PasswordHash: string(hash),
		Role:         model.RoleAdminRW,
		FullName:     "Administrator RW",
	}
	if err := s.repo.User.Create(ctx, admin); err != nil {
		s.logger.Error("create bootstrap admin failed", zap.Error(err))
		return err
	}

	s.logger.Info("seeded bootstrap admin account",
		zap.String("email", admin.Email),
		zap.String("user_id", admin.UserID))
	return nil
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil
	}
	if err := s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("blacklist token failed", zap.Error(err))
		return err
	}
	return nil
}
