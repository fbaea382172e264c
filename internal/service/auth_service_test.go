package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Frey210/SiWarga/config"
	"github.com/Frey210/SiWarga/internal/dto"
	"github.com/Frey210/SiWarga/internal/model"
	"github.com/Frey210/SiWarga/internal/repository"
	"github.com/Frey210/SiWarga/pkg/jwt"
)

// ── test helpers ──

// testRepos aggregates the mocks so tests can seed data directly.
type testRepos struct {
	user        *mockUserRepo
	submission  *mockSubmissionRepo
	file        *mockSubmissionFileRepo
	approvalLog *mockApprovalLogRepo
	announce    *mockAnnouncementRepo
}

func newTestRepos() *testRepos {
	logs := newMockApprovalLogRepo()
	return &testRepos{
		user:        newMockUserRepo(),
		submission:  newMockSubmissionRepo(logs),
		file:        newMockSubmissionFileRepo(),
		approvalLog: logs,
		announce:    newMockAnnouncementRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		User:           r.user,
		Submission:     r.submission,
		SubmissionFile: r.file,
		ApprovalLog:    r.approvalLog,
		Announcement:   r.announce,
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-at-least-16-chars",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
		Storage: config.StorageConfig{
			MaxCoverSizeBytes: 2 << 20,
			MaxUploadBytes:    10 << 20,
		},
	}
}

func setupAuthService() (AuthService, *testRepos) {
	repos := newTestRepos()
	cfg := testConfig()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repos.toRepository(), jwtMgr, nil, zap.NewNop())
	return svc, repos
}

// seedUser inserts a user with a bcrypt-hashed password.
func seedUser(repos *testRepos, id, email, password, role string, completeProfile bool) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.User{
		UserID:       id,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if completeProfile {
		u.FullName = "Budi Santoso"
		u.PhoneNumber = "081234567890"
		u.NIK = "3171234567890001"
		u.KKNumber = "3171234567890002"
	}
	repos.user.users[id] = u
	return u
}

func validRegisterRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:       "warga@example.com",
		Password:    "rahasia-123",
		FullName:    "Budi Santoso",
		PhoneNumber: "081234567890",
		NIK:         "3171234567890001",
		KKNumber:    "3171234567890002",
	}
}

// ── Register ──

func TestAuthService_Register_Success(t *testing.T) {
	svc, repos := setupAuthService()

	user, err := svc.Register(context.Background(), validRegisterRequest())
	if err != nil {
		t.Fatalf("Register should succeed: %v", err)
	}

	if user.Role != model.RoleWarga {
		t.Errorf("expected role %s, got %s", model.RoleWarga, user.Role)
	}
	if user.Email != "warga@example.com" {
		t.Errorf("unexpected email: %s", user.Email)
	}

	stored := repos.user.users[user.ID]
	if stored == nil {
		t.Fatal("user was not persisted")
	}
	if stored.PasswordHash == "rahasia-123" {
		t.Error("password must not be stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("rahasia-123")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, repos := setupAuthService()
	seedUser(repos, "user-1", "warga@example.com", "whatever", model.RoleWarga, true)

	_, err := svc.Register(context.Background(), validRegisterRequest())
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got: %v", err)
	}
}

// ── Login ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, repos := setupAuthService()
	seedUser(repos, "user-1", "warga@example.com", "rahasia-123", model.RoleWarga, true)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "warga@example.com",
		Password: "rahasia-123",
	})
	if err != nil {
		t.Fatalf("Login should succeed: %v", err)
	}

	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("token pair must not be empty")
	}
	if result.TokenType != "bearer" {
		t.Errorf("expected token_type bearer, got %s", result.TokenType)
	}
	if result.ExpiresIn != 3600 {
		t.Errorf("expected expires_in 3600, got %d", result.ExpiresIn)
	}
	if result.User.ID != "user-1" {
		t.Errorf("unexpected user id: %s", result.User.ID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, repos := setupAuthService()
	seedUser(repos, "user-1", "warga@example.com", "rahasia-123", model.RoleWarga, true)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "warga@example.com",
		Password: "salah-total",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupAuthService()

	// an unknown email yields the same error as a wrong password
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "rahasia-123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
}

// ── Me ──

func TestAuthService_Me_Success(t *testing.T) {
	svc, repos := setupAuthService()
	seedUser(repos, "user-1", "warga@example.com", "rahasia-123", model.RoleWarga, true)

	user, err := svc.Me(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Me should succeed: %v", err)
	}
	if user.Email != "warga@example.com" {
		t.Errorf("unexpected email: %s", user.Email)
	}
	if user.NIK != "3171234567890001" {
		t.Errorf("unexpected nik: %s", user.NIK)
	}
}

func TestAuthService_Me_NotFound(t *testing.T) {
	svc, _ := setupAuthService()

	_, err := svc.Me(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got: %v", err)
	}
}

// ── Logout ──

func TestAuthService_Logout_NoRedis(t *testing.T) {
	svc, _ := setupAuthService()

	// without Redis the blacklist degrades to a no-op success
	if err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("Logout without redis should be a no-op: %v", err)
	}
}

// ── EnsureBootstrapAdmin ──

func setupBootstrapAuthService(password string) (AuthService, *testRepos) {
	repos := newTestRepos()
	cfg := testConfig()
	cfg.Auth.BootstrapAdminEmail = "admin@siwarga.local"
	cfg.Auth.BootstrapAdminPassword = password
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repos.toRepository(), jwtMgr, nil, zap.NewNop())
	return svc, repos
}

func TestAuthService_EnsureBootstrapAdmin_SeedsWhenNoneExists(t *testing.T) {
	svc, repos := setupBootstrapAuthService("bootstrap-rahasia")

	if err := svc.EnsureBootstrapAdmin(context.Background()); err != nil {
		t.Fatalf("EnsureBootstrapAdmin should succeed: %v", err)
	}

	admin, err := repos.user.GetByEmail(context.Background(), "admin@siwarga.local")
	if err != nil {
		t.Fatalf("bootstrap admin should exist: %v", err)
	}
	if admin.Role != model.RoleAdminRW {
		t.Errorf("expected role %s, got: %s", model.RoleAdminRW, admin.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("bootstrap-rahasia")); err != nil {
		t.Errorf("stored hash should match the configured password: %v", err)
	}
}

func TestAuthService_EnsureBootstrapAdmin_NoOpWhenAdminExists(t *testing.T) {
	svc, repos := setupBootstrapAuthService("bootstrap-rahasia")
	seedUser(repos, "admin-1", "rw@example.com", "rahasia-123", model.RoleAdminRW, true)

	if err := svc.EnsureBootstrapAdmin(context.Background()); err != nil {
		t.Fatalf("EnsureBootstrapAdmin should succeed: %v", err)
	}

	if _, err := repos.user.GetByEmail(context.Background(), "admin@siwarga.local"); err == nil {
		t.Error("should not seed a second admin when one already exists")
	}
	if len(repos.user.users) != 1 {
		t.Errorf("expected 1 user, got: %d", len(repos.user.users))
	}
}

func TestAuthService_EnsureBootstrapAdmin_Idempotent(t *testing.T) {
	svc, repos := setupBootstrapAuthService("bootstrap-rahasia")

	for i := 0; i < 3; i++ {
		if err := svc.EnsureBootstrapAdmin(context.Background()); err != nil {
			t.Fatalf("run %d should succeed: %v", i+1, err)
		}
	}
	if len(repos.user.users) != 1 {
		t.Errorf("expected exactly 1 seeded admin, got: %d", len(repos.user.users))
	}
}

func TestAuthService_EnsureBootstrapAdmin_SkipsWithoutPassword(t *testing.T) {
	svc, repos := setupBootstrapAuthService("")

	if err := svc.EnsureBootstrapAdmin(context.Background()); err != nil {
		t.Fatalf("EnsureBootstrapAdmin should succeed: %v", err)
	}
	if len(repos.user.users) != 0 {
		t.Errorf("should not seed an admin without a configured password, got %d users", len(repos.user.users))
	}
}
