package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SakshamKandel/peakbrew-sub000/internal/users"
	pkgauth "github.com/SakshamKandel/peakbrew-sub000/pkg/auth"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/config"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/db/models"
	pkgerrors "github.com/SakshamKandel/peakbrew-sub000/pkg/errors"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/security"
)

type fakeUserRepo struct {
	byEmail   map[string]*models.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	user := dto.ToModel()
	user.ID = uuid.New()
	f.byEmail[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func testConfigs() (config.JWTConfig, config.PasswordConfig) {
	jwt := config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "peakbrew-test",
		ExpirationMinutes: 30,
	}
	pw := config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
	return jwt, pw
}

func newTestService(t *testing.T, repo *fakeUserRepo) Service {
	t.Helper()
	jwt, pw := testConfigs()
	svc, err := NewService(ServiceParams{UserRepo: repo, JWTConfig: jwt, PasswordConfig: pw})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string) *models.User {
	t.Helper()
	_, pw := testConfigs()
	hash, err := security.HashPassword(password, pw)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		BusinessName: "Peak Brew",
	}
	repo.byEmail[email] = user
	return user
}

func TestLoginMintsParsableToken(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "owner@peakbrew.com", "stout-and-lager")
	svc := newTestService(t, repo)

	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  Owner@PeakBrew.com ",
		Password: "stout-and-lager",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.User == nil || result.User.Email != user.Email {
		t.Fatalf("unexpected user payload: %+v", result.User)
	}

	jwt, _ := testConfigs()
	claims, err := pkgauth.ParseAccessToken(jwt, result.AccessToken)
	if err != nil {
		t.Fatalf("minted token should parse: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("token user mismatch: %s", claims.UserID)
	}
	if claims.BusinessName != "Peak Brew" {
		t.Fatalf("business name missing from claims: %q", claims.BusinessName)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "owner@peakbrew.com", "correct")
	svc := newTestService(t, repo)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "owner@peakbrew.com", Password: "wrong"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if typed.Message() != invalidCredentialsMessage {
		t.Fatalf("message must not reveal which check failed: %q", typed.Message())
	}
}

func TestLoginUnknownEmailUsesSameMessage(t *testing.T) {
	svc := newTestService(t, newFakeUserRepo())

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@peakbrew.com", Password: "whatever"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if typed.Message() != invalidCredentialsMessage {
		t.Fatalf("unknown email must look like a bad password: %q", typed.Message())
	}
}

func TestRegisterHashesAndLogsIn(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo)

	result, err := svc.Register(context.Background(), RegisterRequest{
		Email:        "Founder@PeakBrew.com",
		Password:     "barrel-aged-123",
		BusinessName: " Peak Brew ",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if result.AccessToken == "" {
		t.Fatal("expected an access token")
	}

	stored := repo.byEmail["founder@peakbrew.com"]
	if stored == nil {
		t.Fatal("email not normalized before the insert")
	}
	if stored.PasswordHash == "barrel-aged-123" {
		t.Fatal("password stored in plain text")
	}
	if stored.BusinessName != "Peak Brew" {
		t.Fatalf("business name not trimmed: %q", stored.BusinessName)
	}

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "founder@peakbrew.com",
		Password: "barrel-aged-123",
	})
	if err != nil {
		t.Fatalf("fresh account should log in: %v", err)
	}
	if login.User.ID != stored.ID {
		t.Fatal("login returned a different user")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = errors.New(`duplicate key value violates unique constraint "users_email_key"`)
	svc := newTestService(t, repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:        "owner@peakbrew.com",
		Password:     "barrel-aged-123",
		BusinessName: "Peak Brew",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestNewServiceRequiresUserRepo(t *testing.T) {
	jwt, pw := testConfigs()
	if _, err := NewService(ServiceParams{JWTConfig: jwt, PasswordConfig: pw}); err == nil {
		t.Fatal("expected an error for a nil user repository")
	}
}
