package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/SakshamKandel/peakbrew-sub000/internal/analytics"
	"github.com/SakshamKandel/peakbrew-sub000/internal/auth"
	"github.com/SakshamKandel/peakbrew-sub000/internal/customers"
	"github.com/SakshamKandel/peakbrew-sub000/internal/invoices"
	pkgauth "github.com/SakshamKandel/peakbrew-sub000/pkg/auth"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/config"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/logger"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubAuthService struct{}

func (stubAuthService) Login(context.Context, auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{AccessToken: "stub"}, nil
}

func (stubAuthService) Register(context.Context, auth.RegisterRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{AccessToken: "stub"}, nil
}

type stubInvoiceService struct{}

func (stubInvoiceService) Create(context.Context, uuid.UUID, invoices.CreateInvoiceDTO) (*invoices.InvoiceDTO, error) {
	return &invoices.InvoiceDTO{}, nil
}

func (stubInvoiceService) Get(context.Context, uuid.UUID, uuid.UUID) (*invoices.InvoiceDTO, error) {
	return &invoices.InvoiceDTO{}, nil
}

func (stubInvoiceService) List(context.Context, uuid.UUID, pagination.Params) (*invoices.Page, error) {
	return &invoices.Page{Invoices: []invoices.InvoiceDTO{}}, nil
}

func (stubInvoiceService) Update(context.Context, uuid.UUID, uuid.UUID, invoices.UpdateInvoiceDTO) (*invoices.InvoiceDTO, error) {
	return &invoices.InvoiceDTO{}, nil
}

func (stubInvoiceService) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type stubCustomerService struct{}

func (stubCustomerService) Create(context.Context, uuid.UUID, customers.CreateCustomerDTO) (*customers.CustomerDTO, error) {
	return &customers.CustomerDTO{}, nil
}

func (stubCustomerService) Get(context.Context, uuid.UUID, uuid.UUID) (*customers.CustomerDTO, error) {
	return &customers.CustomerDTO{}, nil
}

func (stubCustomerService) List(context.Context, uuid.UUID, pagination.Params) (*customers.Page, error) {
	return &customers.Page{Customers: []customers.CustomerDTO{}}, nil
}

func (stubCustomerService) Update(context.Context, uuid.UUID, uuid.UUID, customers.UpdateCustomerDTO) (*customers.CustomerDTO, error) {
	return &customers.CustomerDTO{}, nil
}

func (stubCustomerService) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (stubCustomerService) Reconcile(context.Context, uuid.UUID) (*customers.ReconcileReport, error) {
	return &customers.ReconcileReport{}, nil
}

type stubRecordSource struct{}

func (stubRecordSource) FetchInvoices(context.Context, string) ([]analytics.InvoiceRecord, error) {
	return nil, nil
}

func (stubRecordSource) FetchCustomers(context.Context, string) ([]analytics.CustomerRecord, error) {
	return nil, nil
}

func testConfig(env string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: env, Port: "8080"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "peakbrew-test",
			ExpirationMinutes: 30,
		},
	}
}

func newTestRouter(t *testing.T, env string) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "router-test"})
	analyticsService, err := analytics.NewService(stubRecordSource{}, logg)
	if err != nil {
		t.Fatalf("analytics.NewService: %v", err)
	}

	return NewRouter(RouterParams{
		Config:           testConfig(env),
		Logger:           logg,
		DB:               stubPinger{},
		AuthService:      stubAuthService{},
		InvoiceService:   stubInvoiceService{},
		CustomerService:  stubCustomerService{},
		AnalyticsService: analyticsService,
	})
}

func mintTestToken(t *testing.T) string {
	t.Helper()
	cfg := testConfig(config.AppEnvDev)
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID:       uuid.New(),
		Email:        "owner@peakbrew.com",
		BusinessName: "Peak Brew",
	})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}
	return token
}

func TestHealthAndPublicRoutes(t *testing.T) {
	router := newTestRouter(t, config.AppEnvDev)

	for _, path := range []string{"/health/live", "/health/ready", "/api/public/ping"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d (%s)", path, rec.Code, rec.Body.String())
		}
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t, config.AppEnvDev)

	for _, path := range []string{"/api/v1/invoices", "/api/v1/customers", "/api/v1/analytics/dashboard"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rec.Code)
		}
	}
}

func TestAuthenticatedInvoiceList(t *testing.T) {
	router := newTestRouter(t, config.AppEnvDev)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data invoices.Page `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if envelope.Data.Invoices == nil {
		t.Fatal("expected an invoices array in the envelope")
	}
}

func TestAnalyticsDashboardRoute(t *testing.T) {
	router := newTestRouter(t, config.AppEnvDev)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/dashboard?range=3months", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "overview") {
		t.Fatalf("dashboard payload missing overview: %s", rec.Body.String())
	}
}

func TestRegisterOnlyOffProduction(t *testing.T) {
	body := `{"email":"owner@peakbrew.com","password":"barrel-aged-123","business_name":"Peak Brew"}`

	dev := newTestRouter(t, config.AppEnvDev)
	rec := httptest.NewRecorder()
	dev.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("dev register: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	prod := newTestRouter(t, config.AppEnvProd)
	rec = httptest.NewRecorder()
	prod.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body)))
	if rec.Code == http.StatusCreated {
		t.Fatal("register must not be mounted in production")
	}
}
