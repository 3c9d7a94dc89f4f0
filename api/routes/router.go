package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SakshamKandel/peakbrew-sub000/api/controllers"
	"github.com/SakshamKandel/peakbrew-sub000/api/middleware"
	"github.com/SakshamKandel/peakbrew-sub000/internal/analytics"
	"github.com/SakshamKandel/peakbrew-sub000/internal/auth"
	"github.com/SakshamKandel/peakbrew-sub000/internal/customers"
	"github.com/SakshamKandel/peakbrew-sub000/internal/invoices"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/config"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/logger"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/metrics"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/redis"
)

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config           *config.Config
	Logger           *logger.Logger
	DB               controllers.Pinger
	Redis            *redis.Client
	HTTPMetrics      *metrics.HTTPMetrics
	MetricsHandler   http.Handler
	AuthService      auth.Service
	InvoiceService   invoices.Service
	CustomerService  customers.Service
	AnalyticsService *analytics.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg, logg := p.Config, p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if p.HTTPMetrics != nil {
		r.Use(middleware.Metrics(p.HTTPMetrics))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, redisPinger(p.Redis)))
	})

	if p.MetricsHandler != nil {
		r.Handle("/metrics", p.MetricsHandler)
	} else {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/api/v1/auth", func(r chi.Router) {
		login := controllers.AuthLogin(p.AuthService, logg)
		if p.Redis != nil {
			r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", login)
		} else {
			r.Post("/login", login)
		}
		if !cfg.App.IsProd() {
			r.Post("/register", controllers.AuthRegister(p.AuthService, logg))
		}
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", controllers.InvoiceList(p.InvoiceService, logg))
			r.Post("/", controllers.InvoiceCreate(p.InvoiceService, logg))
			r.Get("/{invoiceId}", controllers.InvoiceDetail(p.InvoiceService, logg))
			r.Put("/{invoiceId}", controllers.InvoiceUpdate(p.InvoiceService, logg))
			r.Delete("/{invoiceId}", controllers.InvoiceDelete(p.InvoiceService, logg))
			r.Post("/{invoiceId}/status", controllers.InvoiceSetStatus(p.InvoiceService, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomerList(p.CustomerService, logg))
			r.Post("/", controllers.CustomerCreate(p.CustomerService, logg))
			r.Post("/reconcile", controllers.CustomerReconcile(p.CustomerService, logg))
			r.Get("/{customerId}", controllers.CustomerDetail(p.CustomerService, logg))
			r.Put("/{customerId}", controllers.CustomerUpdate(p.CustomerService, logg))
			r.Delete("/{customerId}", controllers.CustomerDelete(p.CustomerService, logg))
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/dashboard", controllers.AnalyticsDashboard(p.AnalyticsService, logg))
			r.Get("/export", controllers.AnalyticsExport(p.AnalyticsService, logg))
		})
	})

	return r
}

// redisPinger keeps a typed nil from masquerading as a live pinger.
func redisPinger(client *redis.Client) controllers.Pinger {
	if client == nil {
		return nil
	}
	return client
}
