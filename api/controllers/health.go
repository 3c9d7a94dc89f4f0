package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/SakshamKandel/peakbrew-sub000/api/responses"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/config"
	pkgerrors "github.com/SakshamKandel/peakbrew-sub000/pkg/errors"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/logger"
)

const readinessTimeout = 2 * time.Second

// Pinger is the slice of a backing client the readiness probe needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PeakBrew-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the backing stores. A nil pinger is treated as not
// configured and skipped, so dev setups without redis still come up ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, database, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PeakBrew-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		failed := false
		probe := func(name string, p Pinger) {
			if p == nil {
				checks[name] = "skipped"
				return
			}
			if err := p.Ping(ctx); err != nil {
				checks[name] = "down"
				failed = true
				if logg != nil {
					logg.Error(r.Context(), "health.ready."+name, err)
				}
				return
			}
			checks[name] = "up"
		}
		probe("database", database)
		probe("redis", cache)

		if failed {
			err := pkgerrors.New(pkgerrors.CodeDependency, "backing store unavailable").WithDetails(checks)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
