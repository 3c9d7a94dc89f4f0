package controllers

import (
	"net/http"
	"time"

	"github.com/SakshamKandel/peakbrew-sub000/api/middleware"
	"github.com/SakshamKandel/peakbrew-sub000/api/responses"
	"github.com/SakshamKandel/peakbrew-sub000/api/validators"
	"github.com/SakshamKandel/peakbrew-sub000/internal/analytics"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/enums"
	pkgerrors "github.com/SakshamKandel/peakbrew-sub000/pkg/errors"
	"github.com/SakshamKandel/peakbrew-sub000/pkg/logger"
)

// AnalyticsDashboard aggregates the caller's invoices and customers into the
// dashboard payload. The range query parameter defaults to six months.
func AnalyticsDashboard(svc *analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}
		tenantID := middleware.UserIDFromContext(r.Context())
		if tenantID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		rangeValue, err := validators.ParseQueryEnum(r, "range",
			enums.DateRange6Months.String(),
			enums.DateRange1Month.String(),
			enums.DateRange3Months.String(),
			enums.DateRange12Months.String(),
		)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dateRange, err := enums.ParseDateRange(rangeValue)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid range"))
			return
		}

		result, err := svc.DashboardAnalytics(r.Context(), tenantID, dateRange)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AnalyticsExport streams the 12-month analytics snapshot as a download.
func AnalyticsExport(svc *analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}
		tenantID := middleware.UserIDFromContext(r.Context())
		if tenantID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		formatValue, err := validators.ParseQueryEnum(r, "format",
			enums.ExportFormatJSON.String(),
			enums.ExportFormatCSV.String(),
		)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		format, err := enums.ParseExportFormat(formatValue)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid format"))
			return
		}

		payload, err := svc.Export(r.Context(), tenantID, format)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filename := "peakbrew-analytics-" + time.Now().UTC().Format("2006-01-02") + "." + format.String()
		switch format {
		case enums.ExportFormatCSV:
			w.Header().Set("Content-Type", "text/csv")
		default:
			w.Header().Set("Content-Type", "application/json")
		}
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(payload))
	}
}
