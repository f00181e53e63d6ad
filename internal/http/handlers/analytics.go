package handlers

import (
	"net/http"

	"campushire/internal/app"
	"campushire/internal/http/middleware"
	"campushire/internal/http/response"
)

type AnalyticsHandler struct {
	analytics *app.AnalyticsService
}

func NewAnalyticsHandler(analytics *app.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) CompanyReport(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	report, err := h.analytics.CompanyReport(r.Context(), companyID, queryInt(r, "days", 0))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, report)
}

func (h *AnalyticsHandler) StudentDashboard(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	overview, err := h.analytics.StudentOverview(r.Context(), studentID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, overview)
}

func (h *AnalyticsHandler) AdminOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.analytics.AdminOverview(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, overview)
}
