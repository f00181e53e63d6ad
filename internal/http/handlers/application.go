package handlers

import (
	"net/http"
	"strings"
	"time"

	"campushire/internal/app"
	"campushire/internal/common"
	"campushire/internal/domain/application"
	"campushire/internal/domain/user"
	"campushire/internal/http/middleware"
	"campushire/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, limiter: limiter}
}

type submitRequest struct {
	OpportunityID string `json:"opportunity_id" validate:"required"`
	app.SubmitInput
}

func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	opportunityID, err := common.ParseUUID(strings.TrimSpace(req.OpportunityID))
	if err != nil {
		response.Error(w, common.NewValidationError("invalid opportunity_id", map[string]string{"opportunity_id": "invalid uuid"}))
		return
	}
	if h.limiter != nil {
		key := "apply:" + studentID.String()
		if !h.limiter.Allow(key, 5, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}
	created, err := h.applications.Submit(r.Context(), studentID, opportunityID, req.SubmitInput)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	activeRole, ok := middleware.RoleFromContext(r.Context())
	if !ok || activeRole == "" {
		response.Error(w, common.NewError(common.CodeForbidden, "role not found", nil))
		return
	}
	switch activeRole {
	case user.RoleStudent:
		h.listStudent(w, r)
	case user.RoleCompany:
		h.listCompany(w, r)
	default:
		response.Error(w, common.NewError(common.CodeForbidden, "insufficient role", nil))
	}
}

func (h *ApplicationHandler) listStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.applications.ListForStudent(r.Context(), studentID, filterFromQuery(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []application.Application{}
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) listCompany(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.applications.ListForCompany(r.Context(), companyID, filterFromQuery(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []application.Application{}
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.applications.Get(r.Context(), id, actorID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

type applicationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req applicationStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.applications.UpdateStatus(r.Context(), id, application.Status(req.Status), companyID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ApplicationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.applications.Withdraw(r.Context(), id, studentID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "withdrawn"})
}

func filterFromQuery(r *http.Request) application.ListFilter {
	q := r.URL.Query()
	filter := application.ListFilter{
		Status: application.Status(strings.TrimSpace(q.Get("status"))),
		Search: strings.TrimSpace(q.Get("search")),
	}
	if raw := strings.TrimSpace(q.Get("opportunity_id")); raw != "" {
		if id, err := common.ParseUUID(raw); err == nil {
			filter.OpportunityID = id
		}
	}
	return filter
}
