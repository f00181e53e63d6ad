package handlers

import (
	"net/http"

	"campushire/internal/app"
	"campushire/internal/domain/opportunity"
	"campushire/internal/http/middleware"
	"campushire/internal/http/response"
)

type AdminHandler struct {
	admin *app.AdminService
}

func NewAdminHandler(admin *app.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	items, err := h.admin.ListPending(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []opportunity.PendingOpportunity{}
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *AdminHandler) Activate(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	approved, err := h.admin.Approve(r.Context(), adminID, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, approved)
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.admin.Reject(r.Context(), adminID, id); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
