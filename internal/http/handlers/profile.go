package handlers

import (
	"io"
	"net/http"
	"strings"

	"campushire/internal/app"
	"campushire/internal/common"
	"campushire/internal/http/middleware"
	"campushire/internal/http/response"
	"campushire/internal/storage"
)

type ProfileHandler struct {
	profiles *app.ProfileService
	uploads  *storage.Store
}

func NewProfileHandler(profiles *app.ProfileService, uploads *storage.Store) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, uploads: uploads}
}

func (h *ProfileHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	prof, err := h.profiles.GetStudent(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, prof)
}

func (h *ProfileHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req app.StudentProfileInput
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	prof, err := h.profiles.UpdateStudent(r.Context(), userID, req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, prof)
}

func (h *ProfileHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		response.Error(w, common.NewValidationError("resume file is required", map[string]string{"resume": "missing multipart file"}))
		return
	}
	defer file.Close()
	name, err := h.uploads.Save(file, header, storage.DocumentExtensions)
	if err != nil {
		response.Error(w, err)
		return
	}
	prof, err := h.profiles.SetResume(r.Context(), userID, name)
	if err != nil {
		_ = h.uploads.Remove(name)
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, prof)
}

// DownloadResume streams the student's own stored resume.
func (h *ProfileHandler) DownloadResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	prof, err := h.profiles.GetStudent(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	if prof.Resume == "" {
		response.Error(w, common.NewError(common.CodeNotFound, "no resume uploaded", nil))
		return
	}
	file, err := h.uploads.Open(prof.Resume)
	if err != nil {
		response.Error(w, common.NewError(common.CodeNotFound, "resume file missing", err))
		return
	}
	defer file.Close()
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+prof.Resume+`"`)
	if _, err := io.Copy(w, file); err != nil {
		return
	}
}

func (h *ProfileHandler) DeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	previous, err := h.profiles.DeleteResume(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	_ = h.uploads.Remove(previous)
	response.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type toggleSavedRequest struct {
	OpportunityID string `json:"opportunity_id" validate:"required"`
}

func (h *ProfileHandler) ToggleSaved(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req toggleSavedRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	opportunityID, err := common.ParseUUID(strings.TrimSpace(req.OpportunityID))
	if err != nil {
		response.Error(w, common.NewValidationError("invalid opportunity_id", map[string]string{"opportunity_id": "invalid uuid"}))
		return
	}
	saved, err := h.profiles.ToggleSaved(r.Context(), userID, opportunityID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"saved": saved})
}

func (h *ProfileHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	prof, err := h.profiles.GetCompany(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, prof)
}

func (h *ProfileHandler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req app.CompanyProfileInput
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	prof, err := h.profiles.UpdateCompany(r.Context(), userID, req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, prof)
}

func (h *ProfileHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		response.Error(w, common.NewValidationError("logo file is required", map[string]string{"logo": "missing multipart file"}))
		return
	}
	defer file.Close()
	name, err := h.uploads.Save(file, header, storage.ImageExtensions)
	if err != nil {
		response.Error(w, err)
		return
	}
	prof, err := h.profiles.SetLogo(r.Context(), userID, name)
	if err != nil {
		_ = h.uploads.Remove(name)
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, prof)
}
