package handlers

import (
	"crypto/subtle"
	"net/http"

	"campushire/internal/app"
	"campushire/internal/common"
	"campushire/internal/http/response"
)

type WebhookHandler struct {
	webhooks *app.WebhookService
	secret   string
}

func NewWebhookHandler(webhooks *app.WebhookService, secret string) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks, secret: secret}
}

// IngestCompany accepts pushes from the automation pipeline. With no secret
// configured the check is disabled, which is the local-development mode.
func (h *WebhookHandler) IngestCompany(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" {
		presented := r.Header.Get("X-Webhook-Secret")
		if presented == "" {
			presented = r.Header.Get("X-N8N-Secret")
		}
		if subtle.ConstantTimeCompare([]byte(presented), []byte(h.secret)) != 1 {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid webhook secret", nil))
			return
		}
	}
	var req app.CompanyIngestInput
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.webhooks.IngestCompany(r.Context(), req)
	if err != nil {
		response.Error(w, err)
		return
	}
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	response.JSON(w, status, result)
}
