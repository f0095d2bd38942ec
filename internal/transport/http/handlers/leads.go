package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-content-portal/internal/models"
	"github.com/pribylovaa/go-content-portal/internal/region"
	"github.com/pribylovaa/go-content-portal/internal/service"
	apierrors "github.com/pribylovaa/go-content-portal/internal/transport/http/errors"
)

// LeadRequest — тело POST /api/{region}/leads.
type LeadRequest struct {
	Email  string `json:"email"`
	Source string `json:"source,omitempty"`
}

// LeadResponse — подтверждение записи лида на языке региона.
type LeadResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DownloadRequest — тело POST /api/{region}/{kind}/{id}/download.
type DownloadRequest struct {
	Email string `json:"email"`
}

// CaptureLead — встроенный виджет подписки.
func (h *Handlers) CaptureLead(w http.ResponseWriter, r *http.Request) {
	var req LeadRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("body: %w", service.ErrInvalidArgument))
		return
	}

	source, err := service.PublicSource(req.Source)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	reg := regionOf(r)

	lead := models.Lead{Email: req.Email, Source: source, Region: reg.Code()}
	if err := h.Portal.CaptureLead(r.Context(), lead, nil); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, LeadResponse{
		Status:  "ok",
		Message: reg.Translate(region.KeyLeadSucceeded),
	})
}

// RequestDownload — модальный запрос материала: лид + ссылка на файл.
func (h *Handlers) RequestDownload(w http.ResponseWriter, r *http.Request) {
	kind, err := models.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var req DownloadRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("body: %w", service.ErrInvalidArgument))
		return
	}

	dl, err := h.Portal.RequestDownload(r.Context(), regionOf(r), kind, chi.URLParam(r, "id"), req.Email)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dl)
}
