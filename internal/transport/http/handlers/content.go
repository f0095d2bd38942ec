package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-content-portal/internal/models"
	"github.com/pribylovaa/go-content-portal/internal/region"
	"github.com/pribylovaa/go-content-portal/internal/service"
	apierrors "github.com/pribylovaa/go-content-portal/internal/transport/http/errors"
)

// Search — GET /api/{region}/search?q=.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	res, err := h.Portal.Search(r.Context(), r.URL.Query().Get("q"), regionOf(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// List — GET /api/{region}/{kind}?limit=.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	kind, err := models.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var limit int
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			apierrors.WriteError(w, r, fmt.Errorf("limit: %w", service.ErrInvalidArgument))
			return
		}
		limit = n
	}

	items, err := h.Portal.List(r.Context(), kind, regionOf(r), limit)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// ByID — GET /api/{region}/{kind}/{id}: сущность и связанные материалы.
func (h *Handlers) ByID(w http.ResponseWriter, r *http.Request) {
	kind, err := models.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	detail, err := h.Portal.ByID(r.Context(), kind, chi.URLParam(r, "id"), regionOf(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

type regionInfo struct {
	Code    string `json:"code"`
	Locale  string `json:"locale"`
	Default bool   `json:"default"`
}

// Regions — GET /api/regions: закрытый набор регионов и их локали.
func (h *Handlers) Regions(w http.ResponseWriter, r *http.Request) {
	current := regionOf(r)

	out := make([]regionInfo, 0, len(region.All()))
	for _, reg := range region.All() {
		out = append(out, regionInfo{
			Code:    reg.Code(),
			Locale:  reg.Locale().String(),
			Default: reg == current,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"regions": out})
}
