// handlers — HTTP-хендлеры API портала.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pribylovaa/go-content-portal/internal/models"
	"github.com/pribylovaa/go-content-portal/internal/region"
	"github.com/pribylovaa/go-content-portal/internal/service"
)

// Portal — бизнес-операции, которые обслуживает HTTP-слой (реализуется *service.Service).
type Portal interface {
	Search(ctx context.Context, term string, r region.Region) (*models.SearchResults, error)
	List(ctx context.Context, kind models.Kind, r region.Region, limit int) (any, error)
	ByID(ctx context.Context, kind models.Kind, id string, r region.Region) (any, error)
	CaptureLead(ctx context.Context, lead models.Lead, followUp service.FollowUp) error
	RequestDownload(ctx context.Context, r region.Region, kind models.Kind, id, email string) (*models.Download, error)
}

// Handlers агрегирует зависимости хендлеров.
type Handlers struct {
	Portal Portal
}

func New(p Portal) *Handlers {
	return &Handlers{Portal: p}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// regionOf — регион запроса, положенный middleware.Region.
func regionOf(r *http.Request) region.Region {
	if reg, ok := region.From(r.Context()); ok {
		return reg
	}
	return region.Default
}
