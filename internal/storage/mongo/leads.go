package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/pribylovaa/go-content-portal/internal/models"
	"github.com/pribylovaa/go-content-portal/internal/storage"
)

// leadDoc — BSON-представление лида.
type leadDoc struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	Source    string    `bson:"source"`
	Region    string    `bson:"region,omitempty"`
	AssetName string    `bson:"asset_name,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

func toDoc(lead models.Lead) leadDoc {
	return leadDoc{
		ID:        lead.ID,
		Email:     lead.Email,
		Source:    lead.Source,
		Region:    lead.Region,
		AssetName: lead.AssetName,
		CreatedAt: lead.CreatedAt.UTC(),
	}
}

// InsertLead сохраняет один лид. Идентификатор и время проставляет сервис.
func (m *Mongo) InsertLead(ctx context.Context, lead models.Lead) error {
	const op = "storage.mongo.InsertLead"

	if lead.ID == "" {
		return fmt.Errorf("%s: empty lead id", op)
	}

	if _, err := m.leads.InsertOne(ctx, toDoc(lead)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.LeadSink = (*Mongo)(nil)
