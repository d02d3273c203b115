package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"cumplimed/backend/internal/model"
)

// DeviationRepository consulta de incidencias de calidad (subsistema externo,
// solo lectura desde este núcleo)
type DeviationRepository interface {
	// ListOpenIssues descripciones de las desviaciones/OOS abiertas de un lote
	ListOpenIssues(ctx context.Context, batchID string) ([]string, error)
}

type deviationRepo struct {
	db *gorm.DB
}

// NewDeviationRepo crea una instancia de DeviationRepository
func NewDeviationRepo(db *gorm.DB) DeviationRepository {
	return &deviationRepo{db: db}
}

func (r *deviationRepo) ListOpenIssues(ctx context.Context, batchID string) ([]string, error) {
	var deviations []model.Deviation
	err := r.db.WithContext(ctx).
		Where("production_batch_id = ? AND status = ?", batchID, model.DeviationStatusOpen).
		Order("code ASC").
		Find(&deviations).Error
	if err != nil {
		return nil, err
	}

	issues := make([]string, 0, len(deviations))
	for _, d := range deviations {
		issues = append(issues, fmt.Sprintf("%s (%s)", d.Code, d.Type))
	}
	return issues, nil
}
