package repository

import (
	"context"

	"gorm.io/gorm"

	"cumplimed/backend/internal/model"
)

// ReleaseRepository acceso a datos de liberaciones de lote
type ReleaseRepository interface {
	Create(ctx context.Context, release *model.BatchRelease) error
	Save(ctx context.Context, release *model.BatchRelease) error
	GetByBatch(ctx context.Context, batchID string) (*model.BatchRelease, error)
}

type releaseRepo struct {
	db *gorm.DB
}

// NewReleaseRepo crea una instancia de ReleaseRepository
func NewReleaseRepo(db *gorm.DB) ReleaseRepository {
	return &releaseRepo{db: db}
}

func (r *releaseRepo) Create(ctx context.Context, release *model.BatchRelease) error {
	return r.db.WithContext(ctx).Create(release).Error
}

func (r *releaseRepo) Save(ctx context.Context, release *model.BatchRelease) error {
	return r.db.WithContext(ctx).Save(release).Error
}

func (r *releaseRepo) GetByBatch(ctx context.Context, batchID string) (*model.BatchRelease, error) {
	var release model.BatchRelease
	err := r.db.WithContext(ctx).
		Where("production_batch_id = ?", batchID).
		First(&release).Error
	if err != nil {
		return nil, err
	}
	return &release, nil
}
