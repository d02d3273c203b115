package repository

import (
	"context"

	"gorm.io/gorm"

	"cumplimed/backend/internal/model"
)

// BatchRepository acceso a datos de lotes de producción (solo lectura para el núcleo)
type BatchRepository interface {
	GetByID(ctx context.Context, id string) (*model.ProductionBatch, error)
	GetUnit(ctx context.Context, unitID string) (*model.BatchUnit, error)
	// ListDispatchableUnits unidades empacadas, con QC aprobado y no rechazadas
	ListDispatchableUnits(ctx context.Context, batchID string) ([]model.BatchUnit, error)
}

type batchRepo struct {
	db *gorm.DB
}

// NewBatchRepo crea una instancia de BatchRepository
func NewBatchRepo(db *gorm.DB) BatchRepository {
	return &batchRepo{db: db}
}

func (r *batchRepo) GetByID(ctx context.Context, id string) (*model.ProductionBatch, error) {
	var batch model.ProductionBatch
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", id).
		First(&batch).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *batchRepo) GetUnit(ctx context.Context, unitID string) (*model.BatchUnit, error) {
	var unit model.BatchUnit
	err := r.db.WithContext(ctx).
		Where("unit_id = ?", unitID).
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *batchRepo) ListDispatchableUnits(ctx context.Context, batchID string) ([]model.BatchUnit, error) {
	var units []model.BatchUnit
	err := r.db.WithContext(ctx).
		Where("production_batch_id = ? AND packaged = ? AND qc_passed = ? AND rejected = ?",
			batchID, true, true, false).
		Order("serial_number ASC").
		Find(&units).Error
	return units, err
}
