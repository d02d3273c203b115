package repository

import (
	"context"

	"gorm.io/gorm"

	"cumplimed/backend/internal/model"
)

// LabelRepository acceso a datos de etiquetas regulatorias
type LabelRepository interface {
	Create(ctx context.Context, label *model.RegulatoryLabel) error
	Save(ctx context.Context, label *model.RegulatoryLabel) error
	GetByID(ctx context.Context, id string) (*model.RegulatoryLabel, error)
	// GetLotLabel etiqueta de alcance LOTE de un lote (unidad nula)
	GetLotLabel(ctx context.Context, batchID string) (*model.RegulatoryLabel, error)
	// GetByUnit etiqueta de alcance SERIAL de una unidad
	GetByUnit(ctx context.Context, unitID string) (*model.RegulatoryLabel, error)
	ListByBatch(ctx context.Context, batchID string) ([]model.RegulatoryLabel, error)
	// CountValidatedSerials etiquetas SERIAL en estado VALIDADA para un conjunto de unidades
	CountValidatedSerials(ctx context.Context, unitIDs []string) (int64, error)
}

type labelRepo struct {
	db *gorm.DB
}

// NewLabelRepo crea una instancia de LabelRepository
func NewLabelRepo(db *gorm.DB) LabelRepository {
	return &labelRepo{db: db}
}

func (r *labelRepo) Create(ctx context.Context, label *model.RegulatoryLabel) error {
	return r.db.WithContext(ctx).Create(label).Error
}

func (r *labelRepo) Save(ctx context.Context, label *model.RegulatoryLabel) error {
	return r.db.WithContext(ctx).Save(label).Error
}

func (r *labelRepo) GetByID(ctx context.Context, id string) (*model.RegulatoryLabel, error) {
	var label model.RegulatoryLabel
	err := r.db.WithContext(ctx).
		Where("label_id = ?", id).
		First(&label).Error
	if err != nil {
		return nil, err
	}
	return &label, nil
}

func (r *labelRepo) GetLotLabel(ctx context.Context, batchID string) (*model.RegulatoryLabel, error) {
	var label model.RegulatoryLabel
	err := r.db.WithContext(ctx).
		Where("production_batch_id = ? AND scope_type = ? AND batch_unit_id IS NULL",
			batchID, model.LabelScopeLot).
		First(&label).Error
	if err != nil {
		return nil, err
	}
	return &label, nil
}

func (r *labelRepo) GetByUnit(ctx context.Context, unitID string) (*model.RegulatoryLabel, error) {
	var label model.RegulatoryLabel
	err := r.db.WithContext(ctx).
		Where("batch_unit_id = ? AND scope_type = ?", unitID, model.LabelScopeSerial).
		First(&label).Error
	if err != nil {
		return nil, err
	}
	return &label, nil
}

func (r *labelRepo) ListByBatch(ctx context.Context, batchID string) ([]model.RegulatoryLabel, error) {
	var labels []model.RegulatoryLabel
	err := r.db.WithContext(ctx).
		Where("production_batch_id = ?", batchID).
		Order("scope_type ASC, created_at ASC").
		Find(&labels).Error
	return labels, err
}

func (r *labelRepo) CountValidatedSerials(ctx context.Context, unitIDs []string) (int64, error) {
	if len(unitIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.RegulatoryLabel{}).
		Where("batch_unit_id IN ? AND scope_type = ? AND status = ?",
			unitIDs, model.LabelScopeSerial, model.LabelStatusValidated).
		Count(&count).Error
	return count, err
}
