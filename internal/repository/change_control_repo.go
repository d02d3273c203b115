package repository

import (
	"context"

	"gorm.io/gorm"

	"cumplimed/backend/internal/model"
)

// ChangeControlRepository acceso a datos de controles de cambio
type ChangeControlRepository interface {
	Create(ctx context.Context, cc *model.ChangeControl) error
	GetByID(ctx context.Context, id string) (*model.ChangeControl, error)
	List(ctx context.Context) ([]model.ChangeControl, error)
	Update(ctx context.Context, cc *model.ChangeControl) error
	// GetApprovalByRole busca la aprobación de un rol dentro de un control de cambios
	GetApprovalByRole(ctx context.Context, changeControlID, role string) (*model.ChangeControlApproval, error)
	SaveApproval(ctx context.Context, approval *model.ChangeControlApproval) error
	ListApprovals(ctx context.Context, changeControlID string) ([]model.ChangeControlApproval, error)
}

type changeControlRepo struct {
	db *gorm.DB
}

// NewChangeControlRepo crea una instancia de ChangeControlRepository
func NewChangeControlRepo(db *gorm.DB) ChangeControlRepository {
	return &changeControlRepo{db: db}
}

func (r *changeControlRepo) Create(ctx context.Context, cc *model.ChangeControl) error {
	return r.db.WithContext(ctx).Create(cc).Error
}

func (r *changeControlRepo) GetByID(ctx context.Context, id string) (*model.ChangeControl, error) {
	var cc model.ChangeControl
	err := r.db.WithContext(ctx).
		Preload("Approvals", func(db *gorm.DB) *gorm.DB {
			return db.Order("role ASC")
		}).
		Where("change_control_id = ?", id).
		First(&cc).Error
	if err != nil {
		return nil, err
	}
	return &cc, nil
}

func (r *changeControlRepo) List(ctx context.Context) ([]model.ChangeControl, error) {
	var ccs []model.ChangeControl
	err := r.db.WithContext(ctx).
		Preload("Approvals").
		Order("created_at DESC").
		Find(&ccs).Error
	return ccs, err
}

func (r *changeControlRepo) Update(ctx context.Context, cc *model.ChangeControl) error {
	// Omit evita que GORM re-escriba las aprobaciones precargadas
	return r.db.WithContext(ctx).Omit("Approvals").Save(cc).Error
}

func (r *changeControlRepo) GetApprovalByRole(ctx context.Context, changeControlID, role string) (*model.ChangeControlApproval, error) {
	var approval model.ChangeControlApproval
	err := r.db.WithContext(ctx).
		Where("change_control_id = ? AND role = ?", changeControlID, role).
		First(&approval).Error
	if err != nil {
		return nil, err
	}
	return &approval, nil
}

func (r *changeControlRepo) SaveApproval(ctx context.Context, approval *model.ChangeControlApproval) error {
	return r.db.WithContext(ctx).Save(approval).Error
}

func (r *changeControlRepo) ListApprovals(ctx context.Context, changeControlID string) ([]model.ChangeControlApproval, error) {
	var approvals []model.ChangeControlApproval
	err := r.db.WithContext(ctx).
		Where("change_control_id = ?", changeControlID).
		Order("role ASC").
		Find(&approvals).Error
	return approvals, err
}
