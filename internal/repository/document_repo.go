package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"cumplimed/backend/internal/model"
)

// DocumentRepository acceso a datos de documentos controlados
type DocumentRepository interface {
	Create(ctx context.Context, doc *model.ControlledDocument) error
	GetByID(ctx context.Context, id string) (*model.ControlledDocument, error)
	List(ctx context.Context) ([]model.ControlledDocument, error)
	Update(ctx context.Context, doc *model.ControlledDocument) error
	// ApproveAndDemoteSiblings guarda el documento aprobado y pasa a OBSOLETE
	// toda otra versión APPROVED del mismo código, dentro de una transacción.
	ApproveAndDemoteSiblings(ctx context.Context, doc *model.ControlledDocument) error
	// ListActiveByProcess documentos APPROVED vigentes para un proceso,
	// ordenados por código asc y versión desc.
	ListActiveByProcess(ctx context.Context, process string, now time.Time) ([]model.ControlledDocument, error)
	// ListActiveByCode igual que por proceso pero filtrando por código exacto.
	ListActiveByCode(ctx context.Context, code string, now time.Time) ([]model.ControlledDocument, error)
}

type documentRepo struct {
	db *gorm.DB
}

// NewDocumentRepo crea una instancia de DocumentRepository
func NewDocumentRepo(db *gorm.DB) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *model.ControlledDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepo) GetByID(ctx context.Context, id string) (*model.ControlledDocument, error) {
	var doc model.ControlledDocument
	err := r.db.WithContext(ctx).
		Where("document_id = ?", id).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepo) List(ctx context.Context) ([]model.ControlledDocument, error) {
	var docs []model.ControlledDocument
	err := r.db.WithContext(ctx).
		Order("code ASC, version DESC").
		Find(&docs).Error
	return docs, err
}

func (r *documentRepo) Update(ctx context.Context, doc *model.ControlledDocument) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

func (r *documentRepo) ApproveAndDemoteSiblings(ctx context.Context, doc *model.ControlledDocument) error {
	// La aprobación y la degradación de versiones hermanas deben ser atómicas:
	// de lo contrario una carrera dejaría dos versiones APPROVED visibles.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(doc).Error; err != nil {
			return err
		}
		return tx.Model(&model.ControlledDocument{}).
			Where("code = ? AND document_id <> ? AND status = ?",
				doc.Code, doc.DocumentID, model.DocumentStatusApproved).
			Update("status", model.DocumentStatusObsolete).Error
	})
}

func activeFilter(db *gorm.DB, now time.Time) *gorm.DB {
	return db.
		Where("status = ?", model.DocumentStatusApproved).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Where("effective_date IS NULL OR effective_date <= ?", now).
		Order("code ASC, version DESC")
}

func (r *documentRepo) ListActiveByProcess(ctx context.Context, process string, now time.Time) ([]model.ControlledDocument, error) {
	var docs []model.ControlledDocument
	err := activeFilter(r.db.WithContext(ctx).Where("process = ?", process), now).
		Find(&docs).Error
	return docs, err
}

func (r *documentRepo) ListActiveByCode(ctx context.Context, code string, now time.Time) ([]model.ControlledDocument, error) {
	var docs []model.ControlledDocument
	err := activeFilter(r.db.WithContext(ctx).Where("code = ?", code), now).
		Find(&docs).Error
	return docs, err
}
