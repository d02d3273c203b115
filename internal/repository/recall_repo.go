package repository

import (
	"context"

	"gorm.io/gorm"

	"cumplimed/backend/internal/model"
)

// RecallRepository acceso a datos de casos de retiro
type RecallRepository interface {
	Create(ctx context.Context, recall *model.RecallCase) error
	GetByID(ctx context.Context, id string) (*model.RecallCase, error)
	List(ctx context.Context) ([]model.RecallCase, error)
	Update(ctx context.Context, recall *model.RecallCase) error
	AddNotification(ctx context.Context, notification *model.RecallNotification) error
	ListNotifications(ctx context.Context, recallID string) ([]model.RecallNotification, error)
}

type recallRepo struct {
	db *gorm.DB
}

// NewRecallRepo crea una instancia de RecallRepository
func NewRecallRepo(db *gorm.DB) RecallRepository {
	return &recallRepo{db: db}
}

func (r *recallRepo) Create(ctx context.Context, recall *model.RecallCase) error {
	return r.db.WithContext(ctx).Create(recall).Error
}

func (r *recallRepo) GetByID(ctx context.Context, id string) (*model.RecallCase, error) {
	var recall model.RecallCase
	err := r.db.WithContext(ctx).
		Preload("Notifications", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("recall_id = ?", id).
		First(&recall).Error
	if err != nil {
		return nil, err
	}
	return &recall, nil
}

func (r *recallRepo) List(ctx context.Context) ([]model.RecallCase, error) {
	var recalls []model.RecallCase
	err := r.db.WithContext(ctx).
		Preload("Notifications").
		Order("started_at DESC").
		Find(&recalls).Error
	return recalls, err
}

func (r *recallRepo) Update(ctx context.Context, recall *model.RecallCase) error {
	return r.db.WithContext(ctx).Omit("Notifications").Save(recall).Error
}

func (r *recallRepo) AddNotification(ctx context.Context, notification *model.RecallNotification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *recallRepo) ListNotifications(ctx context.Context, recallID string) ([]model.RecallNotification, error) {
	var notifications []model.RecallNotification
	err := r.db.WithContext(ctx).
		Where("recall_id = ?", recallID).
		Order("created_at ASC").
		Find(&notifications).Error
	return notifications, err
}
