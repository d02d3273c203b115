package repository

import (
	"context"

	"gorm.io/gorm"

	"cumplimed/backend/internal/model"
)

// ProductRepository acceso a datos de referencia de productos (solo lectura)
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

type productRepo struct {
	db *gorm.DB
}

// NewProductRepo crea una instancia de ProductRepository
func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Registration").
		Where("product_id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}
