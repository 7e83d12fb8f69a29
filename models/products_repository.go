package models

import (
	"context"

	"gorm.io/gorm"
)

// HomePreviewLimit is the number of products shown on the homepage.
const HomePreviewLimit = 6

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// ListPreview returns up to limit products ordered by id.
// A non-positive limit falls back to HomePreviewLimit.
func (r *ProductsRepository) ListPreview(ctx context.Context, limit int) ([]Product, error) {
	if limit <= 0 {
		limit = HomePreviewLimit
	}

	var products []Product
	if err := r.db.WithContext(ctx).Order("id").Limit(limit).Find(&products).Error; err != nil {
		return nil, wrapErr("list product preview", err)
	}
	return products, nil
}

func (r *ProductsRepository) ListAll(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, wrapErr("list products", err)
	}
	return products, nil
}
