package repository

import (
	"context"
	"errors"

	"find/internal/cache"
	"find/internal/models"

	"gorm.io/gorm"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	ListPublic(ctx context.Context, search string, limit, offset int) ([]*models.Product, error)
	ListByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}

// productRepository implements ProductRepository
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.PublicProductsKey)
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &product, nil
}

func (r *productRepository) ListPublic(ctx context.Context, search string, limit, offset int) ([]*models.Product, error) {
	var products []*models.Product

	fetch := func() error {
		q := r.db.WithContext(ctx).
			Model(&models.Product{}).
			Where("is_public = ?", true)
		if search != "" {
			like := "%" + search + "%"
			q = q.Where(
				"title ILIKE ? OR description ILIKE ? OR location ILIKE ? OR publisher ILIKE ?",
				like, like, like, like,
			)
		}
		if err := q.Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&products).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}

	// Only the unfiltered first page is hot enough to cache.
	if search == "" && offset == 0 {
		if err := cache.Aside(ctx, cache.PublicProductsKey, &products, cache.PublicListTTL, fetch); err != nil {
			return nil, err
		}
		return products, nil
	}

	if err := fetch(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) ListByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Product, error) {
	var products []*models.Product
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProduct(ctx, product.ID)
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Product{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProduct(ctx, id)
	return nil
}
