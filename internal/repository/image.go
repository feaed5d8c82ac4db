package repository

import (
	"context"
	"errors"
	"fmt"

	"find/internal/models"

	"gorm.io/gorm"
)

// ImageRepository defines storage operations for uploaded images.
type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByHash(ctx context.Context, hash string) (*models.Image, error)
	GetByHashWithVariants(ctx context.Context, hash string) (*models.Image, error)
	UpsertVariant(ctx context.Context, v *models.ImageVariant) error
	GetVariantsByImageID(ctx context.Context, imageID uint) ([]models.ImageVariant, error)
}

type imageRepository struct {
	db *gorm.DB
}

// NewImageRepository returns a repository implementation for image metadata.
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *imageRepository) GetByHash(ctx context.Context, hash string) (*models.Image, error) {
	var image models.Image
	if err := r.db.WithContext(ctx).Where("hash = ?", hash).First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Image", hash)
		}
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) GetByHashWithVariants(ctx context.Context, hash string) (*models.Image, error) {
	var image models.Image
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("hash = ?", hash).
		First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Image", hash)
		}
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) UpsertVariant(ctx context.Context, v *models.ImageVariant) error {
	if v == nil {
		return fmt.Errorf("variant is nil")
	}
	return r.db.WithContext(ctx).
		Exec(`
INSERT INTO image_variants (image_id, size_px, format, path, width, height, bytes)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (image_id, size_px, format)
DO UPDATE SET
  path = EXCLUDED.path,
  width = EXCLUDED.width,
  height = EXCLUDED.height,
  bytes = EXCLUDED.bytes
`, v.ImageID, v.SizePx, v.Format, v.Path, v.Width, v.Height, v.Bytes).Error
}

func (r *imageRepository) GetVariantsByImageID(ctx context.Context, imageID uint) ([]models.ImageVariant, error) {
	var variants []models.ImageVariant
	err := r.db.WithContext(ctx).
		Where("image_id = ?", imageID).
		Order("size_px ASC, format ASC").
		Find(&variants).Error
	return variants, err
}
