package repository

import (
	"context"
	"errors"
	"time"

	"find/internal/cache"
	"find/internal/models"

	"gorm.io/gorm"
)

// AdvertisementRepository defines the interface for advertisement data operations
type AdvertisementRepository interface {
	Create(ctx context.Context, ad *models.Advertisement) error
	GetByID(ctx context.Context, id uint) (*models.Advertisement, error)
	ListPublic(ctx context.Context, search string, limit, offset int) ([]*models.Advertisement, error)
	ListByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Advertisement, error)
	Update(ctx context.Context, ad *models.Advertisement) error
	DeleteCascade(ctx context.Context, id uint) error
}

// advertisementRepository implements AdvertisementRepository
type advertisementRepository struct {
	db *gorm.DB
}

// NewAdvertisementRepository creates a new advertisement repository
func NewAdvertisementRepository(db *gorm.DB) AdvertisementRepository {
	return &advertisementRepository{db: db}
}

func (r *advertisementRepository) Create(ctx context.Context, ad *models.Advertisement) error {
	if err := r.db.WithContext(ctx).Create(ad).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.PublicAdvertisementsKey)
	return nil
}

func (r *advertisementRepository) GetByID(ctx context.Context, id uint) (*models.Advertisement, error) {
	var ad models.Advertisement
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Goals").
		First(&ad, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Advertisement", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &ad, nil
}

// publicVisible scopes queries to listings the public may see: marked public
// and either without an expiration or not yet expired.
func publicVisible(db *gorm.DB) *gorm.DB {
	return db.Where("is_public = ?", true).
		Where("expiration_date IS NULL OR expiration_date > ?", time.Now())
}

func (r *advertisementRepository) ListPublic(ctx context.Context, search string, limit, offset int) ([]*models.Advertisement, error) {
	var ads []*models.Advertisement

	fetch := func() error {
		q := publicVisible(r.db.WithContext(ctx).Model(&models.Advertisement{}))
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
			Find(&ads).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}

	// Only the unfiltered first page is hot enough to cache.
	if search == "" && offset == 0 {
		if err := cache.Aside(ctx, cache.PublicAdvertisementsKey, &ads, cache.PublicListTTL, fetch); err != nil {
			return nil, err
		}
		return ads, nil
	}

	if err := fetch(); err != nil {
		return nil, err
	}
	return ads, nil
}

func (r *advertisementRepository) ListByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Advertisement, error) {
	var ads []*models.Advertisement
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ads).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ads, nil
}

func (r *advertisementRepository) Update(ctx context.Context, ad *models.Advertisement) error {
	if err := r.db.WithContext(ctx).Save(ad).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateAdvertisement(ctx, ad.ID)
	return nil
}

// DeleteCascade removes the advertisement together with its goals and the chat
// messages that reference it, all inside one transaction.
func (r *advertisementRepository) DeleteCascade(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("advertisement_id = ?", id).
			Delete(&models.Goal{}).Error; err != nil {
			return err
		}
		if err := tx.Where("advertisement_id = ?", id).
			Delete(&models.ChatMessage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Advertisement{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateAdvertisement(ctx, id)
	return nil
}
