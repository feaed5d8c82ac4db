package repository

import (
	"context"
	"errors"

	"find/internal/cache"
	"find/internal/models"

	"gorm.io/gorm"
)

// GoalRepository defines persistence operations for advertisement goals.
type GoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) error
	ListByAdvertisementID(ctx context.Context, adID uint) ([]models.Goal, error)
	GetByID(ctx context.Context, adID, goalID uint) (*models.Goal, error)
	Contribute(ctx context.Context, adID, goalID uint, amount float64) (*models.Goal, error)
}

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository returns a new GoalRepository implementation.
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *models.Goal) error {
	if err := r.db.WithContext(ctx).Create(goal).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.GoalsKey(goal.AdvertisementID))
	return nil
}

func (r *goalRepository) ListByAdvertisementID(ctx context.Context, adID uint) ([]models.Goal, error) {
	var goals []models.Goal
	err := r.db.WithContext(ctx).
		Where("advertisement_id = ?", adID).
		Order("created_at ASC").
		Find(&goals).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return goals, nil
}

func (r *goalRepository) GetByID(ctx context.Context, adID, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	err := r.db.WithContext(ctx).
		Where("id = ? AND advertisement_id = ?", goalID, adID).
		First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Goal", goalID)
		}
		return nil, models.NewInternalError(err)
	}
	return &goal, nil
}

// Contribute adds amount to the goal's progress as a single atomic UPDATE so
// concurrent contributions never lose each other's increments.
func (r *goalRepository) Contribute(ctx context.Context, adID, goalID uint, amount float64) (*models.Goal, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Goal{}).
		Where("id = ? AND advertisement_id = ?", goalID, adID).
		UpdateColumn("current_amount", gorm.Expr("current_amount + ?", amount))
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Goal", goalID)
	}

	cache.Invalidate(ctx, cache.GoalsKey(adID))
	return r.GetByID(ctx, adID, goalID)
}
