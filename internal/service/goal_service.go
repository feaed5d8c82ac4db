package service

import (
	"context"

	"find/internal/models"
	"find/internal/observability"
	"find/internal/repository"
)

type GoalService struct {
	goalRepo repository.GoalRepository
	adRepo   repository.AdvertisementRepository
}

type CreateGoalInput struct {
	UserID          uint
	AdvertisementID uint
	GoalType        models.GoalType
	TargetAmount    float64
}

type ContributeInput struct {
	AdvertisementID uint
	GoalID          uint
	Amount          float64
}

func NewGoalService(goalRepo repository.GoalRepository, adRepo repository.AdvertisementRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo, adRepo: adRepo}
}

// ListGoals returns the goals of one advertisement, creation order. Unknown
// or deleted advertisements yield an empty list, not an error: the delete
// cascade removes goals with their listing, so an empty result is the honest
// answer either way.
func (s *GoalService) ListGoals(ctx context.Context, adID uint) ([]models.Goal, error) {
	return s.goalRepo.ListByAdvertisementID(ctx, adID)
}

// CreateGoal attaches a new target to an advertisement. Only the owner may
// add goals.
func (s *GoalService) CreateGoal(ctx context.Context, in CreateGoalInput) (*models.Goal, error) {
	if !models.ValidGoalType(in.GoalType) {
		return nil, models.NewValidationError("o tipo de objetivo deve ser 'donation' ou 'delivery'")
	}
	if in.TargetAmount <= 0 {
		return nil, models.NewValidationError("o valor alvo deve ser maior que zero")
	}

	ad, err := s.adRepo.GetByID(ctx, in.AdvertisementID)
	if err != nil {
		return nil, err
	}
	if ad.UserID != in.UserID {
		return nil, models.NewForbiddenError("Apenas o autor pode adicionar objetivos a este anúncio")
	}

	goal := &models.Goal{
		AdvertisementID: in.AdvertisementID,
		GoalType:        in.GoalType,
		TargetAmount:    in.TargetAmount,
	}
	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// Contribute records an anonymous contribution toward a goal. No session is
// required and progress may exceed the target.
func (s *GoalService) Contribute(ctx context.Context, in ContributeInput) (*models.Goal, error) {
	if in.Amount <= 0 {
		return nil, models.NewValidationError("o valor da contribuição deve ser maior que zero")
	}

	goal, err := s.goalRepo.Contribute(ctx, in.AdvertisementID, in.GoalID, in.Amount)
	if err != nil {
		return nil, err
	}

	observability.GoalContributions.WithLabelValues(string(goal.GoalType)).Inc()
	return goal, nil
}
