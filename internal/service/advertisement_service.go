package service

import (
	"context"
	"strings"
	"time"

	"find/internal/models"
	"find/internal/repository"
)

type AdvertisementService struct {
	adRepo   repository.AdvertisementRepository
	userRepo repository.UserRepository
}

type CreateAdvertisementInput struct {
	UserID         uint
	Title          string
	Description    string
	Location       string
	Publisher      string
	ImageURL       string
	IsPublic       *bool
	ExpirationDate *time.Time
}

type UpdateAdvertisementInput struct {
	UserID      uint
	AdID        uint
	Title       string
	Description string
	Location    string
	Publisher   string
	ImageURL    string
	IsPublic    *bool
	// ExpirationDate distinguishes "leave alone" (Set false), "clear" (Set
	// true, nil value) and "replace" (Set true, non-nil value).
	ExpirationDate    *time.Time
	ExpirationDateSet bool
}

type ListAdvertisementsInput struct {
	Search string
	Limit  int
	Offset int
}

func NewAdvertisementService(adRepo repository.AdvertisementRepository, userRepo repository.UserRepository) *AdvertisementService {
	return &AdvertisementService{adRepo: adRepo, userRepo: userRepo}
}

const (
	maxTitleLen       = 200
	maxDescriptionLen = 10000
	maxLocationLen    = 200
	maxPublisherLen   = 100
)

func validateListingFields(title, description, location, publisher string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("o título é obrigatório")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("o título não pode exceder 200 caracteres")
	}
	if strings.TrimSpace(description) == "" {
		return models.NewValidationError("a descrição é obrigatória")
	}
	if len(description) > maxDescriptionLen {
		return models.NewValidationError("a descrição não pode exceder 10000 caracteres")
	}
	if strings.TrimSpace(location) == "" {
		return models.NewValidationError("a localização é obrigatória")
	}
	if len(location) > maxLocationLen {
		return models.NewValidationError("a localização não pode exceder 200 caracteres")
	}
	if strings.TrimSpace(publisher) == "" {
		return models.NewValidationError("o nome do anunciante é obrigatório")
	}
	if len(publisher) > maxPublisherLen {
		return models.NewValidationError("o nome do anunciante não pode exceder 100 caracteres")
	}
	return nil
}

func (s *AdvertisementService) CreateAdvertisement(ctx context.Context, in CreateAdvertisementInput) (*models.Advertisement, error) {
	if err := validateListingFields(in.Title, in.Description, in.Location, in.Publisher); err != nil {
		return nil, err
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	ad := &models.Advertisement{
		UserID:         in.UserID,
		Title:          in.Title,
		Description:    in.Description,
		Location:       in.Location,
		Publisher:      in.Publisher,
		ImageURL:       in.ImageURL,
		IsPublic:       isPublic,
		ExpirationDate: in.ExpirationDate,
	}
	if err := s.adRepo.Create(ctx, ad); err != nil {
		return nil, err
	}
	return s.GetAdvertisement(ctx, ad.ID)
}

func (s *AdvertisementService) ListAdvertisements(ctx context.Context, in ListAdvertisementsInput) ([]*models.Advertisement, error) {
	ads, err := s.adRepo.ListPublic(ctx, in.Search, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	s.enrichContacts(ctx, ads)
	return ads, nil
}

func (s *AdvertisementService) ListOwnAdvertisements(ctx context.Context, userID uint, limit, offset int) ([]*models.Advertisement, error) {
	ads, err := s.adRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	s.enrichContacts(ctx, ads)
	return ads, nil
}

func (s *AdvertisementService) GetAdvertisement(ctx context.Context, id uint) (*models.Advertisement, error) {
	ad, err := s.adRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.enrichContact(ctx, ad)
	return ad, nil
}

func (s *AdvertisementService) UpdateAdvertisement(ctx context.Context, in UpdateAdvertisementInput) (*models.Advertisement, error) {
	ad, err := s.authorizeOwner(ctx, in.AdID, in.UserID)
	if err != nil {
		return nil, err
	}

	// Updates carry the full set of required fields, like Create; only
	// is_public and expiration_date are optional partial updates.
	if err := validateListingFields(in.Title, in.Description, in.Location, in.Publisher); err != nil {
		return nil, err
	}

	ad.Title = in.Title
	ad.Description = in.Description
	ad.Location = in.Location
	ad.Publisher = in.Publisher
	if in.ImageURL != "" {
		ad.ImageURL = in.ImageURL
	}
	if in.IsPublic != nil {
		ad.IsPublic = *in.IsPublic
	}
	if in.ExpirationDateSet {
		ad.ExpirationDate = in.ExpirationDate
	}

	if err := s.adRepo.Update(ctx, ad); err != nil {
		return nil, err
	}
	s.enrichContact(ctx, ad)
	return ad, nil
}

// DeleteAdvertisement removes the listing with its goals and related messages.
func (s *AdvertisementService) DeleteAdvertisement(ctx context.Context, userID, adID uint) error {
	if _, err := s.authorizeOwner(ctx, adID, userID); err != nil {
		return err
	}
	return s.adRepo.DeleteCascade(ctx, adID)
}

// authorizeOwner loads the advertisement and rejects callers other than its
// owner. A missing listing is a 404, someone else's is a 403.
func (s *AdvertisementService) authorizeOwner(ctx context.Context, adID, userID uint) (*models.Advertisement, error) {
	ad, err := s.adRepo.GetByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	if ad.UserID != userID {
		return nil, models.NewForbiddenError("Apenas o autor pode alterar este anúncio")
	}
	return ad, nil
}

func (s *AdvertisementService) enrichContact(ctx context.Context, ad *models.Advertisement) {
	owner, err := s.userRepo.GetByID(ctx, ad.UserID)
	if err != nil {
		// Listings still render without contact details.
		return
	}
	ad.Contact = owner.Phone
	ad.ContactEmail = owner.Email
}

func (s *AdvertisementService) enrichContacts(ctx context.Context, ads []*models.Advertisement) {
	owners := make(map[uint]*models.User, len(ads))
	for _, ad := range ads {
		if _, ok := owners[ad.UserID]; !ok {
			owner, err := s.userRepo.GetByID(ctx, ad.UserID)
			if err != nil {
				continue
			}
			owners[ad.UserID] = owner
		}
	}
	for _, ad := range ads {
		if owner, ok := owners[ad.UserID]; ok {
			ad.Contact = owner.Phone
			ad.ContactEmail = owner.Email
		}
	}
}
