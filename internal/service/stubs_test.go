package service

import (
	"context"
	"errors"
	"testing"

	"find/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Function-field stubs keep each test focused on the behavior under test:
// override only the calls the scenario exercises.

type userRepoStub struct {
	getByIDFn    func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn func(ctx context.Context, email string) (*models.User, error)
	createFn     func(ctx context.Context, user *models.User) error
	updateFn     func(ctx context.Context, user *models.User) error
	deleteFn     func(ctx context.Context, id uint) error
	listFn       func(ctx context.Context, limit, offset int) ([]models.User, error)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		listFn:       func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

type adRepoStub struct {
	createFn        func(ctx context.Context, ad *models.Advertisement) error
	getByIDFn       func(ctx context.Context, id uint) (*models.Advertisement, error)
	listPublicFn    func(ctx context.Context, search string, limit, offset int) ([]*models.Advertisement, error)
	listByUserIDFn  func(ctx context.Context, userID uint, limit, offset int) ([]*models.Advertisement, error)
	updateFn        func(ctx context.Context, ad *models.Advertisement) error
	deleteCascadeFn func(ctx context.Context, id uint) error
}

func noopAdRepo() *adRepoStub {
	return &adRepoStub{
		createFn: func(_ context.Context, _ *models.Advertisement) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Advertisement, error) {
			return &models.Advertisement{ID: id, UserID: 1}, nil
		},
		listPublicFn: func(_ context.Context, _ string, _, _ int) ([]*models.Advertisement, error) {
			return nil, nil
		},
		listByUserIDFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Advertisement, error) {
			return nil, nil
		},
		updateFn:        func(_ context.Context, _ *models.Advertisement) error { return nil },
		deleteCascadeFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func (s *adRepoStub) Create(ctx context.Context, ad *models.Advertisement) error {
	return s.createFn(ctx, ad)
}
func (s *adRepoStub) GetByID(ctx context.Context, id uint) (*models.Advertisement, error) {
	return s.getByIDFn(ctx, id)
}
func (s *adRepoStub) ListPublic(ctx context.Context, search string, limit, offset int) ([]*models.Advertisement, error) {
	return s.listPublicFn(ctx, search, limit, offset)
}
func (s *adRepoStub) ListByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Advertisement, error) {
	return s.listByUserIDFn(ctx, userID, limit, offset)
}
func (s *adRepoStub) Update(ctx context.Context, ad *models.Advertisement) error {
	return s.updateFn(ctx, ad)
}
func (s *adRepoStub) DeleteCascade(ctx context.Context, id uint) error {
	return s.deleteCascadeFn(ctx, id)
}

type goalRepoStub struct {
	createFn     func(ctx context.Context, goal *models.Goal) error
	listFn       func(ctx context.Context, adID uint) ([]models.Goal, error)
	getByIDFn    func(ctx context.Context, adID, goalID uint) (*models.Goal, error)
	contributeFn func(ctx context.Context, adID, goalID uint, amount float64) (*models.Goal, error)
}

func noopGoalRepo() *goalRepoStub {
	return &goalRepoStub{
		createFn: func(_ context.Context, _ *models.Goal) error { return nil },
		listFn:   func(_ context.Context, _ uint) ([]models.Goal, error) { return nil, nil },
		getByIDFn: func(_ context.Context, adID, goalID uint) (*models.Goal, error) {
			return &models.Goal{ID: goalID, AdvertisementID: adID}, nil
		},
		contributeFn: func(_ context.Context, adID, goalID uint, amount float64) (*models.Goal, error) {
			return &models.Goal{ID: goalID, AdvertisementID: adID, CurrentAmount: amount}, nil
		},
	}
}

func (s *goalRepoStub) Create(ctx context.Context, goal *models.Goal) error {
	return s.createFn(ctx, goal)
}
func (s *goalRepoStub) ListByAdvertisementID(ctx context.Context, adID uint) ([]models.Goal, error) {
	return s.listFn(ctx, adID)
}
func (s *goalRepoStub) GetByID(ctx context.Context, adID, goalID uint) (*models.Goal, error) {
	return s.getByIDFn(ctx, adID, goalID)
}
func (s *goalRepoStub) Contribute(ctx context.Context, adID, goalID uint, amount float64) (*models.Goal, error) {
	return s.contributeFn(ctx, adID, goalID, amount)
}

type productRepoStub struct {
	createFn       func(ctx context.Context, product *models.Product) error
	getByIDFn      func(ctx context.Context, id uint) (*models.Product, error)
	listPublicFn   func(ctx context.Context, search string, limit, offset int) ([]*models.Product, error)
	listByUserIDFn func(ctx context.Context, userID uint, limit, offset int) ([]*models.Product, error)
	updateFn       func(ctx context.Context, product *models.Product) error
	deleteFn       func(ctx context.Context, id uint) error
}

func noopProductRepo() *productRepoStub {
	return &productRepoStub{
		createFn: func(_ context.Context, _ *models.Product) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Product, error) {
			return &models.Product{ID: id, UserID: 1}, nil
		},
		listPublicFn: func(_ context.Context, _ string, _, _ int) ([]*models.Product, error) {
			return nil, nil
		},
		listByUserIDFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Product, error) {
			return nil, nil
		},
		updateFn: func(_ context.Context, _ *models.Product) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func (s *productRepoStub) Create(ctx context.Context, product *models.Product) error {
	return s.createFn(ctx, product)
}
func (s *productRepoStub) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.getByIDFn(ctx, id)
}
func (s *productRepoStub) ListPublic(ctx context.Context, search string, limit, offset int) ([]*models.Product, error) {
	return s.listPublicFn(ctx, search, limit, offset)
}
func (s *productRepoStub) ListByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Product, error) {
	return s.listByUserIDFn(ctx, userID, limit, offset)
}
func (s *productRepoStub) Update(ctx context.Context, product *models.Product) error {
	return s.updateFn(ctx, product)
}
func (s *productRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

type messageRepoStub struct {
	createFn         func(ctx context.Context, msg *models.ChatMessage) error
	getThreadFn      func(ctx context.Context, userID, contactID uint, limit, offset int) ([]*models.ChatMessage, error)
	markThreadReadFn func(ctx context.Context, receiverID, senderID uint) error
	listForUserFn    func(ctx context.Context, userID uint, limit int) ([]*models.ChatMessage, error)
	countUnreadFn    func(ctx context.Context, receiverID uint) (map[uint]int, error)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn: func(_ context.Context, _ *models.ChatMessage) error { return nil },
		getThreadFn: func(_ context.Context, _, _ uint, _, _ int) ([]*models.ChatMessage, error) {
			return nil, nil
		},
		markThreadReadFn: func(_ context.Context, _, _ uint) error { return nil },
		listForUserFn: func(_ context.Context, _ uint, _ int) ([]*models.ChatMessage, error) {
			return nil, nil
		},
		countUnreadFn: func(_ context.Context, _ uint) (map[uint]int, error) { return nil, nil },
	}
}

func (s *messageRepoStub) Create(ctx context.Context, msg *models.ChatMessage) error {
	return s.createFn(ctx, msg)
}
func (s *messageRepoStub) GetThread(ctx context.Context, userID, contactID uint, limit, offset int) ([]*models.ChatMessage, error) {
	return s.getThreadFn(ctx, userID, contactID, limit, offset)
}
func (s *messageRepoStub) MarkThreadRead(ctx context.Context, receiverID, senderID uint) error {
	return s.markThreadReadFn(ctx, receiverID, senderID)
}
func (s *messageRepoStub) ListForUser(ctx context.Context, userID uint, limit int) ([]*models.ChatMessage, error) {
	return s.listForUserFn(ctx, userID, limit)
}
func (s *messageRepoStub) CountUnreadBySender(ctx context.Context, receiverID uint) (map[uint]int, error) {
	return s.countUnreadFn(ctx, receiverID)
}

type imageRepoStub struct {
	createFn          func(ctx context.Context, image *models.Image) error
	getByHashFn       func(ctx context.Context, hash string) (*models.Image, error)
	getWithVariantsFn func(ctx context.Context, hash string) (*models.Image, error)
	upsertVariantFn   func(ctx context.Context, v *models.ImageVariant) error
	getVariantsByIDFn func(ctx context.Context, imageID uint) ([]models.ImageVariant, error)
}

func noopImageRepo() *imageRepoStub {
	return &imageRepoStub{
		createFn: func(_ context.Context, img *models.Image) error {
			img.ID = 1
			return nil
		},
		getByHashFn: func(_ context.Context, hash string) (*models.Image, error) {
			return nil, models.NewNotFoundError("Image", hash)
		},
		getWithVariantsFn: func(_ context.Context, hash string) (*models.Image, error) {
			return nil, models.NewNotFoundError("Image", hash)
		},
		upsertVariantFn: func(_ context.Context, _ *models.ImageVariant) error { return nil },
		getVariantsByIDFn: func(_ context.Context, _ uint) ([]models.ImageVariant, error) {
			return nil, nil
		},
	}
}

func (s *imageRepoStub) Create(ctx context.Context, image *models.Image) error {
	return s.createFn(ctx, image)
}
func (s *imageRepoStub) GetByHash(ctx context.Context, hash string) (*models.Image, error) {
	return s.getByHashFn(ctx, hash)
}
func (s *imageRepoStub) GetByHashWithVariants(ctx context.Context, hash string) (*models.Image, error) {
	return s.getWithVariantsFn(ctx, hash)
}
func (s *imageRepoStub) UpsertVariant(ctx context.Context, v *models.ImageVariant) error {
	return s.upsertVariantFn(ctx, v)
}
func (s *imageRepoStub) GetVariantsByImageID(ctx context.Context, imageID uint) ([]models.ImageVariant, error) {
	return s.getVariantsByIDFn(ctx, imageID)
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "FORBIDDEN")
}
