package seed

import (
	"strings"
	"testing"
	"time"

	"find/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUser(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true})

	user := f.BuildUser()
	assert.Contains(t, user.Email, "@")
	assert.NotEmpty(t, user.Password)
	assert.True(t, strings.HasPrefix(user.Phone, "9"))

	custom := f.BuildUser(func(u *models.User) {
		u.Email = "fixed@example.com"
	})
	assert.Equal(t, "fixed@example.com", custom.Email)
}

func TestBuildAdvertisement(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true, MaxDays: 30})
	user := &models.User{ID: 1}

	for i := 0; i < 50; i++ {
		ad := f.BuildAdvertisement(user)
		assert.Equal(t, uint(1), ad.UserID)
		assert.NotEmpty(t, ad.Title)
		assert.NotEmpty(t, ad.Description)
		assert.NotEmpty(t, ad.Location)
		assert.NotEmpty(t, ad.Publisher)
		assert.True(t, ad.IsPublic)
		if ad.ExpirationDate != nil {
			assert.True(t, ad.ExpirationDate.After(time.Now()))
			assert.True(t, ad.ExpirationDate.Before(time.Now().AddDate(0, 0, 38)))
		}
	}
}

func TestBuildGoal(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true})
	ad := &models.Advertisement{ID: 3}

	for i := 0; i < 20; i++ {
		goal := f.BuildGoal(ad)
		assert.Equal(t, uint(3), goal.AdvertisementID)
		assert.True(t, models.ValidGoalType(goal.GoalType))
		assert.Greater(t, goal.TargetAmount, 0.0)
		assert.GreaterOrEqual(t, goal.CurrentAmount, 0.0)
	}
}

func TestBuildProduct(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true})
	user := &models.User{ID: 2}

	product := f.BuildProduct(user)
	assert.Equal(t, uint(2), product.UserID)
	assert.Greater(t, product.Price, 0.0)
	assert.NotEmpty(t, product.Category)
}

func TestBuildMessage(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true})
	sender := &models.User{ID: 1}
	receiver := &models.User{ID: 2}
	ad := &models.Advertisement{ID: 5}

	msg := f.BuildMessage(sender, receiver, ad)
	assert.Equal(t, uint(1), msg.SenderID)
	assert.Equal(t, uint(2), msg.ReceiverID)
	require.NotNil(t, msg.AdvertisementID)
	assert.Equal(t, uint(5), *msg.AdvertisementID)

	plain := f.BuildMessage(sender, receiver, nil)
	assert.Nil(t, plain.AdvertisementID)
}

func TestSeedDryRun(t *testing.T) {
	err := Seed(nil, Options{
		NumUsers:    5,
		NumAds:      8,
		NumProducts: 4,
		DryRun:      true,
	})
	assert.NoError(t, err)
}

func TestCreateUserDryRunAssignsSyntheticIDs(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true})

	a, err := f.CreateUser()
	require.NoError(t, err)
	b, err := f.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}
