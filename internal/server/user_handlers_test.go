package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"find/internal/models"
	"find/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// withUserID installs test middleware that pretends user 1 is authenticated.
func withUserID(app *fiber.App, userID uint) {
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
}

func TestGetMyProfile(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := &Server{
		userRepo:    mockRepo,
		userService: service.NewUserService(mockRepo),
	}

	withUserID(app, 1)
	app.Get("/users/me", s.GetMyProfile)

	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(
		&models.User{ID: 1, Email: "me@example.com"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUpdateMyProfile(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := &Server{
		userRepo:    mockRepo,
		userService: service.NewUserService(mockRepo),
	}

	withUserID(app, 1)
	app.Put("/users/me", s.UpdateMyProfile)

	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(
		&models.User{ID: 1, Email: "me@example.com"}, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Phone == "912345678" && u.ReceiveUpdates
	})).Return(nil)

	body, _ := json.Marshal(map[string]interface{}{
		"phone":           "912345678",
		"receive_updates": true,
	})
	req := httptest.NewRequest(http.MethodPut, "/users/me", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockRepo.AssertExpectations(t)
}

func TestChangeMyPassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Current1Pass"), bcrypt.MinCost)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"current_password": "Current1Pass",
				"new_password":     "Updated1Pass",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Wrong Current Password",
			body: map[string]string{
				"current_password": "NotTheRight1",
				"new_password":     "Updated1Pass",
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "Weak New Password",
			body: map[string]string{
				"current_password": "Current1Pass",
				"new_password":     "weak",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			s := &Server{
				userRepo:    mockRepo,
				userService: service.NewUserService(mockRepo),
			}

			withUserID(app, 1)
			app.Put("/users/me/password", s.ChangeMyPassword)

			mockRepo.On("GetByID", mock.Anything, uint(1)).Return(
				&models.User{ID: 1, Email: "me@example.com", Password: string(hashed)}, nil)
			mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPut, "/users/me/password", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}
