package server

import (
	"encoding/json"
	"time"

	"find/internal/models"
	"find/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAdvertisements handles GET /api/advertisements
// @Summary List public advertisements
// @Description List public, unexpired advertisements, newest first, with optional text search
// @Tags advertisements
// @Produce json
// @Param search query string false "Search across title, description, location and publisher"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} object{advertisements=[]models.Advertisement}
// @Router /advertisements [get]
func (s *Server) GetAdvertisements(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	ads, err := s.adService.ListAdvertisements(c.Context(), service.ListAdvertisementsInput{
		Search: c.Query("search"),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"advertisements": ads})
}

// GetMyAdvertisements handles GET /api/advertisements/me
// @Summary List own advertisements
// @Description List the authenticated user's advertisements, including private and expired ones
// @Tags advertisements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{advertisements=[]models.Advertisement}
// @Router /advertisements/me [get]
func (s *Server) GetMyAdvertisements(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 20)

	ads, err := s.adService.ListOwnAdvertisements(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"advertisements": ads})
}

// GetAdvertisement handles GET /api/advertisements/:id
// @Summary Get one advertisement
// @Description Fetch an advertisement by id with its goals and owner contact
// @Tags advertisements
// @Produce json
// @Param id path int true "Advertisement ID"
// @Success 200 {object} object{advertisement=models.Advertisement}
// @Failure 404 {object} models.ErrorResponse
// @Router /advertisements/{id} [get]
func (s *Server) GetAdvertisement(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ad, err := s.adService.GetAdvertisement(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"advertisement": ad})
}

// CreateAdvertisement handles POST /api/advertisements
// @Summary Create an advertisement
// @Description Publish a help request owned by the authenticated user
// @Tags advertisements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{title=string,description=string,location=string,publisher=string,image_url=string,is_public=bool,expiration_date=string} true "Advertisement"
// @Success 201 {object} object{advertisement=models.Advertisement}
// @Failure 400 {object} models.ErrorResponse
// @Router /advertisements [post]
func (s *Server) CreateAdvertisement(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title          string     `json:"title"`
		Description    string     `json:"description"`
		Location       string     `json:"location"`
		Publisher      string     `json:"publisher"`
		ImageURL       string     `json:"image_url"`
		IsPublic       *bool      `json:"is_public"`
		ExpirationDate *time.Time `json:"expiration_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ad, err := s.adService.CreateAdvertisement(c.Context(), service.CreateAdvertisementInput{
		UserID:         userID,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		Publisher:      req.Publisher,
		ImageURL:       req.ImageURL,
		IsPublic:       req.IsPublic,
		ExpirationDate: req.ExpirationDate,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"advertisement": ad})
}

// UpdateAdvertisement handles PUT /api/advertisements/:id
// @Summary Update an advertisement
// @Description Update own advertisement; sending "expiration_date": null clears the expiration
// @Tags advertisements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Advertisement ID"
// @Param request body object{title=string,description=string,location=string,publisher=string,image_url=string,is_public=bool,expiration_date=string} true "Fields to update"
// @Success 200 {object} object{advertisement=models.Advertisement}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /advertisements/{id} [put]
func (s *Server) UpdateAdvertisement(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	adID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title          string     `json:"title"`
		Description    string     `json:"description"`
		Location       string     `json:"location"`
		Publisher      string     `json:"publisher"`
		ImageURL       string     `json:"image_url"`
		IsPublic       *bool      `json:"is_public"`
		ExpirationDate *time.Time `json:"expiration_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// A present-but-null expiration_date clears the date; an absent key
	// leaves it untouched. BodyParser cannot tell those apart, so check
	// key presence in the raw body.
	var raw map[string]json.RawMessage
	expirationSet := false
	if err := json.Unmarshal(c.Body(), &raw); err == nil {
		_, expirationSet = raw["expiration_date"]
	}

	ad, err := s.adService.UpdateAdvertisement(c.Context(), service.UpdateAdvertisementInput{
		UserID:            userID,
		AdID:              adID,
		Title:             req.Title,
		Description:       req.Description,
		Location:          req.Location,
		Publisher:         req.Publisher,
		ImageURL:          req.ImageURL,
		IsPublic:          req.IsPublic,
		ExpirationDate:    req.ExpirationDate,
		ExpirationDateSet: expirationSet,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"advertisement": ad})
}

// DeleteAdvertisement handles DELETE /api/advertisements/:id
// @Summary Delete an advertisement
// @Description Delete own advertisement together with its goals and related messages
// @Tags advertisements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Advertisement ID"
// @Success 200 {object} object{success=bool}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /advertisements/{id} [delete]
func (s *Server) DeleteAdvertisement(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	adID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adService.DeleteAdvertisement(c.Context(), userID, adID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"success": true})
}
