package server

import (
	"find/internal/models"
	"find/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProducts handles GET /api/products
// @Summary List public products
// @Description List public products, newest first, with optional text search
// @Tags products
// @Produce json
// @Param search query string false "Search across title, description, location and publisher"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} object{products=[]models.Product}
// @Router /products [get]
func (s *Server) GetProducts(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	products, err := s.productService.ListProducts(c.Context(), service.ListProductsInput{
		Search: c.Query("search"),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"products": products})
}

// GetMyProducts handles GET /api/products/me
// @Summary List own products
// @Description List the authenticated user's products, including private ones
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{products=[]models.Product}
// @Router /products/me [get]
func (s *Server) GetMyProducts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 20)

	products, err := s.productService.ListOwnProducts(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"products": products})
}

// GetProduct handles GET /api/products/:id
// @Summary Get one product
// @Description Fetch a product by id with its owner contact
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{product=models.Product}
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (s *Server) GetProduct(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	product, err := s.productService.GetProduct(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"product": product})
}

// CreateProduct handles POST /api/products
// @Summary Create a product
// @Description Publish a marketplace item owned by the authenticated user
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{title=string,description=string,price=number,location=string,publisher=string,category=string,image_url=string,is_public=bool} true "Product"
// @Success 201 {object} object{product=models.Product}
// @Failure 400 {object} models.ErrorResponse
// @Router /products [post]
func (s *Server) CreateProduct(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Location    string  `json:"location"`
		Publisher   string  `json:"publisher"`
		Category    string  `json:"category"`
		ImageURL    string  `json:"image_url"`
		IsPublic    *bool   `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	product, err := s.productService.CreateProduct(c.Context(), service.CreateProductInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Publisher:   req.Publisher,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product": product})
}

// UpdateProduct handles PUT /api/products/:id
// @Summary Update a product
// @Description Update own product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body object{title=string,description=string,price=number,location=string,publisher=string,category=string,image_url=string,is_public=bool} true "Fields to update"
// @Success 200 {object} object{product=models.Product}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [put]
func (s *Server) UpdateProduct(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	productID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Price       *float64 `json:"price"`
		Location    string   `json:"location"`
		Publisher   string   `json:"publisher"`
		Category    string   `json:"category"`
		ImageURL    string   `json:"image_url"`
		IsPublic    *bool    `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	product, err := s.productService.UpdateProduct(c.Context(), service.UpdateProductInput{
		UserID:      userID,
		ProductID:   productID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Publisher:   req.Publisher,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"product": product})
}

// DeleteProduct handles DELETE /api/products/:id
// @Summary Delete a product
// @Description Delete own product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} object{success=bool}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [delete]
func (s *Server) DeleteProduct(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	productID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.productService.DeleteProduct(c.Context(), userID, productID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"success": true})
}
