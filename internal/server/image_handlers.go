package server

import (
	"io"
	"strings"

	"find/internal/models"
	"find/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadImage handles POST /api/images
// @Summary Upload an image
// @Description Accepts a multipart "image" file, re-encodes it and returns its public URLs
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file (jpeg, png, gif or webp, max 10MB)"
// @Success 201 {object} service.UploadResult
// @Failure 400 {object} models.ErrorResponse
// @Router /images [post]
func (s *Server) UploadImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Nenhum ficheiro enviado"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Não foi possível ler o ficheiro enviado"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Não foi possível ler o ficheiro enviado"))
	}

	result, err := s.imageService.Upload(c.UserContext(), userID,
		file.Filename, file.Header.Get("Content-Type"), content)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetImage handles GET /api/images/:hash
// @Summary Get image metadata
// @Description Return the stored record for an image, including its variant URLs
// @Tags images
// @Produce json
// @Param hash path string true "Content hash"
// @Success 200 {object} service.UploadResult
// @Failure 404 {object} models.ErrorResponse
// @Router /images/{hash} [get]
func (s *Server) GetImage(c *fiber.Ctx) error {
	hash := strings.TrimSpace(c.Params("hash"))

	img, err := s.imageService.GetImage(c.Context(), hash)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	variants := make([]string, 0, len(img.Variants))
	for _, v := range img.Variants {
		variants = append(variants, service.BuildVariantURL(img.Hash, v.SizePx, v.Format))
	}

	return c.JSON(fiber.Map{
		"image":    img,
		"url":      service.BuildMasterImageURL(img.Hash),
		"variants": variants,
	})
}

// ServeImage handles GET /media/i/:hash/:file and streams the rendition
// from disk. The hash is validated before touching the filesystem.
func (s *Server) ServeImage(c *fiber.Ctx) error {
	hash := strings.TrimSpace(c.Params("hash"))
	file := strings.TrimSpace(c.Params("file"))

	path, mimeType, err := s.imageService.ResolveFile(c.Context(), hash, file)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	c.Set(fiber.HeaderContentType, mimeType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
	return c.SendFile(path)
}
