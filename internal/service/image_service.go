package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"find/internal/models"
	"find/internal/observability"
	"find/internal/repository"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// MaxUploadBytes caps the accepted original file size.
	MaxUploadBytes = 10 << 20

	// MasterMaxSize is the longest edge of the stored master rendition.
	MasterMaxSize = 2048

	jpegQuality = 82
	webpQuality = 70
)

// sizeLadder holds the widths the variant encoder produces. Sizes larger
// than the master are skipped.
var sizeLadder = []int{256, 640, 1080, 1440, 2048}

type ImageService struct {
	imageRepo repository.ImageRepository
	uploadDir string
}

// UploadResult is what the API returns after a successful upload.
type UploadResult struct {
	Image    *models.Image `json:"image"`
	URL      string        `json:"url"`
	Variants []string      `json:"variants,omitempty"`
}

func NewImageService(imageRepo repository.ImageRepository, uploadDir string) *ImageService {
	return &ImageService{imageRepo: imageRepo, uploadDir: uploadDir}
}

// Upload validates, re-encodes and stores a picture. Files are addressed by
// the sha256 of the original bytes, so uploading the same file twice returns
// the existing record.
func (s *ImageService) Upload(ctx context.Context, userID uint, filename, contentType string, data []byte) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, models.NewValidationError("o ficheiro está vazio")
	}
	if len(data) > MaxUploadBytes {
		observability.ImagesProcessed.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("o ficheiro excede o tamanho máximo de 10MB")
	}

	detected := http.DetectContentType(data)
	if !isAllowedImageMIME(detected) {
		observability.ImagesProcessed.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("formato de imagem não suportado (jpeg, png, gif ou webp)")
	}
	if contentType != "" && !isMatchingContentType(contentType, detected) {
		observability.ImagesProcessed.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("o tipo de conteúdo não corresponde ao ficheiro enviado")
	}

	hash := hashImageBytes(data)

	// Re-uploads of the same bytes dedupe on the content hash.
	if existing, err := s.imageRepo.GetByHashWithVariants(ctx, hash); err == nil {
		return s.buildResult(existing), nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		observability.ImagesProcessed.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("não foi possível descodificar a imagem")
	}

	master := resizeToFit(src, MasterMaxSize, MasterMaxSize)
	masterBytes, err := encodeJPEG(master, jpegQuality)
	if err != nil {
		observability.ImagesProcessed.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}

	masterPath := s.masterPath(hash)
	written := []string{masterPath}
	if err := writeBytesToFile(masterPath, masterBytes); err != nil {
		observability.ImagesProcessed.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}

	bounds := master.Bounds()
	img := &models.Image{
		UserID:   userID,
		Hash:     hash,
		MimeType: "image/jpeg",
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Bytes:    int64(len(masterBytes)),
		Status:   "ready",
	}
	if err := s.imageRepo.Create(ctx, img); err != nil {
		cleanupImageFiles(written)
		observability.ImagesProcessed.WithLabelValues("failed").Inc()
		return nil, err
	}

	for _, size := range sizeLadder {
		if size > bounds.Dx() && size > bounds.Dy() {
			continue
		}
		resized := resizeToFit(master, size, size)
		webpBytes, err := encodeWebP(resized, webpQuality)
		if err != nil {
			continue
		}
		variantPath := s.variantPath(hash, size, "webp")
		if err := writeBytesToFile(variantPath, webpBytes); err != nil {
			continue
		}
		written = append(written, variantPath)

		rb := resized.Bounds()
		variant := &models.ImageVariant{
			ImageID: img.ID,
			SizePx:  size,
			Format:  "webp",
			Path:    variantPath,
			Width:   rb.Dx(),
			Height:  rb.Dy(),
			Bytes:   int64(len(webpBytes)),
		}
		if err := s.imageRepo.UpsertVariant(ctx, variant); err != nil {
			continue
		}
		img.Variants = append(img.Variants, *variant)
	}

	observability.ImagesProcessed.WithLabelValues("processed").Inc()
	return s.buildResult(img), nil
}

// ResolveFile maps a hash plus variant name to the file on disk. variant is
// either "master" or "<size>.webp".
func (s *ImageService) ResolveFile(ctx context.Context, hash, variant string) (string, string, error) {
	if !isValidImageHash(hash) {
		return "", "", models.NewValidationError("identificador de imagem inválido")
	}
	if _, err := s.imageRepo.GetByHash(ctx, hash); err != nil {
		return "", "", err
	}

	if variant == "" || variant == "master" || variant == "master.jpg" {
		return s.masterPath(hash), "image/jpeg", nil
	}

	var size int
	if _, err := fmt.Sscanf(variant, "%d.webp", &size); err != nil {
		return "", "", models.NewValidationError("variante de imagem desconhecida")
	}
	path := s.variantPath(hash, size, "webp")
	if _, err := os.Stat(path); err != nil {
		return "", "", models.NewNotFoundError("Image variant", variant)
	}
	return path, "image/webp", nil
}

// GetImage returns the metadata record for a stored image.
func (s *ImageService) GetImage(ctx context.Context, hash string) (*models.Image, error) {
	if !isValidImageHash(hash) {
		return nil, models.NewValidationError("identificador de imagem inválido")
	}
	return s.imageRepo.GetByHashWithVariants(ctx, hash)
}

func (s *ImageService) buildResult(img *models.Image) *UploadResult {
	res := &UploadResult{
		Image: img,
		URL:   BuildMasterImageURL(img.Hash),
	}
	for _, v := range img.Variants {
		res.Variants = append(res.Variants, BuildVariantURL(img.Hash, v.SizePx, v.Format))
	}
	return res
}

func (s *ImageService) masterPath(hash string) string {
	return filepath.Join(s.uploadDir, "i", hash, "master.jpg")
}

func (s *ImageService) variantPath(hash string, size int, format string) string {
	return filepath.Join(s.uploadDir, "i", hash, fmt.Sprintf("%d.%s", size, format))
}

// BuildMasterImageURL returns the public URL of an image's master rendition.
func BuildMasterImageURL(hash string) string {
	return fmt.Sprintf("/media/i/%s/master.jpg", hash)
}

// BuildVariantURL returns the public URL of one re-encoded rendition.
func BuildVariantURL(hash string, size int, format string) string {
	return fmt.Sprintf("/media/i/%s/%d.%s", hash, size, format)
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
}

func isMatchingContentType(provided, detected string) bool {
	p := normalizeContentType(provided)
	d := normalizeContentType(detected)
	if p == d {
		return true
	}
	return (p == "image/jpg" && d == "image/jpeg") || (p == "image/jpeg" && d == "image/jpg")
}

func hashImageBytes(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func isValidImageHash(v string) bool {
	if len(v) != 64 {
		return false
	}
	for _, r := range v {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

func writeBytesToFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func cleanupImageFiles(paths []string) {
	for _, p := range paths {
		_ = os.Remove(p)
	}
}
