package service

import (
	"context"

	"find/internal/models"
	"find/internal/repository"
)

type ProductService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

type CreateProductInput struct {
	UserID      uint
	Title       string
	Description string
	Price       float64
	Location    string
	Publisher   string
	Category    string
	ImageURL    string
	IsPublic    *bool
}

type UpdateProductInput struct {
	UserID      uint
	ProductID   uint
	Title       string
	Description string
	Price       *float64
	Location    string
	Publisher   string
	Category    string
	ImageURL    string
	IsPublic    *bool
}

type ListProductsInput struct {
	Search string
	Limit  int
	Offset int
}

func NewProductService(productRepo repository.ProductRepository, userRepo repository.UserRepository) *ProductService {
	return &ProductService{productRepo: productRepo, userRepo: userRepo}
}

func (s *ProductService) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if err := validateListingFields(in.Title, in.Description, in.Location, in.Publisher); err != nil {
		return nil, err
	}
	if in.Price <= 0 {
		return nil, models.NewValidationError("o preço deve ser maior que zero")
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	product := &models.Product{
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Location:    in.Location,
		Publisher:   in.Publisher,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		IsPublic:    isPublic,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, product.ID)
}

func (s *ProductService) ListProducts(ctx context.Context, in ListProductsInput) ([]*models.Product, error) {
	products, err := s.productRepo.ListPublic(ctx, in.Search, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	s.enrichContacts(ctx, products)
	return products, nil
}

func (s *ProductService) ListOwnProducts(ctx context.Context, userID uint, limit, offset int) ([]*models.Product, error) {
	products, err := s.productRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	s.enrichContacts(ctx, products)
	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.enrichContact(ctx, product)
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, in UpdateProductInput) (*models.Product, error) {
	product, err := s.authorizeOwner(ctx, in.ProductID, in.UserID)
	if err != nil {
		return nil, err
	}

	// Same required-field contract as Create; category, image and
	// visibility stay partial.
	if err := validateListingFields(in.Title, in.Description, in.Location, in.Publisher); err != nil {
		return nil, err
	}
	if in.Price == nil || *in.Price <= 0 {
		return nil, models.NewValidationError("o preço deve ser maior que zero")
	}

	product.Title = in.Title
	product.Description = in.Description
	product.Price = *in.Price
	product.Location = in.Location
	product.Publisher = in.Publisher
	if in.Category != "" {
		product.Category = in.Category
	}
	if in.ImageURL != "" {
		product.ImageURL = in.ImageURL
	}
	if in.IsPublic != nil {
		product.IsPublic = *in.IsPublic
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.enrichContact(ctx, product)
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, userID, productID uint) error {
	if _, err := s.authorizeOwner(ctx, productID, userID); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, productID)
}

func (s *ProductService) authorizeOwner(ctx context.Context, productID, userID uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.UserID != userID {
		return nil, models.NewForbiddenError("Apenas o autor pode alterar este produto")
	}
	return product, nil
}

func (s *ProductService) enrichContact(ctx context.Context, product *models.Product) {
	owner, err := s.userRepo.GetByID(ctx, product.UserID)
	if err != nil {
		return
	}
	product.Contact = owner.Phone
	product.ContactEmail = owner.Email
}

func (s *ProductService) enrichContacts(ctx context.Context, products []*models.Product) {
	owners := make(map[uint]*models.User, len(products))
	for _, p := range products {
		if _, ok := owners[p.UserID]; !ok {
			owner, err := s.userRepo.GetByID(ctx, p.UserID)
			if err != nil {
				continue
			}
			owners[p.UserID] = owner
		}
	}
	for _, p := range products {
		if owner, ok := owners[p.UserID]; ok {
			p.Contact = owner.Phone
			p.ContactEmail = owner.Email
		}
	}
}
