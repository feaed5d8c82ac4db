package service

import (
	"context"
	"testing"

	"find/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_CreateProduct(t *testing.T) {
	t.Parallel()

	t.Run("price must be positive", func(t *testing.T) {
		t.Parallel()
		svc := NewProductService(noopProductRepo(), noopUserRepo())
		_, err := svc.CreateProduct(context.Background(), CreateProductInput{
			UserID:      1,
			Title:       "Bicicleta",
			Description: "Pouco usada",
			Location:    "Aveiro",
			Publisher:   "Rui",
			Price:       0,
		})
		assertValidationError(t, err)
	})

	t.Run("success with category", func(t *testing.T) {
		t.Parallel()
		repo := noopProductRepo()
		var created *models.Product
		repo.createFn = func(_ context.Context, p *models.Product) error {
			p.ID = 4
			created = p
			return nil
		}
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.Product, error) {
			return created, nil
		}
		svc := NewProductService(repo, noopUserRepo())
		product, err := svc.CreateProduct(context.Background(), CreateProductInput{
			UserID:      1,
			Title:       "Bicicleta",
			Description: "Pouco usada",
			Location:    "Aveiro",
			Publisher:   "Rui",
			Price:       80,
			Category:    "desporto",
		})
		require.NoError(t, err)
		assert.Equal(t, 80.0, product.Price)
		assert.Equal(t, "desporto", product.Category)
		assert.True(t, product.IsPublic)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	t.Parallel()

	existing := func() *models.Product {
		return &models.Product{
			ID:          4,
			UserID:      1,
			Title:       "Bicicleta",
			Description: "Pouco usada",
			Location:    "Aveiro",
			Publisher:   "Rui",
			Price:       80,
		}
	}

	t.Run("requires the full set of core fields, like create", func(t *testing.T) {
		t.Parallel()
		repo := noopProductRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.Product, error) {
			return existing(), nil
		}
		repo.updateFn = func(_ context.Context, _ *models.Product) error {
			t.Fatal("update must not run when validation fails")
			return nil
		}
		svc := NewProductService(repo, noopUserRepo())
		newPrice := 60.0
		_, err := svc.UpdateProduct(context.Background(), UpdateProductInput{
			UserID:    1,
			ProductID: 4,
			Price:     &newPrice,
		})
		assertValidationError(t, err)
	})

	t.Run("price update must stay positive", func(t *testing.T) {
		t.Parallel()
		repo := noopProductRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.Product, error) {
			return existing(), nil
		}
		svc := NewProductService(repo, noopUserRepo())
		bad := -1.0
		_, err := svc.UpdateProduct(context.Background(), UpdateProductInput{
			UserID:      1,
			ProductID:   4,
			Title:       "Bicicleta",
			Description: "Pouco usada",
			Location:    "Aveiro",
			Publisher:   "Rui",
			Price:       &bad,
		})
		assertValidationError(t, err)
	})

	t.Run("omitted category and visibility stay as stored", func(t *testing.T) {
		t.Parallel()
		repo := noopProductRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.Product, error) {
			p := existing()
			p.Category = "desporto"
			p.IsPublic = true
			return p, nil
		}
		svc := NewProductService(repo, noopUserRepo())
		newPrice := 60.0
		product, err := svc.UpdateProduct(context.Background(), UpdateProductInput{
			UserID:      1,
			ProductID:   4,
			Title:       "Bicicleta de estrada",
			Description: "Pouco usada",
			Location:    "Aveiro",
			Publisher:   "Rui",
			Price:       &newPrice,
		})
		require.NoError(t, err)
		assert.Equal(t, 60.0, product.Price)
		assert.Equal(t, "Bicicleta de estrada", product.Title)
		assert.Equal(t, "desporto", product.Category)
		assert.True(t, product.IsPublic)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		t.Parallel()
		repo := noopProductRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.Product, error) {
			return existing(), nil
		}
		svc := NewProductService(repo, noopUserRepo())
		_, err := svc.UpdateProduct(context.Background(), UpdateProductInput{
			UserID:    2,
			ProductID: 4,
			Title:     "Roubada",
		})
		assertForbiddenError(t, err)
	})
}

func TestProductService_DeleteProduct(t *testing.T) {
	t.Parallel()

	t.Run("owner deletes", func(t *testing.T) {
		t.Parallel()
		repo := noopProductRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Product, error) {
			return &models.Product{ID: id, UserID: 1}, nil
		}
		var deleted uint
		repo.deleteFn = func(_ context.Context, id uint) error {
			deleted = id
			return nil
		}
		svc := NewProductService(repo, noopUserRepo())
		require.NoError(t, svc.DeleteProduct(context.Background(), 1, 4))
		assert.Equal(t, uint(4), deleted)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		t.Parallel()
		repo := noopProductRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Product, error) {
			return &models.Product{ID: id, UserID: 1}, nil
		}
		svc := NewProductService(repo, noopUserRepo())
		err := svc.DeleteProduct(context.Background(), 2, 4)
		assertForbiddenError(t, err)
	})
}

func TestProductService_ListProducts_ContactEnrichment(t *testing.T) {
	t.Parallel()

	repo := noopProductRepo()
	repo.listPublicFn = func(_ context.Context, _ string, _, _ int) ([]*models.Product, error) {
		return []*models.Product{
			{ID: 1, UserID: 7, Title: "Bicicleta"},
			{ID: 2, UserID: 7, Title: "Cadeira"},
		}, nil
	}
	userRepo := noopUserRepo()
	var lookups int
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		lookups++
		return &models.User{ID: id, Email: "rui@example.com", Phone: "933444555"}, nil
	}

	svc := NewProductService(repo, userRepo)
	products, err := svc.ListProducts(context.Background(), ListProductsInput{Limit: 20})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "933444555", products[0].Contact)
	assert.Equal(t, "rui@example.com", products[1].ContactEmail)
	assert.Equal(t, 1, lookups, "one lookup per distinct owner")
}
