package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/internal/app/repository"
	"github.com/appessoa/PetGo/pkg/logger"
	"github.com/appessoa/PetGo/pkg/redis"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

const catalogCacheTTL = 5 * time.Minute

// ProductInput carries the writable product fields.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	Species     string
}

type ProductService interface {
	Create(input ProductInput) (*model.Product, error)
	GetByID(id uint) (*model.Product, error)
	ListCatalog(ctx context.Context) ([]model.Product, error)
	ListAll() ([]model.Product, error)
	Update(id uint, input ProductInput) (*model.Product, error)
	SetActive(id uint, active bool) (*model.Product, error)
	Delete(id uint) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) Create(input ProductInput) (*model.Product, error) {
	product := &model.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    input.Category,
		Species:     input.Species,
		IsActive:    true,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	s.invalidateCatalog()
	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return product, nil
}

func (s *productService) GetByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// ListCatalog returns the storefront listing, served from the Redis cache
// when available. The cache is best-effort: any cache failure falls through
// to the database.
func (s *productService) ListCatalog(ctx context.Context) ([]model.Product, error) {
	if payload, ok := redis.GetCatalog(ctx); ok {
		var products []model.Product
		if err := json.Unmarshal(payload, &products); err == nil {
			logger.Debug("Catalog served from cache", map[string]interface{}{
				"count": len(products),
			})
			return products, nil
		}
		logger.Warn("Discarding unreadable catalog cache entry", nil)
	}

	products, err := s.productRepo.FindActive()
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(products); err == nil {
		redis.SetCatalog(ctx, payload, catalogCacheTTL)
	}
	return products, nil
}

func (s *productService) ListAll() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *productService) Update(id uint, input ProductInput) (*model.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	product.Category = input.Category
	product.Species = input.Species

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	s.invalidateCatalog()
	logger.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})
	return product, nil
}

func (s *productService) SetActive(id uint, active bool) (*model.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	product.IsActive = active
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	s.invalidateCatalog()
	logger.Info("Product activation changed", map[string]interface{}{
		"product_id": product.ID,
		"is_active":  active,
	})
	return product, nil
}

func (s *productService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCatalog()
	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) invalidateCatalog() {
	redis.InvalidateCatalog(context.Background())
}
