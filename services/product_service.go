package services

import (
	"context"
	"errors"

	"intershop/cache"
	"intershop/models"
	"intershop/repositories"
)

// Sort modes for product listings.
const (
	SortNo    = "NO"
	SortAlpha = "ALPHA"
	SortPrice = "PRICE"
)

type ProductService struct {
	products ProductStore
	cache    Cache
}

func NewProductService(products ProductStore, c Cache) *ProductService {
	return &ProductService{products: products, cache: c}
}

// FindProducts serves one listing page through the cache. The cache key
// folds in search, sort, and paging so different pages never collide.
func (s *ProductService) FindProducts(ctx context.Context, search, sort string, pageSize, pageNumber int) (*models.ProductPage, error) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if sort != SortAlpha && sort != SortPrice {
		sort = SortNo
	}
	offset := (pageNumber - 1) * pageSize

	key := cache.ProductListKey(search, sort, pageSize, offset)

	var page models.ProductPage
	if s.cache.Get(ctx, key, &page) {
		return &page, nil
	}

	items, err := s.products.FindProducts(ctx, search, sort, pageSize, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.products.CountProducts(ctx, search)
	if err != nil {
		return nil, err
	}

	page = models.ProductPage{Items: items, Total: total}
	s.cache.Put(ctx, key, &page)
	return &page, nil
}

// GetProductByID serves a single product through the cache.
func (s *ProductService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	key := cache.ProductKey(id)

	var cached models.Product
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &ProductNotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}

	s.cache.Put(ctx, key, product)
	return product, nil
}

// CreateProduct persists a new catalog entry and invalidates the listing
// namespace so no page keeps serving the pre-mutation state.
func (s *ProductService) CreateProduct(ctx context.Context, req models.CreateProductRequest, imgPath string) (*models.Product, error) {
	product := &models.Product{
		Title:       req.Title,
		Description: req.Description,
		ImgPath:     imgPath,
		Price:       req.Price,
		Count:       req.Count,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.cache.EvictNamespace(ctx, cache.ProductListPrefix)
	return product, nil
}
