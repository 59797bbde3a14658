package service

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"storefront-service/internal/auth"
	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/storage"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCategory is assigned to products created without one.
const DefaultCategory = "Other"

// StockCache is the advisory stock read model the stock cache worker
// keeps warm. Stock events land here before catalog reads hit Postgres
// again, so reads consult it first.
type StockCache interface {
	GetStock(ctx context.Context, productID string) (stock int, found bool, err error)
}

// overlayCachedStock replaces a product's stock with the cached count
// when one exists. A miss or a cache error keeps the store's count.
func overlayCachedStock(ctx context.Context, cache StockCache, p *models.Product) {
	if cache == nil {
		return
	}
	if stock, found, err := cache.GetStock(ctx, p.ID); err == nil && found {
		p.Stock = stock
	}
}

// ImageUpload carries a multipart file into object storage.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// CreateProductInput is the admin product-creation form.
type CreateProductInput struct {
	Name        string
	Description string
	Category    string
	Price       float64
	Stock       int
	Image       *ImageUpload
}

// CatalogService handles the product catalog. Mutations take an
// auth.Session.
type CatalogService struct {
	store          *store.Store
	stockCache     StockCache
	uploader       *storage.Uploader
	eventPublisher *broker.EventPublisher
	bucket         string
	logger         *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(st *store.Store, stockCache StockCache, uploader *storage.Uploader, eventPublisher *broker.EventPublisher, bucket string) *CatalogService {
	return &CatalogService{
		store:          st,
		stockCache:     stockCache,
		uploader:       uploader,
		eventPublisher: eventPublisher,
		bucket:         bucket,
		logger:         util.GetLogger(),
	}
}

// ListProducts returns the catalog, newest first, with cached stock
// counts overlaid
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		overlayCachedStock(ctx, s.stockCache, &products[i])
	}
	return products, nil
}

// GetProduct returns one product with its cached stock count overlaid
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	overlayCachedStock(ctx, s.stockCache, product)
	return product, nil
}

// CreateProduct validates the form, uploads the optional image and
// inserts the product.
func (s *CatalogService) CreateProduct(ctx context.Context, _ auth.Session, in CreateProductInput) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateProduct")
	defer span.End()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if math.IsNaN(in.Price) || in.Price < 0 {
		return nil, fmt.Errorf("%w: price must be a non-negative number", ErrValidation)
	}

	stock := in.Stock
	if stock < 0 {
		stock = 0
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = DefaultCategory
	}

	var imageURL *string
	if in.Image != nil && in.Image.Size > 0 {
		url, err := s.uploader.Upload(ctx, s.bucket, in.Image.Filename, in.Image.Reader, in.Image.Size, in.Image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("image upload failed: %w", err)
		}
		imageURL = &url
	}

	var description *string
	if d := strings.TrimSpace(in.Description); d != "" {
		description = &d
	}

	product := &models.Product{
		Name:        name,
		Description: description,
		Price:       in.Price,
		ImageURL:    imageURL,
		Category:    category,
		Stock:       stock,
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name))

	s.publishStockChanged(ctx, product.ID, product.Stock)
	return product, nil
}

// UpdateStock sets a product's stock to an absolute value, floored at
// zero.
func (s *CatalogService) UpdateStock(ctx context.Context, _ auth.Session, id string, stock int) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.UpdateStock")
	defer span.End()

	if stock < 0 {
		stock = 0
	}

	if err := s.store.UpdateProductStock(ctx, id, stock); err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}

	s.logger.Info("Product stock updated",
		zap.String("product_id", id),
		zap.Int("stock", stock))

	s.publishStockChanged(ctx, id, stock)
	return nil
}

// DeleteProduct removes a product from the catalog
func (s *CatalogService) DeleteProduct(ctx context.Context, _ auth.Session, id string) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.logger.Info("Product deleted", zap.String("product_id", id))
	return nil
}

func (s *CatalogService) publishStockChanged(ctx context.Context, productID string, stock int) {
	event := &models.StockChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeStockChanged,
			Timestamp: time.Now(),
		},
		ProductID: productID,
		Stock:     stock,
	}
	if err := s.eventPublisher.PublishStockChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish StockChanged event",
			zap.String("product_id", productID),
			zap.Error(err))
	}
}
