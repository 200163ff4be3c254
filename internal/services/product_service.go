package services

import (
	"log"

	"products/internal/models"
	"products/internal/repositories"

	"github.com/google/uuid"
)

// Event names published on product lifecycle changes.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher publishes product lifecycle events to a message
// broker. A nil publisher disables publishing.
type EventPublisher interface {
	PublishProductEvent(payload map[string]interface{}) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a new ProductService. The publisher may be
// nil, in which case lifecycle events are skipped.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// ListProducts retrieves the products matching the filter. An empty
// filter matches every stored product.
func (s *ProductService) ListProducts(filter models.ListFilter) ([]models.Product, error) {
	return s.repo.Query(filter)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct persists a new product. The repository assigns the ID.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.publishEvent(EventProductCreated, map[string]interface{}{
		"product": product.Serialize(),
	})
	return nil
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if err := s.repo.Update(product); err != nil {
		return err
	}
	s.publishEvent(EventProductUpdated, map[string]interface{}{
		"product": product.Serialize(),
	})
	return nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publishEvent(EventProductDeleted, map[string]interface{}{
		"product_id": int(id),
	})
	return nil
}

// publishEvent sends a lifecycle event to the broker. Publish failures
// are logged and never fail the originating request.
func (s *ProductService) publishEvent(event string, payload map[string]interface{}) {
	if s.publisher == nil {
		log.Println("Event publisher is not initialized. Skipping message publication.")
		return
	}

	payload["event_id"] = uuid.New().String()
	payload["event"] = event

	if err := s.publisher.PublishProductEvent(payload); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", event, err)
	}
}
