package services_test

import (
	"fmt"
	"testing"

	"products/internal/models"
	"products/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Query(filter models.ListFilter) ([]models.Product, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProductEvent(payload map[string]interface{}) error {
	args := m.Called(payload)
	return args.Error(0)
}

func testProduct(id uint, name string) models.Product {
	return models.Product{
		ID:        id,
		Name:      name,
		Price:     decimal.RequireFromString("10.00"),
		Available: true,
		Category:  models.CategoryTools,
	}
}

func TestProductService_ListProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		testProduct(1, "Product A"),
		testProduct(2, "Product B"),
	}

	mockRepo.On("Query", models.ListFilter{}).Return(expectedProducts, nil).Once()

	products, err := service.ListProducts(models.ListFilter{})

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ListProductsWithFilter(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	name := "Product A"
	filter := models.ListFilter{Name: &name}
	expected := []models.Product{testProduct(1, "Product A")}

	mockRepo.On("Query", filter).Return(expected, nil).Once()

	products, err := service.ListProducts(filter)

	assert.NoError(t, err)
	assert.Equal(t, expected, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProduct := testProduct(1, "Product A")

	// Test successful retrieval
	mockRepo.On("GetByID", uint(1)).Return(&expectedProduct, nil).Once()
	product, err := service.GetProductByID(1)
	assert.NoError(t, err)
	assert.Equal(t, &expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("GetByID", uint(99)).Return(nil, models.NewNotFoundError(99)).Once()
	product, err = service.GetProductByID(99)
	assert.Error(t, err)
	assert.Nil(t, product)
	assert.True(t, models.IsNotFoundError(err))
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	newProduct := testProduct(0, "New Product")

	// Test successful creation
	mockRepo.On("Create", &newProduct).Return(nil).Once()
	err := service.CreateProduct(&newProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", &newProduct).Return(fmt.Errorf("database error")).Once()
	err = service.CreateProduct(&newProduct)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProductPublishesEvent(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)

	newProduct := testProduct(3, "Event Product")

	mockRepo.On("Create", &newProduct).Return(nil).Once()
	mockPublisher.On("PublishProductEvent", mock.MatchedBy(func(payload map[string]interface{}) bool {
		return payload["event"] == services.EventProductCreated && payload["event_id"] != ""
	})).Return(nil).Once()

	err := service.CreateProduct(&newProduct)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestProductService_CreateProductIgnoresPublishFailure(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)

	newProduct := testProduct(4, "Flaky Broker Product")

	mockRepo.On("Create", &newProduct).Return(nil).Once()
	mockPublisher.On("PublishProductEvent", mock.Anything).Return(fmt.Errorf("broker down")).Once()

	// A broker failure must never fail the request.
	err := service.CreateProduct(&newProduct)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	updatedProduct := testProduct(1, "Product A Updated")

	// Test successful update
	mockRepo.On("Update", &updatedProduct).Return(nil).Once()
	err := service.UpdateProduct(&updatedProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test update failure (product not found in repo)
	missing := testProduct(99, "NonExistent")
	mockRepo.On("Update", &missing).Return(models.NewNotFoundError(99)).Once()
	err = service.UpdateProduct(&missing)
	assert.Error(t, err)
	assert.True(t, models.IsNotFoundError(err))
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProductEmptyID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	unsaved := testProduct(0, "Never persisted")
	mockRepo.On("Update", &unsaved).Return(models.ErrEmptyUpdateID).Once()

	err := service.UpdateProduct(&unsaved)

	assert.ErrorIs(t, err, models.ErrEmptyUpdateID)
	assert.False(t, models.IsNotFoundError(err))
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)

	// Test successful deletion
	mockRepo.On("Delete", uint(1)).Return(nil).Once()
	mockPublisher.On("PublishProductEvent", mock.MatchedBy(func(payload map[string]interface{}) bool {
		return payload["event"] == services.EventProductDeleted && payload["product_id"] == 1
	})).Return(nil).Once()
	err := service.DeleteProduct(1)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)

	// Test deletion failure (product not found): no event published
	mockRepo.On("Delete", uint(99)).Return(models.NewNotFoundError(99)).Once()
	err = service.DeleteProduct(99)
	assert.Error(t, err)
	assert.True(t, models.IsNotFoundError(err))
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}
