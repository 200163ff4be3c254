package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"products/internal/models"
	"products/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts retrieves all products, optionally filtered by
// name, category and availability. The filters combine with AND.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	filter, err := models.ParseListFilter(c.Query("name"), c.Query("category"), c.Query("available"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	products, err := h.service.ListProducts(filter)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Could not retrieve products")
	}

	results := make([]map[string]interface{}, 0, len(products))
	for i := range products {
		results = append(results, products[i].Serialize())
	}
	return c.JSON(results)
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, ok := parseProductID(c)
	if !ok {
		return notFoundResponse(c)
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		if models.IsNotFoundError(err) {
			return errorResponse(c, fiber.StatusNotFound, err.Error())
		}
		log.Printf("Error getting product %d: %v", id, err)
		return errorResponse(c, fiber.StatusInternalServerError, "Could not retrieve product")
	}
	return c.JSON(product.Serialize())
}

// HandleCreateProduct creates a new product from the JSON body and
// responds with 201, the serialized product and a Location header.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	if !hasJSONContentType(c) {
		return errorResponse(c, fiber.StatusUnsupportedMediaType, "Content-Type must be application/json")
	}

	data, err := decodeBody(c.Body())
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid product: body of request contained bad or no data")
	}

	var product models.Product
	if err := product.Deserialize(data); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(&product); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, validationMessage(err))
	}

	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Could not create product")
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/products/%d", product.ID))
	return c.Status(fiber.StatusCreated).JSON(product.Serialize())
}

// HandleUpdateProduct updates an existing product. The ID in the path
// wins over any ID in the payload.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	if !hasJSONContentType(c) {
		return errorResponse(c, fiber.StatusUnsupportedMediaType, "Content-Type must be application/json")
	}

	id, ok := parseProductID(c)
	if !ok {
		return notFoundResponse(c)
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		if models.IsNotFoundError(err) {
			return errorResponse(c, fiber.StatusNotFound, err.Error())
		}
		log.Printf("Error getting product %d for update: %v", id, err)
		return errorResponse(c, fiber.StatusInternalServerError, "Could not retrieve product")
	}

	data, err := decodeBody(c.Body())
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid product: body of request contained bad or no data")
	}

	if err := product.Deserialize(data); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(product); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, validationMessage(err))
	}
	product.ID = id

	if err := h.service.UpdateProduct(product); err != nil {
		if models.IsNotFoundError(err) {
			return errorResponse(c, fiber.StatusNotFound, err.Error())
		}
		log.Printf("Error updating product %d: %v", id, err)
		return errorResponse(c, fiber.StatusInternalServerError, "Could not update product")
	}
	return c.JSON(product.Serialize())
}

// HandleDeleteProduct deletes a product by its ID. Deleting an ID that
// is not in the store reports not-found.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := parseProductID(c)
	if !ok {
		return notFoundResponse(c)
	}

	if err := h.service.DeleteProduct(id); err != nil {
		if models.IsNotFoundError(err) {
			return errorResponse(c, fiber.StatusNotFound, err.Error())
		}
		log.Printf("Error deleting product %d: %v", id, err)
		return errorResponse(c, fiber.StatusInternalServerError, "Could not delete product")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseProductID reads the :id path parameter. A non-integer ID can
// never reference a stored product, so callers treat it as not-found.
func parseProductID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// hasJSONContentType reports whether the request declares a JSON body.
func hasJSONContentType(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)
}

// decodeBody decodes a JSON object body into a mapping. Numbers are
// kept as json.Number so decimal prices keep their precision.
func decodeBody(body []byte) (map[string]interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var data map[string]interface{}
	if err := decoder.Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}

// validationMessage flattens validator errors into a single message
// naming the first offending field.
func validationMessage(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		e := validationErrors[0]
		return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return err.Error()
}

// errorResponse writes the standard error body for a status code.
func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  status,
		"error":   statusReason(status),
		"message": message,
	})
}

// notFoundResponse writes the not-found body using the raw path ID.
func notFoundResponse(c *fiber.Ctx) error {
	return errorResponse(c, fiber.StatusNotFound,
		fmt.Sprintf("Product with id '%s' was not found.", c.Params("id")))
}

func statusReason(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "Bad Request"
	case fiber.StatusNotFound:
		return "Not Found"
	case fiber.StatusUnsupportedMediaType:
		return "Unsupported media type"
	default:
		return "Internal Server Error"
	}
}
