package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Description string          `json:"description" gorm:"type:varchar(250)" validate:"omitempty,max=250"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Available   bool            `json:"available" gorm:"not null"`
	Category    Category        `json:"category" gorm:"type:varchar(63);not null"`
}

// Serialize converts a Product into a JSON-compatible mapping. The
// price is rendered as a string so decimal precision survives the
// round trip, and the category is rendered by name.
func (p *Product) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":          int(p.ID),
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.String(),
		"available":   p.Available,
		"category":    p.Category.String(),
	}
}

// Deserialize populates a Product from a JSON-compatible mapping. The
// ID is never read from the payload; persistence assigns it. The
// available field must carry a true JSON boolean: string tokens such
// as "yes" or "true" are rejected here even though the list filter
// accepts them, matching the asymmetry of the observed behavior.
func (p *Product) Deserialize(data map[string]interface{}) error {
	if data == nil {
		return NewDataValidationError("", "Invalid product: body of request contained bad or no data")
	}

	name, err := requireString(data, "name")
	if err != nil {
		return err
	}
	p.Name = name

	if desc, ok := data["description"]; ok && desc != nil {
		s, ok := desc.(string)
		if !ok {
			return NewDataValidationError("description", fmt.Sprintf("Invalid type for string [description]: %T", desc))
		}
		p.Description = s
	} else {
		p.Description = ""
	}

	rawPrice, ok := data["price"]
	if !ok {
		return NewDataValidationError("price", "Invalid product: missing price")
	}
	price, err := parsePrice(rawPrice)
	if err != nil {
		return err
	}
	if price.IsNegative() {
		return NewDataValidationError("price", "Invalid price: must not be negative")
	}
	p.Price = price

	rawAvailable, ok := data["available"]
	if !ok {
		return NewDataValidationError("available", "Invalid product: missing available")
	}
	available, ok := rawAvailable.(bool)
	if !ok {
		return NewDataValidationError("available", fmt.Sprintf("Invalid type for boolean [available]: %T", rawAvailable))
	}
	p.Available = available

	rawCategory, ok := data["category"]
	if !ok {
		return NewDataValidationError("category", "Invalid product: missing category")
	}
	categoryName, ok := rawCategory.(string)
	if !ok {
		return NewDataValidationError("category", fmt.Sprintf("Invalid type for string [category]: %T", rawCategory))
	}
	category, err := ParseCategory(categoryName)
	if err != nil {
		return err
	}
	p.Category = category

	return nil
}

// requireString fetches a mandatory string field from the mapping.
func requireString(data map[string]interface{}, key string) (string, error) {
	raw, ok := data[key]
	if !ok {
		return "", NewDataValidationError(key, "Invalid product: missing "+key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", NewDataValidationError(key, fmt.Sprintf("Invalid type for string [%s]: %T", key, raw))
	}
	if s == "" {
		return "", NewDataValidationError(key, "Invalid product: missing "+key)
	}
	return s, nil
}

// parsePrice accepts a JSON number or a numeric string. Anything that
// cannot be read as a decimal fails validation.
func parsePrice(raw interface{}) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case json.Number:
		price, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, NewDataValidationError("price", fmt.Sprintf("Invalid value for numeric [price]: %s", v))
		}
		return price, nil
	case string:
		price, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, NewDataValidationError("price", fmt.Sprintf("Invalid value for numeric [price]: %s", v))
		}
		return price, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	default:
		return decimal.Zero, NewDataValidationError("price", fmt.Sprintf("Invalid type for numeric [price]: %T", raw))
	}
}
