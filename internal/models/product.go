// internal/models/product.go
package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/lib/pq"
)

// TechnicalSpec is one labelled row of a product's spec sheet. The list is
// ordered, so it is stored as a JSONB array rather than a map.
type TechnicalSpec struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type TechnicalSpecs []TechnicalSpec

func (t TechnicalSpecs) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

func (t *TechnicalSpecs) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, t)
}

type Product struct {
	BaseModel
	Slug           string         `json:"slug" gorm:"size:255;index"`
	Title          string         `json:"title" gorm:"size:255;not null"`
	Description    string         `json:"description" gorm:"type:text"`
	Category       string         `json:"category" gorm:"size:100;index"`
	PriceRange     string         `json:"price_range" gorm:"size:100;not null"`
	Features       pq.StringArray `json:"features" gorm:"type:text[]"`
	Icon           string         `json:"icon" gorm:"size:50"`
	Rating         float64        `json:"rating" gorm:"type:decimal(3,2);default:0"`
	Image          string         `json:"image" gorm:"size:500"`
	VendorName     string         `json:"vendor_name" gorm:"size:150"`
	TechnicalSpecs TechnicalSpecs `json:"technical_specs" gorm:"type:jsonb"`
}

type Category struct {
	BaseModel
	Name string `json:"name" gorm:"size:100;not null"`
}
