package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Topic is a release stream of a product (e.g. a major version).
type Topic struct {
	BaseModel
	Name      string            `json:"name" gorm:"uniqueIndex:idx_topics_product_name;not null;size:255"`
	ProductID uuid.UUID         `json:"product_id" gorm:"type:uuid;uniqueIndex:idx_topics_product_name;not null"`
	Data      datatypes.JSONMap `json:"data"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for Topic
func (Topic) TableName() string {
	return "topics"
}
