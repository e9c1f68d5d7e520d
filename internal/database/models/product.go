package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a tested product line. TeamID is the owning team; Teams are the
// teams granted visibility through product_teams.
type Product struct {
	BaseModel
	Name        string     `json:"name" gorm:"uniqueIndex;not null;size:255"`
	Label       string     `json:"label" gorm:"uniqueIndex;not null;size:255"`
	Description string     `json:"description" gorm:"type:text"`
	TeamID      *uuid.UUID `json:"team_id" gorm:"type:uuid;index"`

	// Relationships
	Team   *Team   `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	Topics []Topic `json:"topics,omitempty" gorm:"foreignKey:ProductID"`
	Teams  []Team  `json:"teams,omitempty" gorm:"many2many:product_teams"`
}

// TableName returns the table name for Product
func (Product) TableName() string {
	return "products"
}

// ProductTeam is the join row granting a team visibility on a product.
// Rows are created and removed independently of either side.
type ProductTeam struct {
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;primaryKey"`
	TeamID    uuid.UUID `json:"team_id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for ProductTeam
func (ProductTeam) TableName() string {
	return "product_teams"
}
