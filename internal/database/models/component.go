package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ComponentType classifies components (puddle, git commit, package...).
type ComponentType struct {
	BaseModel
	Name string `json:"name" gorm:"uniqueIndex;not null;size:255"`
}

// TableName returns the table name for ComponentType
func (ComponentType) TableName() string {
	return "componenttypes"
}

// Component is a deliverable under test. Active hides a component from
// listings without touching its history.
type Component struct {
	BaseModel
	Name                 string            `json:"name" gorm:"uniqueIndex:idx_components_type_name;not null;size:255"`
	ComponentTypeID      uuid.UUID         `json:"componenttype_id" gorm:"column:componenttype_id;type:uuid;uniqueIndex:idx_components_type_name;not null"`
	Sha                  string            `json:"sha" gorm:"type:text"`
	Title                string            `json:"title" gorm:"type:text"`
	Message              string            `json:"message" gorm:"type:text"`
	Git                  string            `json:"git" gorm:"type:text"`
	Ref                  string            `json:"ref" gorm:"type:text"`
	CanonicalProjectName string            `json:"canonical_project_name" gorm:"type:text"`
	Data                 datatypes.JSONMap `json:"data"`
	Active               *bool             `json:"active" gorm:"default:true"`

	// Relationships
	ComponentType *ComponentType `json:"componenttype,omitempty" gorm:"foreignKey:ComponentTypeID"`
}

// TableName returns the table name for Component
func (Component) TableName() string {
	return "components"
}
