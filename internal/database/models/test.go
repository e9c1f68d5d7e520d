package models

import (
	"gorm.io/datatypes"
)

// Test is a named test suite referenced by job definitions.
type Test struct {
	BaseModel
	Name string            `json:"name" gorm:"uniqueIndex;not null;size:255"`
	Data datatypes.JSONMap `json:"data"`
}

// TableName returns the table name for Test
func (Test) TableName() string {
	return "tests"
}
