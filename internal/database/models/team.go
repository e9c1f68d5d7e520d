package models

// Team groups users; products become visible to a team through product-team associations.
type Team struct {
	BaseModel
	Name string `json:"name" gorm:"uniqueIndex;not null;size:255"`
}

// TableName returns the table name for Team
func (Team) TableName() string {
	return "teams"
}
