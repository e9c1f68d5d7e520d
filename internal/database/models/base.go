package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel provides the common columns of every resource: a UUID primary key,
// timestamps, the optimistic-concurrency token and the lifecycle state.
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Etag      string    `json:"etag" gorm:"size:40;not null"`
	State     State     `json:"state" gorm:"type:varchar(20);not null;default:'active';index"`
}

// BeforeCreate sets the UUID and the initial state if not already set
func (base *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	if base.State == "" {
		base.State = StateActive
	}
	return nil
}

// GetBase exposes the embedded base columns to generic code.
func (base *BaseModel) GetBase() *BaseModel {
	return base
}

// Resource is implemented by every model embedding BaseModel.
type Resource interface {
	GetBase() *BaseModel
}
