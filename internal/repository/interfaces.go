package repository

import (
	"context"

	"dci-control-server/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResourceStore defines the storage operations shared by every resource table
type ResourceStore[T any] interface {
	Kind() models.Kind
	Create(ctx context.Context, item *T) error
	Get(ctx context.Context, id uuid.UUID, embeds ...string) (*T, error)
	FindOne(ctx context.Context, filters map[string]interface{}) (*T, error)
	List(ctx context.Context, q ListQuery) ([]T, int64, error)
	Update(ctx context.Context, id uuid.UUID, expected string, columns map[string]interface{}) (string, error)
	Archive(ctx context.Context, id uuid.UUID, expected string) error
	Touch(ctx context.Context, id uuid.UUID, columns map[string]interface{}) (string, error)
}

// ProductTeamRepositoryInterface defines the interface for product-team association operations
type ProductTeamRepositoryInterface interface {
	Add(ctx context.Context, productID, teamID uuid.UUID) error
	Remove(ctx context.Context, productID, teamID uuid.UUID) error
	ListTeams(ctx context.Context, productID uuid.UUID) ([]models.Team, error)
	TeamIDs(ctx context.Context, productID uuid.UUID) ([]uuid.UUID, error)
}

var (
	_ ResourceStore[models.Product]   = (*Store[models.Product])(nil)
	_ ProductTeamRepositoryInterface = (*ProductTeamRepository)(nil)
)

// Repositories bundles the stores of every table so that services can run
// several writes in one transaction.
type Repositories struct {
	db *gorm.DB

	Teams          *Store[models.Team]
	Users          *Store[models.User]
	Products       *Store[models.Product]
	ProductTeams   *ProductTeamRepository
	Topics         *Store[models.Topic]
	ComponentTypes *Store[models.ComponentType]
	Components     *Store[models.Component]
	Tests          *Store[models.Test]
	JobDefinitions *Store[models.JobDefinition]
	RemoteCIs      *Store[models.RemoteCI]
	Jobs           *Store[models.Job]
	JobStates      *Store[models.JobState]
}

// NewRepositories creates the stores of every table on db
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:             db,
		Teams:          NewStore[models.Team](db, models.KindTeam),
		Users:          NewStore[models.User](db, models.KindUser),
		Products:       NewStore[models.Product](db, models.KindProduct),
		ProductTeams:   NewProductTeamRepository(db),
		Topics:         NewStore[models.Topic](db, models.KindTopic),
		ComponentTypes: NewStore[models.ComponentType](db, models.KindComponentType),
		Components:     NewStore[models.Component](db, models.KindComponent),
		Tests:          NewStore[models.Test](db, models.KindTest),
		JobDefinitions: NewStore[models.JobDefinition](db, models.KindJobDefinition),
		RemoteCIs:      NewStore[models.RemoteCI](db, models.KindRemoteCI),
		Jobs:           NewStore[models.Job](db, models.KindJob),
		JobStates:      NewStore[models.JobState](db, models.KindJobState),
	}
}

// Transaction runs fn with repositories bound to a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// Ping checks that the database answers.
func (r *Repositories) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
