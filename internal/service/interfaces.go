package service

import (
	"context"

	"dci-control-server/internal/authz"
	"dci-control-server/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// ResourceServiceInterface defines the operations the HTTP layer runs on one resource kind
type ResourceServiceInterface[T any] interface {
	Kind() models.Kind
	EmbedNames() []string
	List(ctx context.Context, caller *authz.Caller, params ListParams) (*Page[T], error)
	Get(ctx context.Context, caller *authz.Caller, id uuid.UUID, embeds []string) (*T, error)
	Create(ctx context.Context, caller *authz.Caller, raw map[string]interface{}) (*T, error)
	Update(ctx context.Context, caller *authz.Caller, id uuid.UUID, ifMatch string, raw map[string]interface{}) (*T, error)
	Delete(ctx context.Context, caller *authz.Caller, id uuid.UUID, ifMatch string) error
}

// ProductTeamServiceInterface defines the interface for product-team association operations
type ProductTeamServiceInterface interface {
	ListTeams(ctx context.Context, caller *authz.Caller, productID uuid.UUID) ([]models.Team, error)
	AddTeam(ctx context.Context, caller *authz.Caller, productID uuid.UUID, raw map[string]interface{}) (*models.ProductTeam, error)
	RemoveTeam(ctx context.Context, caller *authz.Caller, productID, teamID uuid.UUID) error
}

var (
	_ ResourceServiceInterface[models.Team]    = (*Resource[models.Team])(nil)
	_ ResourceServiceInterface[models.Product] = (*ProductService)(nil)
	_ ProductTeamServiceInterface             = (*ProductService)(nil)
)
