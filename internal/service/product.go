package service

import (
	"context"

	"dci-control-server/internal/authz"
	"dci-control-server/internal/database/models"
	apperrors "dci-control-server/internal/errors"
	"dci-control-server/internal/metrics"
	"dci-control-server/internal/repository"
	"dci-control-server/internal/schema"

	"github.com/google/uuid"
)

// ProductService serves products and the teams granted access to them.
type ProductService struct {
	*Resource[models.Product]
}

// NewProductService creates the product service.
func NewProductService(repos *repository.Repositories, m *metrics.Metrics) *ProductService {
	return &ProductService{Resource: NewResource(models.KindProduct, repos, m, productHooks())}
}

func productHooks() Hooks[models.Product] {
	return Hooks[models.Product]{
		Store: func(r *repository.Repositories) *repository.Store[models.Product] { return r.Products },
		Build: func(caller *authz.Caller, p schema.Payload) (*models.Product, error) {
			product := &models.Product{
				Name:        p.String("name"),
				Label:       p.String("label"),
				Description: p.String("description"),
			}
			product.State = models.State(p.String("state"))

			// Products are owned by the creator's team unless one is given.
			owner := caller.TeamID
			if p.Has("team_id") {
				owner = p.UUID("team_id")
			}
			product.TeamID = &owner
			return product, nil
		},
		Target: productTarget,
		Embeds: map[string]string{
			"topics": "Topics",
			"teams":  "Teams",
			"team":   "Team",
		},
		Filters: map[string]FilterType{
			"name":    FilterString,
			"label":   FilterString,
			"state":   FilterString,
			"team_id": FilterUUID,
		},
		Sorts: []string{"name", "label"},
	}
}

// ListTeams returns the teams granted access to the product.
func (s *ProductService) ListTeams(ctx context.Context, caller *authz.Caller, productID uuid.UUID) ([]models.Team, error) {
	if err := s.authorizeAssociation(ctx, caller, productID); err != nil {
		return nil, err
	}
	return s.repos.ProductTeams.ListTeams(ctx, productID)
}

// AddTeam grants the team named in raw access to the product.
func (s *ProductService) AddTeam(ctx context.Context, caller *authz.Caller, productID uuid.UUID, raw map[string]interface{}) (*models.ProductTeam, error) {
	p, err := schema.Validate(models.KindProductTeam, schema.Create, raw)
	if err != nil {
		return nil, s.reject(ctx, StageValidate, err)
	}
	if err := s.authorizeAssociation(ctx, caller, productID); err != nil {
		return nil, err
	}

	teamID := p.UUID("team_id")
	if _, err := s.repos.Teams.Get(ctx, teamID); err != nil {
		if apperrors.IsNotFound(err) {
			err = apperrors.FieldErrors{"team_id": "not an existing team"}
		}
		return nil, s.reject(ctx, StageValidate, err)
	}

	if err := s.repos.ProductTeams.Add(ctx, productID, teamID); err != nil {
		return nil, s.reject(ctx, StageCommit, err)
	}
	s.metrics.Committed(string(models.KindProductTeam), string(authz.OpCreate))
	return &models.ProductTeam{ProductID: productID, TeamID: teamID}, nil
}

// RemoveTeam revokes the access of a team to the product. Neither side is deleted.
func (s *ProductService) RemoveTeam(ctx context.Context, caller *authz.Caller, productID, teamID uuid.UUID) error {
	if err := s.authorizeAssociation(ctx, caller, productID); err != nil {
		return err
	}
	if err := s.repos.ProductTeams.Remove(ctx, productID, teamID); err != nil {
		return s.reject(ctx, StageCommit, err)
	}
	s.metrics.Committed(string(models.KindProductTeam), string(authz.OpDelete))
	return nil
}

func (s *ProductService) authorizeAssociation(ctx context.Context, caller *authz.Caller, productID uuid.UUID) error {
	product, err := s.repos.Products.Get(ctx, productID)
	if err != nil {
		return s.reject(ctx, StageLoad, err)
	}
	return s.authorize(ctx, caller, authz.OpAssociate, product)
}
