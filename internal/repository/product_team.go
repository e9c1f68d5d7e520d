package repository

import (
	"context"

	"dci-control-server/internal/database/models"
	apperrors "dci-control-server/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductTeamRepository handles the product_teams association table
type ProductTeamRepository struct {
	db *gorm.DB
}

// NewProductTeamRepository creates a new product-team association repository
func NewProductTeamRepository(db *gorm.DB) *ProductTeamRepository {
	return &ProductTeamRepository{db: db}
}

// Add grants teamID visibility on productID. A repeated grant is an AlreadyExists error.
func (r *ProductTeamRepository) Add(ctx context.Context, productID, teamID uuid.UUID) error {
	row := &models.ProductTeam{ProductID: productID, TeamID: teamID}
	err := translate(r.db.WithContext(ctx).Create(row).Error, string(models.KindProductTeam))
	if apperrors.IsAlreadyExists(err) {
		return apperrors.ErrProductTeamExists
	}
	return err
}

// Remove revokes the grant of teamID on productID.
func (r *ProductTeamRepository) Remove(ctx context.Context, productID, teamID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("product_id = ? AND team_id = ?", productID, teamID).
		Delete(&models.ProductTeam{})
	if res.Error != nil {
		return translate(res.Error, string(models.KindProductTeam))
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrProductTeamNotFound
	}
	return nil
}

// ListTeams returns the non-archived teams granted on productID.
func (r *ProductTeamRepository) ListTeams(ctx context.Context, productID uuid.UUID) ([]models.Team, error) {
	teams := make([]models.Team, 0)
	err := r.db.WithContext(ctx).
		Joins("JOIN product_teams ON product_teams.team_id = teams.id").
		Where("product_teams.product_id = ? AND teams.state <> ?", productID, models.StateArchived).
		Order("teams.name").
		Find(&teams).Error
	if err != nil {
		return nil, translate(err, string(models.KindProductTeam))
	}
	return teams, nil
}

// TeamIDs returns the ids of every team granted on productID.
func (r *ProductTeamRepository) TeamIDs(ctx context.Context, productID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.ProductTeam{}).
		Where("product_id = ?", productID).
		Pluck("team_id", &ids).Error
	if err != nil {
		return nil, translate(err, string(models.KindProductTeam))
	}
	return ids, nil
}
