package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dci-control-server/internal/authz"
	"dci-control-server/internal/database/models"
	apperrors "dci-control-server/internal/errors"
	"dci-control-server/internal/etag"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SortField orders a listing by one column.
type SortField struct {
	Column string
	Desc   bool
}

// ListQuery describes one page of a listing.
type ListQuery struct {
	Scope   authz.Scope
	Filters map[string]interface{}
	Sort    []SortField
	Limit   int
	Offset  int
	// Embeds are association names to preload (e.g. "Topics").
	Embeds []string
	// Archived selects the purge view: archived rows only.
	Archived bool
}

type tabler interface {
	TableName() string
}

// Store is the gorm-backed storage of one resource table. Every write
// assigns a fresh etag; updates and archives are compare-and-swap on it.
type Store[T any] struct {
	db     *gorm.DB
	kind   models.Kind
	table  string
	entity string
}

// NewStore creates a store for the table behind T.
func NewStore[T any](db *gorm.DB, kind models.Kind) *Store[T] {
	var zero T
	table := kind.Plural()
	if t, ok := any(&zero).(tabler); ok {
		table = t.TableName()
	}
	return &Store[T]{db: db, kind: kind, table: table, entity: string(kind)}
}

// Kind returns the resource kind stored here.
func (s *Store[T]) Kind() models.Kind {
	return s.kind
}

// WithDB returns a copy of the store bound to db, typically a transaction.
func (s *Store[T]) WithDB(db *gorm.DB) *Store[T] {
	clone := *s
	clone.db = db
	return &clone
}

func baseOf[T any](item *T) *models.BaseModel {
	return any(item).(models.Resource).GetBase()
}

// Create inserts item with a fresh etag. Unique constraint violations surface
// as AlreadyExists, dangling references as a validation error.
func (s *Store[T]) Create(ctx context.Context, item *T) error {
	base := baseOf(item)
	base.Etag = etag.New()
	if base.State == "" {
		base.State = models.StateActive
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		return s.translate(err)
	}
	return nil
}

// Get returns the non-archived row with id, preloading the given associations.
func (s *Store[T]) Get(ctx context.Context, id uuid.UUID, embeds ...string) (*T, error) {
	var item T
	q := s.preload(s.db.WithContext(ctx), embeds)
	err := q.Where(s.col("id")+" = ? AND "+s.col("state")+" <> ?", id, models.StateArchived).
		First(&item).Error
	if err != nil {
		return nil, s.translate(err)
	}
	return &item, nil
}

// FindOne returns the first non-archived row matching the column filters.
func (s *Store[T]) FindOne(ctx context.Context, filters map[string]interface{}) (*T, error) {
	var item T
	q := s.db.WithContext(ctx).Where(s.col("state")+" <> ?", models.StateArchived)
	for column, value := range filters {
		q = q.Where(s.col(column)+" = ?", value)
	}
	if err := q.First(&item).Error; err != nil {
		return nil, s.translate(err)
	}
	return &item, nil
}

// List returns one page of rows visible through q.Scope, with the total
// count of matching rows ignoring limit and offset.
func (s *Store[T]) List(ctx context.Context, q ListQuery) ([]T, int64, error) {
	var total int64
	if err := s.filtered(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, s.translate(err)
	}

	items := make([]T, 0)
	query := s.preload(s.filtered(ctx, q), q.Embeds)
	for _, sf := range q.Sort {
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Table: s.table, Name: sf.Column},
			Desc:   sf.Desc,
		})
	}
	query = query.Order(clause.OrderByColumn{Column: clause.Column{Table: s.table, Name: "id"}})
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, s.translate(err)
	}
	return items, total, nil
}

// Update applies columns to the row with id if its etag still equals
// expected, and returns the new etag.
func (s *Store[T]) Update(ctx context.Context, id uuid.UUID, expected string, columns map[string]interface{}) (string, error) {
	return s.compareAndSwap(ctx, id, expected, columns)
}

// Archive soft-deletes the row with id if its etag still equals expected.
func (s *Store[T]) Archive(ctx context.Context, id uuid.UUID, expected string) error {
	_, err := s.compareAndSwap(ctx, id, expected, map[string]interface{}{"state": models.StateArchived})
	return err
}

// Touch applies columns to a non-archived row and rotates its etag without
// comparing tokens. It serves derived writes such as a job's status.
func (s *Store[T]) Touch(ctx context.Context, id uuid.UUID, columns map[string]interface{}) (string, error) {
	next := etag.New()
	updates := withEtag(columns, next)

	res := s.db.WithContext(ctx).Model(new(T)).
		Where("id = ? AND state <> ?", id, models.StateArchived).
		Updates(updates)
	if res.Error != nil {
		return "", s.translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return "", apperrors.NewNotFoundError(s.entity)
	}
	return next, nil
}

func (s *Store[T]) compareAndSwap(ctx context.Context, id uuid.UUID, expected string, columns map[string]interface{}) (string, error) {
	next := etag.New()
	updates := withEtag(columns, next)

	res := s.db.WithContext(ctx).Model(new(T)).
		Where("id = ? AND etag = ? AND state <> ?", id, expected, models.StateArchived).
		Updates(updates)
	if res.Error != nil {
		return "", s.translate(res.Error)
	}
	if res.RowsAffected == 1 {
		return next, nil
	}

	// Nothing matched: the row is gone, archived, or was changed concurrently.
	var current T
	err := s.db.WithContext(ctx).
		Where("id = ? AND state <> ?", id, models.StateArchived).
		First(&current).Error
	if err != nil {
		return "", s.translate(err)
	}
	return "", apperrors.NewConflictError(s.entity, apperrors.ErrEtagMismatch.Message)
}

func withEtag(columns map[string]interface{}, next string) map[string]interface{} {
	updates := make(map[string]interface{}, len(columns)+2)
	for k, v := range columns {
		updates[k] = v
	}
	updates["etag"] = next
	updates["updated_at"] = time.Now().UTC()
	return updates
}

func (s *Store[T]) filtered(ctx context.Context, q ListQuery) *gorm.DB {
	query := s.db.WithContext(ctx).Model(new(T))
	if q.Archived {
		query = query.Where(s.col("state")+" = ?", models.StateArchived)
	} else {
		query = query.Where(s.col("state")+" <> ?", models.StateArchived)
	}
	for column, value := range q.Filters {
		query = query.Where(s.col(column)+" = ?", value)
	}
	return ApplyScope(query, s.table, q.Scope)
}

func (s *Store[T]) preload(q *gorm.DB, embeds []string) *gorm.DB {
	for _, embed := range embeds {
		q = q.Preload(embed, "state <> ?", models.StateArchived)
	}
	return q
}

func (s *Store[T]) col(name string) string {
	return s.table + "." + name
}

func (s *Store[T]) translate(err error) error {
	return translate(err, s.entity)
}

// translate maps gorm's driver-independent errors onto the application taxonomy.
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NewNotFoundError(entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.NewAlreadyExistsError(entity, "with these unique fields")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.ErrReferenceAbsent
	}
	return fmt.Errorf("%s store: %w", entity, err)
}

// ApplyScope restricts query on table to the rows visible through scope.
func ApplyScope(query *gorm.DB, table string, scope authz.Scope) *gorm.DB {
	if scope.Unrestricted {
		return query
	}

	switch scope.Visibility {
	case authz.VisibilityTeam:
		return query.Where(table+".team_id = ?", scope.TeamID)
	case authz.VisibilityTeamSelf:
		return query.Where(table+".id = ?", scope.TeamID)
	case authz.VisibilityProduct:
		return query.Where(
			"("+table+".team_id = ? OR "+table+".id IN (SELECT product_id FROM product_teams WHERE team_id = ?))",
			scope.TeamID, scope.TeamID)
	case authz.VisibilityTopic:
		return query.Where(
			table+".product_id IN (SELECT id FROM products WHERE team_id = ? OR id IN (SELECT product_id FROM product_teams WHERE team_id = ?))",
			scope.TeamID, scope.TeamID)
	}
	return query
}
