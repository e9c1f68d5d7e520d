package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"dci-control-server/internal/authz"
	"dci-control-server/internal/database/models"
	apperrors "dci-control-server/internal/errors"
	"dci-control-server/internal/etag"
	"dci-control-server/internal/logger"
	"dci-control-server/internal/metrics"
	"dci-control-server/internal/repository"
	"dci-control-server/internal/schema"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Stage names a step of the mutation pipeline. Rejections are logged and
// counted per stage.
type Stage string

const (
	StageValidate  Stage = "validate"
	StageLoad      Stage = "load"
	StageAuthorize Stage = "authorize"
	StageEtag      Stage = "etag"
	StageCommit    Stage = "commit"
)

// FilterType tells how a query-string filter value is parsed.
type FilterType int

const (
	FilterString FilterType = iota
	FilterUUID
	FilterBool
)

// ListParams are the listing options accepted from the query string.
type ListParams struct {
	Limit  int
	Offset int
	// Sort holds column names, a leading "-" sorts descending.
	Sort    []string
	Embeds  []string
	Filters map[string]string
	// Archived selects the purge view.
	Archived bool
}

// Page is one page of a listing with the total number of matching rows.
type Page[T any] struct {
	Items []T
	Count int64
}

// Hooks supply the kind-specific parts of a Resource.
type Hooks[T any] struct {
	// Store selects the table of T in a repository bundle.
	Store func(r *repository.Repositories) *repository.Store[T]
	// Build turns a validated create payload into a new row.
	Build func(caller *authz.Caller, p schema.Payload) (*T, error)
	// Columns turns a validated update payload into column values.
	// Defaults to the payload itself with objects stored as JSON.
	Columns func(p schema.Payload) (map[string]interface{}, error)
	// Target describes item for the authorization gate.
	Target func(ctx context.Context, r *repository.Repositories, item *T) (authz.Target, error)
	// AfterCreate runs in the creating transaction.
	AfterCreate func(ctx context.Context, tx *repository.Repositories, item *T) error

	// Embeds maps query names to associations.
	Embeds map[string]string
	// Filters are the columns a listing may be filtered on.
	Filters map[string]FilterType
	// Sorts are the columns a listing may be sorted on besides the timestamps.
	Sorts []string
}

// Resource runs the read operations and the mutation pipeline of one resource kind:
// validate, authorize, check the etag, then commit.
type Resource[T any] struct {
	kind    models.Kind
	repos   *repository.Repositories
	hooks   Hooks[T]
	metrics *metrics.Metrics
}

// NewResource creates the service of kind.
func NewResource[T any](kind models.Kind, repos *repository.Repositories, m *metrics.Metrics, hooks Hooks[T]) *Resource[T] {
	if hooks.Columns == nil {
		hooks.Columns = payloadColumns
	}
	return &Resource[T]{kind: kind, repos: repos, hooks: hooks, metrics: m}
}

// Kind returns the resource kind served.
func (r *Resource[T]) Kind() models.Kind {
	return r.kind
}

// EmbedNames returns the accepted embed names, sorted.
func (r *Resource[T]) EmbedNames() []string {
	names := make([]string, 0, len(r.hooks.Embeds))
	for name := range r.hooks.Embeds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Resource[T]) store() *repository.Store[T] {
	return r.hooks.Store(r.repos)
}

// List returns the page of rows visible to caller.
func (r *Resource[T]) List(ctx context.Context, caller *authz.Caller, params ListParams) (*Page[T], error) {
	decision := authz.Authorize(caller, authz.OpList, authz.Target{Kind: r.kind})
	if !decision.Allowed() {
		return nil, r.reject(ctx, StageAuthorize, apperrors.NewAuthorizationError(decision.Reason))
	}

	q, err := r.listQuery(params)
	if err != nil {
		return nil, r.reject(ctx, StageValidate, err)
	}
	q.Scope = decision.Scope

	items, total, err := r.store().List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &Page[T]{Items: items, Count: total}, nil
}

// Get returns the row with id if caller may see it. A row outside the
// caller's scope is an authorization error, not a missing row.
func (r *Resource[T]) Get(ctx context.Context, caller *authz.Caller, id uuid.UUID, embeds []string) (*T, error) {
	associations, err := r.associations(embeds)
	if err != nil {
		return nil, r.reject(ctx, StageValidate, err)
	}

	item, err := r.store().Get(ctx, id, associations...)
	if err != nil {
		return nil, r.reject(ctx, StageLoad, err)
	}
	if err := r.authorize(ctx, caller, authz.OpRead, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Create validates raw, authorizes the new row and stores it.
func (r *Resource[T]) Create(ctx context.Context, caller *authz.Caller, raw map[string]interface{}) (*T, error) {
	p, err := schema.Validate(r.kind, schema.Create, raw)
	if err != nil {
		return nil, r.reject(ctx, StageValidate, err)
	}

	item, err := r.hooks.Build(caller, p)
	if err != nil {
		return nil, r.reject(ctx, StageValidate, err)
	}

	if err := r.authorize(ctx, caller, authz.OpCreate, item); err != nil {
		return nil, err
	}

	err = r.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if err := r.hooks.Store(tx).Create(ctx, item); err != nil {
			return err
		}
		if r.hooks.AfterCreate != nil {
			return r.hooks.AfterCreate(ctx, tx, item)
		}
		return nil
	})
	if err != nil {
		return nil, r.reject(ctx, StageCommit, err)
	}

	r.committed(ctx, authz.OpCreate, item)
	return item, nil
}

// Update applies the partial payload raw to the row with id. ifMatch must be
// the etag the caller last read.
func (r *Resource[T]) Update(ctx context.Context, caller *authz.Caller, id uuid.UUID, ifMatch string, raw map[string]interface{}) (*T, error) {
	p, err := schema.Validate(r.kind, schema.Update, raw)
	if err != nil {
		return nil, r.reject(ctx, StageValidate, err)
	}

	item, err := r.store().Get(ctx, id)
	if err != nil {
		return nil, r.reject(ctx, StageLoad, err)
	}
	if err := r.authorize(ctx, caller, authz.OpUpdate, item); err != nil {
		return nil, err
	}
	if err := r.authorizeMove(ctx, caller, item, p); err != nil {
		return nil, err
	}

	if err := etag.Check(string(r.kind), baseOf(item).Etag, ifMatch); err != nil {
		return nil, r.reject(ctx, StageEtag, err)
	}

	columns, err := r.hooks.Columns(p)
	if err != nil {
		return nil, err
	}
	if _, err := r.store().Update(ctx, id, etag.Normalize(ifMatch), columns); err != nil {
		return nil, r.reject(ctx, StageCommit, err)
	}

	updated, err := r.store().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.committed(ctx, authz.OpUpdate, updated)
	return updated, nil
}

// Delete archives the row with id. ifMatch must be the etag the caller last read.
func (r *Resource[T]) Delete(ctx context.Context, caller *authz.Caller, id uuid.UUID, ifMatch string) error {
	item, err := r.store().Get(ctx, id)
	if err != nil {
		return r.reject(ctx, StageLoad, err)
	}
	if err := r.authorize(ctx, caller, authz.OpDelete, item); err != nil {
		return err
	}
	if err := etag.Check(string(r.kind), baseOf(item).Etag, ifMatch); err != nil {
		return r.reject(ctx, StageEtag, err)
	}
	if err := r.store().Archive(ctx, id, etag.Normalize(ifMatch)); err != nil {
		return r.reject(ctx, StageCommit, err)
	}

	r.committed(ctx, authz.OpDelete, item)
	return nil
}

func (r *Resource[T]) authorize(ctx context.Context, caller *authz.Caller, op authz.Operation, item *T) error {
	target, err := r.hooks.Target(ctx, r.repos, item)
	if err != nil {
		if op == authz.OpCreate && apperrors.IsNotFound(err) {
			err = apperrors.ErrReferenceAbsent
		}
		return r.reject(ctx, StageAuthorize, err)
	}

	decision := authz.Authorize(caller, op, target)
	if !decision.Allowed() {
		return r.reject(ctx, StageAuthorize, apperrors.NewAuthorizationError(decision.Reason))
	}
	return nil
}

// authorizeMove checks an update that hands the row over to another owner
// against the new owner too.
func (r *Resource[T]) authorizeMove(ctx context.Context, caller *authz.Caller, item *T, p schema.Payload) error {
	if len(p) == 0 || caller.IsAdmin() {
		return nil
	}

	before, err := r.hooks.Target(ctx, r.repos, item)
	if err != nil {
		return r.reject(ctx, StageAuthorize, err)
	}
	patched, err := patch(item, p)
	if err != nil {
		return err
	}
	after, err := r.hooks.Target(ctx, r.repos, patched)
	if err != nil {
		if apperrors.IsNotFound(err) {
			err = apperrors.ErrReferenceAbsent
		}
		return r.reject(ctx, StageAuthorize, err)
	}
	if before.TeamID == after.TeamID {
		return nil
	}

	decision := authz.Authorize(caller, authz.OpUpdate, after)
	if !decision.Allowed() {
		return r.reject(ctx, StageAuthorize, apperrors.NewAuthorizationError(decision.Reason))
	}
	return nil
}

func (r *Resource[T]) listQuery(params ListParams) (repository.ListQuery, error) {
	q := repository.ListQuery{
		Limit:    params.Limit,
		Offset:   params.Offset,
		Archived: params.Archived,
	}

	embeds, err := r.associations(params.Embeds)
	if err != nil {
		return q, err
	}
	q.Embeds = embeds

	sortable := append([]string{"created_at", "updated_at"}, r.hooks.Sorts...)
	for _, field := range params.Sort {
		desc := strings.HasPrefix(field, "-")
		column := strings.TrimPrefix(field, "-")
		if !contains(sortable, column) {
			return q, apperrors.NewValidationError("sort", fmt.Sprintf("cannot sort on %q", column))
		}
		q.Sort = append(q.Sort, repository.SortField{Column: column, Desc: desc})
	}
	if len(q.Sort) == 0 {
		q.Sort = []repository.SortField{{Column: "created_at"}}
	}

	if len(params.Filters) > 0 {
		q.Filters = make(map[string]interface{}, len(params.Filters))
	}
	for column, raw := range params.Filters {
		typ, ok := r.hooks.Filters[column]
		if !ok {
			return q, apperrors.NewValidationError(column, "cannot filter on this field")
		}
		value, err := parseFilter(typ, raw)
		if err != nil {
			return q, apperrors.NewValidationError(column, err.Error())
		}
		q.Filters[column] = value
	}
	return q, nil
}

func (r *Resource[T]) associations(embeds []string) ([]string, error) {
	out := make([]string, 0, len(embeds))
	for _, name := range embeds {
		assoc, ok := r.hooks.Embeds[name]
		if !ok {
			return nil, apperrors.NewValidationError("embed",
				fmt.Sprintf("cannot embed %q (one of: %s)", name, strings.Join(r.EmbedNames(), ", ")))
		}
		out = append(out, assoc)
	}
	return out, nil
}

func (r *Resource[T]) reject(ctx context.Context, stage Stage, err error) error {
	log := logger.WithContext(ctx).WithFields(map[string]interface{}{
		"kind":  r.kind,
		"stage": stage,
	}).WithError(err)
	if clientError(err) {
		log.Info("request rejected")
	} else {
		log.Error("request failed")
	}
	r.metrics.Rejected(string(r.kind), string(stage))
	return err
}

func (r *Resource[T]) committed(ctx context.Context, op authz.Operation, item *T) {
	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"kind":      r.kind,
		"operation": op,
		"id":        baseOf(item).ID,
	}).Debug("mutation committed")
	r.metrics.Committed(string(r.kind), string(op))
}

func clientError(err error) bool {
	return apperrors.IsValidation(err) || apperrors.IsAuthorization(err) || apperrors.IsAuthentication(err) ||
		apperrors.IsNotFound(err) || apperrors.IsConflict(err)
}

func baseOf[T any](item *T) *models.BaseModel {
	return any(item).(models.Resource).GetBase()
}

// patch returns a copy of item with the payload applied, for authorization
// only. The copy shares no pointers or maps with item.
func patch[T any](item *T, p schema.Payload) (*T, error) {
	current, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("encode item: %w", err)
	}
	patched := new(T)
	if err := json.Unmarshal(current, patched); err != nil {
		return nil, fmt.Errorf("copy item: %w", err)
	}
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode patch: %w", err)
	}
	if err := json.Unmarshal(body, patched); err != nil {
		return nil, fmt.Errorf("apply patch: %w", err)
	}
	return patched, nil
}

// payloadColumns maps payload keys onto columns of the same name.
func payloadColumns(p schema.Payload) (map[string]interface{}, error) {
	columns := make(map[string]interface{}, len(p))
	for key, value := range p {
		if obj, ok := value.(map[string]interface{}); ok {
			columns[key] = datatypes.JSONMap(obj)
			continue
		}
		columns[key] = value
	}
	return columns, nil
}

func parseFilter(typ FilterType, raw string) (interface{}, error) {
	switch typ {
	case FilterUUID:
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%s", schema.MsgUUID)
		}
		return id, nil
	case FilterBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s", schema.MsgBoolean)
		}
		return b, nil
	}
	return raw, nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
