package service

import (
	"context"
	"fmt"

	"dci-control-server/internal/authz"
	"dci-control-server/internal/database/models"
	apperrors "dci-control-server/internal/errors"
	"dci-control-server/internal/metrics"
	"dci-control-server/internal/repository"
	"dci-control-server/internal/schema"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// Services bundles the service of every resource kind.
type Services struct {
	Teams          *Resource[models.Team]
	Users          *Resource[models.User]
	Products       *ProductService
	Topics         *Resource[models.Topic]
	ComponentTypes *Resource[models.ComponentType]
	Components     *Resource[models.Component]
	Tests          *Resource[models.Test]
	JobDefinitions *Resource[models.JobDefinition]
	RemoteCIs      *Resource[models.RemoteCI]
	Jobs           *Resource[models.Job]
	JobStates      *Resource[models.JobState]
}

// NewServices wires the services of every kind on repos. m may be nil.
func NewServices(repos *repository.Repositories, m *metrics.Metrics) *Services {
	return &Services{
		Teams:          NewResource(models.KindTeam, repos, m, teamHooks()),
		Users:          NewResource(models.KindUser, repos, m, userHooks()),
		Products:       NewProductService(repos, m),
		Topics:         NewResource(models.KindTopic, repos, m, topicHooks()),
		ComponentTypes: NewResource(models.KindComponentType, repos, m, componentTypeHooks()),
		Components:     NewResource(models.KindComponent, repos, m, componentHooks()),
		Tests:          NewResource(models.KindTest, repos, m, testHooks()),
		JobDefinitions: NewResource(models.KindJobDefinition, repos, m, jobDefinitionHooks()),
		RemoteCIs:      NewResource(models.KindRemoteCI, repos, m, remoteCIHooks()),
		Jobs:           NewResource(models.KindJob, repos, m, jobHooks()),
		JobStates:      NewResource(models.KindJobState, repos, m, jobStateHooks()),
	}
}

func jsonMap(p schema.Payload, key string) datatypes.JSONMap {
	if !p.Has(key) {
		return nil
	}
	return datatypes.JSONMap(p.Object(key))
}

// HashPassword returns the bcrypt hash stored in users.password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func globalTarget[T any](kind models.Kind) func(context.Context, *repository.Repositories, *T) (authz.Target, error) {
	return func(context.Context, *repository.Repositories, *T) (authz.Target, error) {
		return authz.Target{Kind: kind}, nil
	}
}

func teamTarget[T any](kind models.Kind, teamOf func(*T) uuid.UUID) func(context.Context, *repository.Repositories, *T) (authz.Target, error) {
	return func(_ context.Context, _ *repository.Repositories, item *T) (authz.Target, error) {
		return authz.Target{Kind: kind, TeamID: teamOf(item)}, nil
	}
}

func teamHooks() Hooks[models.Team] {
	return Hooks[models.Team]{
		Store: func(r *repository.Repositories) *repository.Store[models.Team] { return r.Teams },
		Build: func(_ *authz.Caller, p schema.Payload) (*models.Team, error) {
			return &models.Team{Name: p.String("name")}, nil
		},
		Target:  teamTarget(models.KindTeam, func(t *models.Team) uuid.UUID { return t.ID }),
		Filters: map[string]FilterType{"name": FilterString},
		Sorts:   []string{"name"},
	}
}

func userHooks() Hooks[models.User] {
	return Hooks[models.User]{
		Store: func(r *repository.Repositories) *repository.Store[models.User] { return r.Users },
		Build: func(_ *authz.Caller, p schema.Payload) (*models.User, error) {
			hash, err := HashPassword(p.String("password"))
			if err != nil {
				return nil, err
			}
			return &models.User{
				Name:     p.String("name"),
				Password: hash,
				TeamID:   p.UUID("team_id"),
				Role:     models.Role(p.String("role")),
			}, nil
		},
		Columns: func(p schema.Payload) (map[string]interface{}, error) {
			columns, _ := payloadColumns(p)
			if p.Has("password") {
				hash, err := HashPassword(p.String("password"))
				if err != nil {
					return nil, err
				}
				columns["password"] = hash
			}
			return columns, nil
		},
		Target:  teamTarget(models.KindUser, func(u *models.User) uuid.UUID { return u.TeamID }),
		Embeds:  map[string]string{"team": "Team"},
		Filters: map[string]FilterType{"name": FilterString, "team_id": FilterUUID, "role": FilterString},
		Sorts:   []string{"name"},
	}
}

func productTarget(ctx context.Context, r *repository.Repositories, p *models.Product) (authz.Target, error) {
	target := authz.Target{Kind: models.KindProduct}
	if p.TeamID != nil {
		target.TeamID = *p.TeamID
	}
	if p.ID == uuid.Nil {
		return target, nil
	}
	granted, err := r.ProductTeams.TeamIDs(ctx, p.ID)
	if err != nil {
		return target, err
	}
	target.GrantedTeams = granted
	return target, nil
}

func topicHooks() Hooks[models.Topic] {
	return Hooks[models.Topic]{
		Store: func(r *repository.Repositories) *repository.Store[models.Topic] { return r.Topics },
		Build: func(_ *authz.Caller, p schema.Payload) (*models.Topic, error) {
			return &models.Topic{
				Name:      p.String("name"),
				ProductID: p.UUID("product_id"),
				Data:      jsonMap(p, "data"),
			}, nil
		},
		Target: func(ctx context.Context, r *repository.Repositories, t *models.Topic) (authz.Target, error) {
			product, err := r.Products.Get(ctx, t.ProductID)
			if err != nil {
				return authz.Target{}, err
			}
			target, err := productTarget(ctx, r, product)
			target.Kind = models.KindTopic
			return target, err
		},
		Embeds:  map[string]string{"product": "Product"},
		Filters: map[string]FilterType{"name": FilterString, "product_id": FilterUUID},
		Sorts:   []string{"name"},
	}
}

func componentTypeHooks() Hooks[models.ComponentType] {
	return Hooks[models.ComponentType]{
		Store: func(r *repository.Repositories) *repository.Store[models.ComponentType] { return r.ComponentTypes },
		Build: func(_ *authz.Caller, p schema.Payload) (*models.ComponentType, error) {
			return &models.ComponentType{Name: p.String("name")}, nil
		},
		Target:  globalTarget[models.ComponentType](models.KindComponentType),
		Filters: map[string]FilterType{"name": FilterString},
		Sorts:   []string{"name"},
	}
}

func componentHooks() Hooks[models.Component] {
	return Hooks[models.Component]{
		Store: func(r *repository.Repositories) *repository.Store[models.Component] { return r.Components },
		Build: func(_ *authz.Caller, p schema.Payload) (*models.Component, error) {
			active := p.Bool("active")
			return &models.Component{
				Name:                 p.String("name"),
				ComponentTypeID:      p.UUID("componenttype_id"),
				Sha:                  p.String("sha"),
				Title:                p.String("title"),
				Message:              p.String("message"),
				Git:                  p.String("git"),
				Ref:                  p.String("ref"),
				CanonicalProjectName: p.String("canonical_project_name"),
				Data:                 jsonMap(p, "data"),
				Active:               &active,
			}, nil
		},
		Target: globalTarget[models.Component](models.KindComponent),
		Embeds: map[string]string{"componenttype": "ComponentType"},
		Filters: map[string]FilterType{
			"name":             FilterString,
			"componenttype_id": FilterUUID,
			"active":           FilterBool,
			"sha":              FilterString,
		},
		Sorts: []string{"name"},
	}
}

func testHooks() Hooks[models.Test] {
	return Hooks[models.Test]{
		Store: func(r *repository.Repositories) *repository.Store[models.Test] { return r.Tests },
		Build: func(_ *authz.Caller, p schema.Payload) (*models.Test, error) {
			return &models.Test{Name: p.String("name"), Data: jsonMap(p, "data")}, nil
		},
		Target:  globalTarget[models.Test](models.KindTest),
		Filters: map[string]FilterType{"name": FilterString},
		Sorts:   []string{"name"},
	}
}

func jobDefinitionHooks() Hooks[models.JobDefinition] {
	return Hooks[models.JobDefinition]{
		Store: func(r *repository.Repositories) *repository.Store[models.JobDefinition] { return r.JobDefinitions },
		Build: func(_ *authz.Caller, p schema.Payload) (*models.JobDefinition, error) {
			return &models.JobDefinition{
				Name:     p.String("name"),
				TestID:   p.UUID("test_id"),
				Priority: int(p.Int("priority")),
			}, nil
		},
		Target:  globalTarget[models.JobDefinition](models.KindJobDefinition),
		Embeds:  map[string]string{"test": "Test"},
		Filters: map[string]FilterType{"name": FilterString, "test_id": FilterUUID},
		Sorts:   []string{"name", "priority"},
	}
}

func remoteCIHooks() Hooks[models.RemoteCI] {
	return Hooks[models.RemoteCI]{
		Store: func(r *repository.Repositories) *repository.Store[models.RemoteCI] { return r.RemoteCIs },
		Build: func(_ *authz.Caller, p schema.Payload) (*models.RemoteCI, error) {
			return &models.RemoteCI{
				Name:   p.String("name"),
				TeamID: p.UUID("team_id"),
				Data:   jsonMap(p, "data"),
			}, nil
		},
		Target:  teamTarget(models.KindRemoteCI, func(rci *models.RemoteCI) uuid.UUID { return rci.TeamID }),
		Embeds:  map[string]string{"team": "Team"},
		Filters: map[string]FilterType{"name": FilterString, "team_id": FilterUUID},
		Sorts:   []string{"name"},
	}
}

func jobHooks() Hooks[models.Job] {
	return Hooks[models.Job]{
		Store: func(r *repository.Repositories) *repository.Store[models.Job] { return r.Jobs },
		Build: func(_ *authz.Caller, p schema.Payload) (*models.Job, error) {
			return &models.Job{
				JobDefinitionID: p.UUID("jobdefinition_id"),
				RemoteCIID:      p.UUID("remoteci_id"),
				TeamID:          p.UUID("team_id"),
				Status:          models.JobStatusNew,
				Comment:         p.String("comment"),
			}, nil
		},
		Target: teamTarget(models.KindJob, func(j *models.Job) uuid.UUID { return j.TeamID }),
		Embeds: map[string]string{
			"jobdefinition": "JobDefinition",
			"remoteci":      "RemoteCI",
			"team":          "Team",
			"jobstates":     "JobStates",
		},
		Filters: map[string]FilterType{
			"status":           FilterString,
			"team_id":          FilterUUID,
			"remoteci_id":      FilterUUID,
			"jobdefinition_id": FilterUUID,
		},
		Sorts: []string{"status"},
	}
}

func jobStateHooks() Hooks[models.JobState] {
	return Hooks[models.JobState]{
		Store: func(r *repository.Repositories) *repository.Store[models.JobState] { return r.JobStates },
		Build: func(_ *authz.Caller, p schema.Payload) (*models.JobState, error) {
			return &models.JobState{
				Name:    p.String("name"),
				Status:  p.String("status"),
				Comment: p.String("comment"),
				JobID:   p.UUID("job_id"),
				TeamID:  p.UUID("team_id"),
			}, nil
		},
		Target:      teamTarget(models.KindJobState, func(js *models.JobState) uuid.UUID { return js.TeamID }),
		AfterCreate: advanceJob,
		Embeds:      map[string]string{"job": "Job"},
		Filters:     map[string]FilterType{"job_id": FilterUUID, "status": FilterString, "team_id": FilterUUID},
		Sorts:       []string{"status"},
	}
}

// advanceJob copies the status of a new job state onto its job, which
// rotates the job's etag.
func advanceJob(ctx context.Context, tx *repository.Repositories, js *models.JobState) error {
	job, err := tx.Jobs.Get(ctx, js.JobID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewValidationError("job_id", "not an existing job")
		}
		return err
	}
	if job.TeamID != js.TeamID {
		return apperrors.NewValidationError("team_id", "does not match the team of the job")
	}
	_, err = tx.Jobs.Touch(ctx, js.JobID, map[string]interface{}{"status": js.Status})
	return err
}
