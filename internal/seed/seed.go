// Package seed loads bootstrap data (teams, users, products and catalog
// entries) from a YAML document. Loading is idempotent: rows that already
// exist by name are left untouched.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"

	"dci-control-server/internal/database/models"
	apperrors "dci-control-server/internal/errors"
	"dci-control-server/internal/repository"
	"dci-control-server/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type TeamData struct {
	Name string `yaml:"name"`
}

type UserData struct {
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
	Team     string `yaml:"team"`
	Role     string `yaml:"role"`
}

type ProductData struct {
	Name        string `yaml:"name"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
	Team        string `yaml:"team,omitempty"`
	// Teams granted access besides the owner.
	Teams []string `yaml:"teams,omitempty"`
}

type NamedData struct {
	Name string                 `yaml:"name"`
	Data map[string]interface{} `yaml:"data,omitempty"`
}

// Document is the layout of a seed file.
type Document struct {
	Teams          []TeamData    `yaml:"teams"`
	Users          []UserData    `yaml:"users"`
	Products       []ProductData `yaml:"products"`
	ComponentTypes []NamedData   `yaml:"componenttypes"`
	Tests          []NamedData   `yaml:"tests"`
}

// Result counts the rows a load created, per kind.
type Result map[models.Kind]int

// Parse decodes a seed document.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode seed document: %w", err)
	}
	return &doc, nil
}

// LoadFile parses the seed document at path and applies it.
func LoadFile(ctx context.Context, repos *repository.Repositories, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, err
	}
	return Load(ctx, repos, doc)
}

// Load applies doc in a single transaction.
func Load(ctx context.Context, repos *repository.Repositories, doc *Document) (Result, error) {
	result := Result{}
	err := repos.Transaction(ctx, func(tx *repository.Repositories) error {
		l := &loader{tx: tx, result: result, teams: map[string]uuid.UUID{}}
		return l.load(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"teams":          result[models.KindTeam],
		"users":          result[models.KindUser],
		"products":       result[models.KindProduct],
		"componenttypes": result[models.KindComponentType],
		"tests":          result[models.KindTest],
	}).Info("seed data loaded")
	return result, nil
}

type loader struct {
	tx     *repository.Repositories
	result Result
	teams  map[string]uuid.UUID
}

func (l *loader) load(ctx context.Context, doc *Document) error {
	for _, t := range doc.Teams {
		team, err := findOrCreate(ctx, l, l.tx.Teams, t.Name, func() *models.Team {
			return &models.Team{Name: t.Name}
		})
		if err != nil {
			return err
		}
		l.teams[t.Name] = team.ID
	}

	for _, u := range doc.Users {
		if err := l.user(ctx, u); err != nil {
			return err
		}
	}

	for _, p := range doc.Products {
		if err := l.product(ctx, p); err != nil {
			return err
		}
	}

	for _, ct := range doc.ComponentTypes {
		if _, err := findOrCreate(ctx, l, l.tx.ComponentTypes, ct.Name, func() *models.ComponentType {
			return &models.ComponentType{Name: ct.Name}
		}); err != nil {
			return err
		}
	}

	for _, t := range doc.Tests {
		if _, err := findOrCreate(ctx, l, l.tx.Tests, t.Name, func() *models.Test {
			return &models.Test{Name: t.Name, Data: t.Data}
		}); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) user(ctx context.Context, u UserData) error {
	role := models.Role(u.Role)
	if u.Role == "" {
		role = models.RoleUser
	}
	if !role.IsValid() {
		return fmt.Errorf("user %s: unknown role %q", u.Name, u.Role)
	}
	if u.Password == "" {
		return fmt.Errorf("user %s: password is required", u.Name)
	}
	teamID, err := l.team(ctx, u.Team)
	if err != nil {
		return fmt.Errorf("user %s: %w", u.Name, err)
	}

	_, err = findOrCreate(ctx, l, l.tx.Users, u.Name, func() *models.User {
		return &models.User{Name: u.Name, TeamID: teamID, Role: role}
	}, func(user *models.User) error {
		hash, err := service.HashPassword(u.Password)
		user.Password = hash
		return err
	})
	return err
}

func (l *loader) product(ctx context.Context, p ProductData) error {
	if p.Label == "" {
		return fmt.Errorf("product %s: label is required", p.Name)
	}

	var owner *uuid.UUID
	if p.Team != "" {
		id, err := l.team(ctx, p.Team)
		if err != nil {
			return fmt.Errorf("product %s: %w", p.Name, err)
		}
		owner = &id
	}

	product, err := findOrCreate(ctx, l, l.tx.Products, p.Name, func() *models.Product {
		return &models.Product{Name: p.Name, Label: p.Label, Description: p.Description, TeamID: owner}
	})
	if err != nil {
		return err
	}

	for _, name := range p.Teams {
		teamID, err := l.team(ctx, name)
		if err != nil {
			return fmt.Errorf("product %s: %w", p.Name, err)
		}
		err = l.tx.ProductTeams.Add(ctx, product.ID, teamID)
		if err != nil && !apperrors.IsAlreadyExists(err) {
			return fmt.Errorf("grant %s on product %s: %w", name, p.Name, err)
		}
	}
	return nil
}

// team resolves a team declared in this document or already stored.
func (l *loader) team(ctx context.Context, name string) (uuid.UUID, error) {
	if id, ok := l.teams[name]; ok {
		return id, nil
	}
	team, err := l.tx.Teams.FindOne(ctx, map[string]interface{}{"name": name})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return uuid.Nil, fmt.Errorf("team %q not found", name)
		}
		return uuid.Nil, err
	}
	l.teams[name] = team.ID
	return team.ID, nil
}

func findOrCreate[T any](ctx context.Context, l *loader, store *repository.Store[T], name string, build func() *T, prepare ...func(*T) error) (*T, error) {
	existing, err := store.FindOne(ctx, map[string]interface{}{"name": name})
	if err == nil {
		return existing, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("look up %s %s: %w", store.Kind(), name, err)
	}

	item := build()
	for _, fn := range prepare {
		if err := fn(item); err != nil {
			return nil, fmt.Errorf("prepare %s %s: %w", store.Kind(), name, err)
		}
	}
	if err := store.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create %s %s: %w", store.Kind(), name, err)
	}
	l.result[store.Kind()]++
	return item, nil
}
