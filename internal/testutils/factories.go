package testutils

import (
	"fmt"
	"strings"
	"sync/atomic"

	"dci-control-server/internal/database/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

var sequence atomic.Int64

func next(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, sequence.Add(1))
}

// TeamFactory provides methods to create test Team data
type TeamFactory struct{}

// Create creates a test Team with a unique name
func (f *TeamFactory) Create() *models.Team {
	return &models.Team{Name: next("team")}
}

// WithName sets a custom name for the team
func (f *TeamFactory) WithName(name string) *models.Team {
	team := f.Create()
	team.Name = name
	return team
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// Create creates a test User of the given team and role whose password is the user name
func (f *UserFactory) Create(teamID uuid.UUID, role models.Role) *models.User {
	return f.WithName(next("user"), teamID, role)
}

// WithName creates a test User whose password is its name
func (f *UserFactory) WithName(name string, teamID uuid.UUID, role models.Role) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(name), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return &models.User{Name: name, Password: string(hash), TeamID: teamID, Role: role}
}

// ProductFactory provides methods to create test Product data
type ProductFactory struct{}

// Create creates a test Product owned by teamID
func (f *ProductFactory) Create(teamID uuid.UUID) *models.Product {
	name := next("product")
	return &models.Product{
		Name:        name,
		Label:       strings.ToUpper(strings.ReplaceAll(name, "-", "_")),
		Description: "product under test",
		TeamID:      &teamID,
	}
}

// TopicFactory provides methods to create test Topic data
type TopicFactory struct{}

// Create creates a test Topic of productID
func (f *TopicFactory) Create(productID uuid.UUID) *models.Topic {
	return &models.Topic{Name: next("topic"), ProductID: productID, Data: datatypes.JSONMap{"version": "1"}}
}

// CatalogFactory provides methods to create component types, components, tests and job definitions
type CatalogFactory struct{}

// ComponentType creates a test ComponentType
func (f *CatalogFactory) ComponentType() *models.ComponentType {
	return &models.ComponentType{Name: next("componenttype")}
}

// Component creates an active test Component of typeID
func (f *CatalogFactory) Component(typeID uuid.UUID) *models.Component {
	active := true
	return &models.Component{Name: next("component"), ComponentTypeID: typeID, Active: &active}
}

// Test creates a test Test
func (f *CatalogFactory) Test() *models.Test {
	return &models.Test{Name: next("test")}
}

// JobDefinition creates a test JobDefinition running testID
func (f *CatalogFactory) JobDefinition(testID uuid.UUID) *models.JobDefinition {
	return &models.JobDefinition{Name: next("jobdefinition"), TestID: testID}
}

// CIFactory provides methods to create remote CIs and jobs
type CIFactory struct{}

// RemoteCI creates a test RemoteCI of teamID
func (f *CIFactory) RemoteCI(teamID uuid.UUID) *models.RemoteCI {
	return &models.RemoteCI{Name: next("remoteci"), TeamID: teamID}
}

// Job creates a new test Job
func (f *CIFactory) Job(jobDefinitionID, remoteCIID, teamID uuid.UUID) *models.Job {
	return &models.Job{
		JobDefinitionID: jobDefinitionID,
		RemoteCIID:      remoteCIID,
		TeamID:          teamID,
		Status:          models.JobStatusNew,
	}
}

// FactorySet contains all factories for easy access in tests
type FactorySet struct {
	Team    *TeamFactory
	User    *UserFactory
	Product *ProductFactory
	Topic   *TopicFactory
	Catalog *CatalogFactory
	CI      *CIFactory
}

// NewFactorySet creates a new set of all factories
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Team:    &TeamFactory{},
		User:    &UserFactory{},
		Product: &ProductFactory{},
		Topic:   &TopicFactory{},
		Catalog: &CatalogFactory{},
		CI:      &CIFactory{},
	}
}
