package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// JobDefinition describes what a remote CI runs. Priority is within [0, 1000].
type JobDefinition struct {
	BaseModel
	Name     string    `json:"name" gorm:"not null;size:255"`
	TestID   uuid.UUID `json:"test_id" gorm:"type:uuid;not null;index"`
	Priority int       `json:"priority" gorm:"not null;default:0"`

	// Relationships
	Test *Test `json:"test,omitempty" gorm:"foreignKey:TestID"`
}

// TableName returns the table name for JobDefinition
func (JobDefinition) TableName() string {
	return "jobdefinitions"
}

// RemoteCI is an agent owned by a team that runs jobs.
type RemoteCI struct {
	BaseModel
	Name   string            `json:"name" gorm:"uniqueIndex:idx_remotecis_team_name;not null;size:255"`
	TeamID uuid.UUID         `json:"team_id" gorm:"type:uuid;uniqueIndex:idx_remotecis_team_name;not null"`
	Data   datatypes.JSONMap `json:"data"`

	// Relationships
	Team *Team `json:"team,omitempty" gorm:"foreignKey:TeamID"`
}

// TableName returns the table name for RemoteCI
func (RemoteCI) TableName() string {
	return "remotecis"
}

// Job is one execution of a job definition on a remote CI. Status mirrors the
// status of the latest appended job state.
type Job struct {
	BaseModel
	JobDefinitionID uuid.UUID `json:"jobdefinition_id" gorm:"column:jobdefinition_id;type:uuid;not null;index"`
	RemoteCIID      uuid.UUID `json:"remoteci_id" gorm:"column:remoteci_id;type:uuid;not null;index"`
	TeamID          uuid.UUID `json:"team_id" gorm:"type:uuid;not null;index"`
	Status          string    `json:"status" gorm:"size:64;not null;default:'new'"`
	Comment         string    `json:"comment" gorm:"type:text"`

	// Relationships
	JobDefinition *JobDefinition `json:"jobdefinition,omitempty" gorm:"foreignKey:JobDefinitionID"`
	RemoteCI      *RemoteCI      `json:"remoteci,omitempty" gorm:"foreignKey:RemoteCIID"`
	Team          *Team          `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	JobStates     []JobState     `json:"jobstates,omitempty" gorm:"foreignKey:JobID"`
}

// TableName returns the table name for Job
func (Job) TableName() string {
	return "jobs"
}

// JobState is an append-only record of a job's state transition.
type JobState struct {
	BaseModel
	Name    string    `json:"name" gorm:"not null;size:255"`
	Status  string    `json:"status" gorm:"size:64;not null"`
	Comment string    `json:"comment" gorm:"type:text"`
	JobID   uuid.UUID `json:"job_id" gorm:"type:uuid;not null;index"`
	TeamID  uuid.UUID `json:"team_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Job *Job `json:"job,omitempty" gorm:"foreignKey:JobID"`
}

// TableName returns the table name for JobState
func (JobState) TableName() string {
	return "jobstates"
}
