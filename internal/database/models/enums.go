package models

// State is the lifecycle state of a resource row.
type State string

const (
	StateActive   State = "active"
	StateInactive State = "inactive"
	// StateArchived marks a soft-deleted row; it only shows up in purge listings.
	StateArchived State = "archived"
)

// IsValid checks if the State is valid
func (s State) IsValid() bool {
	switch s {
	case StateActive, StateInactive, StateArchived:
		return true
	}
	return false
}

// Role is the authorization role of a user.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleProductOwner Role = "product-owner"
	RoleUser         Role = "user"
)

// IsValid checks if the Role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleProductOwner, RoleUser:
		return true
	}
	return false
}

// Kind identifies a resource family across the schema, authorization and storage layers.
type Kind string

const (
	KindTeam          Kind = "team"
	KindUser          Kind = "user"
	KindProduct       Kind = "product"
	KindProductTeam   Kind = "product_team"
	KindTopic         Kind = "topic"
	KindComponentType Kind = "componenttype"
	KindComponent     Kind = "component"
	KindTest          Kind = "test"
	KindJobDefinition Kind = "jobdefinition"
	KindRemoteCI      Kind = "remoteci"
	KindJob           Kind = "job"
	KindJobState      Kind = "jobstate"
)

// Plural returns the collection name used in routes and list responses.
func (k Kind) Plural() string {
	switch k {
	case KindProductTeam:
		return "product_teams"
	}
	return string(k) + "s"
}

// JobStatusNew is the status of a job before any job state was appended.
const JobStatusNew = "new"
