// Package authz decides what a caller may do with a resource. Decisions come
// from a single policy table keyed by resource kind.
package authz

import (
	"fmt"

	"dci-control-server/internal/database/models"

	"github.com/google/uuid"
)

// Caller is the authenticated identity behind a request.
type Caller struct {
	UserID uuid.UUID   `json:"id"`
	Name   string      `json:"name"`
	Role   models.Role `json:"role"`
	TeamID uuid.UUID   `json:"team_id"`
}

// IsAdmin reports whether the caller has the admin role.
func (c *Caller) IsAdmin() bool {
	return c != nil && c.Role == models.RoleAdmin
}

// Operation is the action being authorized.
type Operation string

const (
	OpCreate    Operation = "create"
	OpRead      Operation = "read"
	OpUpdate    Operation = "update"
	OpDelete    Operation = "delete"
	OpList      Operation = "list"
	OpAssociate Operation = "associate"
)

// Effect is the outcome of a decision.
type Effect int

const (
	Deny Effect = iota
	Allow
	// Filter allows a listing restricted to Decision.Scope.
	Filter
)

func (e Effect) String() string {
	switch e {
	case Allow:
		return "allow"
	case Filter:
		return "filter"
	}
	return "deny"
}

// Visibility is the model used to decide which rows a caller may see.
type Visibility int

const (
	// VisibilityGlobal rows are readable by every authenticated caller.
	VisibilityGlobal Visibility = iota
	// VisibilityTeam rows belong to the team in their team_id column.
	VisibilityTeam
	// VisibilityTeamSelf rows are teams; a caller sees their own team.
	VisibilityTeamSelf
	// VisibilityProduct rows are owned by a team and granted to others through product_teams.
	VisibilityProduct
	// VisibilityTopic rows inherit the visibility of their product.
	VisibilityTopic
)

// Scope restricts a listing to the rows a caller may see.
type Scope struct {
	Visibility Visibility
	TeamID     uuid.UUID
	// Unrestricted is set for admins; the listing is not filtered at all.
	Unrestricted bool
}

// Decision is the result of Authorize.
type Decision struct {
	Effect Effect
	Reason string
	Scope  Scope
}

// Allowed reports whether the operation may proceed.
func (d Decision) Allowed() bool {
	return d.Effect != Deny
}

// Target describes the resource being accessed. For creations it is built
// from the validated payload.
type Target struct {
	Kind models.Kind
	// TeamID is the owning team, uuid.Nil when the resource has none.
	TeamID uuid.UUID
	// GrantedTeams are the teams given access through product_teams.
	GrantedTeams []uuid.UUID
}

type policy struct {
	visibility Visibility
	create     []models.Role
	write      []models.Role
	associate  []models.Role
}

var (
	productOwner = []models.Role{models.RoleProductOwner}
	teamMembers  = []models.Role{models.RoleProductOwner, models.RoleUser}
)

var policies = map[models.Kind]policy{
	models.KindTeam:          {visibility: VisibilityTeamSelf},
	models.KindUser:          {visibility: VisibilityTeam},
	models.KindProduct:       {visibility: VisibilityProduct, create: productOwner, write: productOwner, associate: productOwner},
	models.KindTopic:         {visibility: VisibilityTopic, create: productOwner, write: productOwner},
	models.KindComponentType: {visibility: VisibilityGlobal, create: productOwner, write: productOwner},
	models.KindComponent:     {visibility: VisibilityGlobal, create: productOwner, write: productOwner},
	models.KindTest:          {visibility: VisibilityGlobal, create: productOwner, write: productOwner},
	models.KindJobDefinition: {visibility: VisibilityGlobal, create: productOwner, write: productOwner},
	models.KindRemoteCI:      {visibility: VisibilityTeam, create: teamMembers, write: teamMembers},
	models.KindJob:           {visibility: VisibilityTeam, create: teamMembers, write: teamMembers},
	models.KindJobState:      {visibility: VisibilityTeam, create: teamMembers},
}

// VisibilityOf returns the visibility model of kind.
func VisibilityOf(kind models.Kind) Visibility {
	return policies[kind].visibility
}

// Authorize decides whether caller may perform op on target.
// Listings are never denied: non-admin callers get a Filter decision.
func Authorize(caller *Caller, op Operation, target Target) Decision {
	if caller == nil {
		return deny("authentication required")
	}

	p, ok := policies[target.Kind]
	if !ok {
		return deny(fmt.Sprintf("unknown resource kind %q", target.Kind))
	}

	if op == OpList {
		if caller.IsAdmin() {
			return Decision{Effect: Filter, Scope: Scope{Visibility: p.visibility, Unrestricted: true}}
		}
		return Decision{Effect: Filter, Scope: Scope{Visibility: p.visibility, TeamID: caller.TeamID}}
	}

	if caller.IsAdmin() {
		return allow()
	}

	switch op {
	case OpRead:
		if visible(caller, p.visibility, target) {
			return allow()
		}
		return deny(fmt.Sprintf("%s is not visible to the caller's team", target.Kind))
	case OpCreate:
		if !hasRole(p.create, caller.Role) {
			return deny(fmt.Sprintf("role %s cannot create %s", caller.Role, target.Kind))
		}
		return owned(caller, p.visibility, target)
	case OpUpdate, OpDelete:
		if !hasRole(p.write, caller.Role) {
			return deny(fmt.Sprintf("role %s cannot %s %s", caller.Role, op, target.Kind))
		}
		return owned(caller, p.visibility, target)
	case OpAssociate:
		if !hasRole(p.associate, caller.Role) {
			return deny(fmt.Sprintf("role %s cannot manage teams of %s", caller.Role, target.Kind))
		}
		return owned(caller, p.visibility, target)
	}

	return deny(fmt.Sprintf("unknown operation %q", op))
}

// Visible reports whether caller may read target. Admins see everything.
func Visible(caller *Caller, target Target) bool {
	return Authorize(caller, OpRead, target).Effect == Allow
}

func visible(caller *Caller, v Visibility, target Target) bool {
	switch v {
	case VisibilityGlobal:
		return true
	case VisibilityTeam, VisibilityTeamSelf:
		return target.TeamID == caller.TeamID
	case VisibilityProduct, VisibilityTopic:
		if target.TeamID == caller.TeamID {
			return true
		}
		for _, granted := range target.GrantedTeams {
			if granted == caller.TeamID {
				return true
			}
		}
	}
	return false
}

// owned checks that a write lands inside the caller's team. Catalog kinds have no owner.
func owned(caller *Caller, v Visibility, target Target) Decision {
	if v == VisibilityGlobal {
		return allow()
	}
	if target.TeamID == caller.TeamID {
		return allow()
	}
	return deny(fmt.Sprintf("%s belongs to another team", target.Kind))
}

func hasRole(roles []models.Role, role models.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func allow() Decision {
	return Decision{Effect: Allow}
}

func deny(reason string) Decision {
	return Decision{Effect: Deny, Reason: reason}
}
