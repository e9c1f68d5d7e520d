package authz

import (
	"context"
	"testing"

	"dci-control-server/internal/database/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	teamA = uuid.New()
	teamB = uuid.New()

	admin = &Caller{UserID: uuid.New(), Name: "admin", Role: models.RoleAdmin, TeamID: uuid.New()}
	po    = &Caller{UserID: uuid.New(), Name: "po", Role: models.RoleProductOwner, TeamID: teamA}
	user  = &Caller{UserID: uuid.New(), Name: "user", Role: models.RoleUser, TeamID: teamB}
)

func TestAuthorize_AdminAllowedEverything(t *testing.T) {
	ops := []Operation{OpCreate, OpRead, OpUpdate, OpDelete, OpAssociate}
	for kind := range policies {
		for _, op := range ops {
			d := Authorize(admin, op, Target{Kind: kind, TeamID: uuid.New()})
			assert.Equal(t, Allow, d.Effect, "%s %s", op, kind)
		}
	}
}

func TestAuthorize_ListNeverDenied(t *testing.T) {
	for kind := range policies {
		for _, caller := range []*Caller{admin, po, user} {
			d := Authorize(caller, OpList, Target{Kind: kind})
			assert.Equal(t, Filter, d.Effect)
			assert.Equal(t, caller.IsAdmin(), d.Scope.Unrestricted)
			if !caller.IsAdmin() {
				assert.Equal(t, caller.TeamID, d.Scope.TeamID)
			}
		}
	}
}

func TestAuthorize_Products(t *testing.T) {
	owned := Target{Kind: models.KindProduct, TeamID: teamA}
	granted := Target{Kind: models.KindProduct, TeamID: teamA, GrantedTeams: []uuid.UUID{teamB}}
	foreign := Target{Kind: models.KindProduct, TeamID: uuid.New()}

	tests := []struct {
		name   string
		caller *Caller
		op     Operation
		target Target
		effect Effect
	}{
		{"po creates product for own team", po, OpCreate, owned, Allow},
		{"po cannot create product for another team", po, OpCreate, foreign, Deny},
		{"po updates owned product", po, OpUpdate, owned, Allow},
		{"po cannot update foreign product", po, OpUpdate, foreign, Deny},
		{"po deletes owned product", po, OpDelete, owned, Allow},
		{"po manages teams of owned product", po, OpAssociate, owned, Allow},
		{"po cannot read foreign product", po, OpRead, foreign, Deny},
		{"user cannot create product", user, OpCreate, Target{Kind: models.KindProduct, TeamID: teamB}, Deny},
		{"user cannot delete product", user, OpDelete, granted, Deny},
		{"user cannot manage product teams", user, OpAssociate, granted, Deny},
		{"user reads granted product", user, OpRead, granted, Allow},
		{"user cannot read ungranted product", user, OpRead, owned, Deny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Authorize(tt.caller, tt.op, tt.target)
			assert.Equal(t, tt.effect, d.Effect)
			if tt.effect == Deny {
				assert.NotEmpty(t, d.Reason)
			}
		})
	}
}

func TestAuthorize_TeamOwnedKinds(t *testing.T) {
	own := Target{Kind: models.KindRemoteCI, TeamID: teamB}
	other := Target{Kind: models.KindRemoteCI, TeamID: teamA}

	assert.Equal(t, Allow, Authorize(user, OpCreate, own).Effect)
	assert.Equal(t, Deny, Authorize(user, OpCreate, other).Effect)
	assert.Equal(t, Allow, Authorize(user, OpUpdate, own).Effect)
	assert.Equal(t, Deny, Authorize(user, OpRead, other).Effect)

	// job states are append only
	assert.Equal(t, Deny, Authorize(user, OpUpdate, Target{Kind: models.KindJobState, TeamID: teamB}).Effect)
	assert.Equal(t, Allow, Authorize(user, OpCreate, Target{Kind: models.KindJobState, TeamID: teamB}).Effect)

	// users are managed by admins
	assert.Equal(t, Deny, Authorize(po, OpCreate, Target{Kind: models.KindUser, TeamID: teamA}).Effect)
	assert.Equal(t, Allow, Authorize(po, OpRead, Target{Kind: models.KindUser, TeamID: teamA}).Effect)
}

func TestAuthorize_Catalog(t *testing.T) {
	target := Target{Kind: models.KindComponent}
	assert.Equal(t, Allow, Authorize(po, OpCreate, target).Effect)
	assert.Equal(t, Allow, Authorize(po, OpDelete, target).Effect)
	assert.Equal(t, Deny, Authorize(user, OpCreate, target).Effect)
	assert.Equal(t, Allow, Authorize(user, OpRead, target).Effect)
}

func TestAuthorize_Teams(t *testing.T) {
	assert.True(t, Visible(user, Target{Kind: models.KindTeam, TeamID: teamB}))
	assert.False(t, Visible(user, Target{Kind: models.KindTeam, TeamID: teamA}))
	assert.Equal(t, Deny, Authorize(po, OpCreate, Target{Kind: models.KindTeam, TeamID: teamA}).Effect)
}

func TestAuthorize_Edges(t *testing.T) {
	assert.Equal(t, Deny, Authorize(nil, OpRead, Target{Kind: models.KindTest}).Effect)
	assert.Equal(t, Deny, Authorize(po, OpRead, Target{Kind: "widget"}).Effect)
	assert.Equal(t, Deny, Authorize(po, Operation("launch"), Target{Kind: models.KindTest}).Effect)
	assert.Equal(t, "filter", Filter.String())
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	got, ok := FromContext(NewContext(context.Background(), po))
	require.True(t, ok)
	assert.Equal(t, po, got)
}
