package testutils

import (
	"testing"

	"dci-control-server/internal/authz"
	"dci-control-server/internal/database/models"
	"dci-control-server/internal/etag"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// World is the baseline data most service and API tests start from:
// an admin, a product owner and a user, each in their own team, and one
// product owned by the product owner's team.
type World struct {
	AdminTeam *models.Team
	POTeam    *models.Team
	UserTeam  *models.Team

	Admin *models.User
	PO    *models.User
	User  *models.User

	Product *models.Product
}

// Caller returns the authorization identity of u.
func (w *World) Caller(u *models.User) *authz.Caller {
	return &authz.Caller{UserID: u.ID, Name: u.Name, Role: u.Role, TeamID: u.TeamID}
}

// Insert stores rows directly, assigning etags the way the stores do.
func Insert(t testing.TB, db *gorm.DB, rows ...models.Resource) {
	t.Helper()
	for _, row := range rows {
		base := row.GetBase()
		if base.Etag == "" {
			base.Etag = etag.New()
		}
		if err := db.Omit(clause.Associations).Create(row).Error; err != nil {
			t.Fatalf("insert %T: %v", row, err)
		}
	}
}

// SeedWorld creates the baseline World in db. User passwords equal user names.
func SeedWorld(t testing.TB, db *gorm.DB) *World {
	t.Helper()
	f := NewFactorySet()

	w := &World{
		AdminTeam: f.Team.WithName("admin"),
		POTeam:    f.Team.WithName("product-owner-team"),
		UserTeam:  f.Team.WithName("user-team"),
	}
	Insert(t, db, w.AdminTeam, w.POTeam, w.UserTeam)

	w.Admin = f.User.WithName("admin", w.AdminTeam.ID, models.RoleAdmin)
	w.PO = f.User.WithName("product_owner", w.POTeam.ID, models.RoleProductOwner)
	w.User = f.User.WithName("user", w.UserTeam.ID, models.RoleUser)
	Insert(t, db, w.Admin, w.PO, w.User)

	w.Product = f.Product.Create(w.POTeam.ID)
	Insert(t, db, w.Product)

	return w
}
