package testutils

import (
	"testing"

	"dci-control-server/internal/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedWorld(t *testing.T) {
	db := NewSQLiteDB(t)
	w := SeedWorld(t, db)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)

	assert.NotEmpty(t, w.Product.Etag)
	assert.Equal(t, models.StateActive, w.Product.State)
	assert.Equal(t, w.POTeam.ID, *w.Product.TeamID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(w.User.Password), []byte("user")))

	caller := w.Caller(w.PO)
	assert.Equal(t, models.RoleProductOwner, caller.Role)
	assert.Equal(t, w.POTeam.ID, caller.TeamID)
}

func TestNewSQLiteDB_Isolated(t *testing.T) {
	first := NewSQLiteDB(t)
	Insert(t, first, NewFactorySet().Team.Create())

	second := NewSQLiteDB(t)
	var count int64
	require.NoError(t, second.Model(&models.Team{}).Count(&count).Error)
	assert.Zero(t, count)
}
