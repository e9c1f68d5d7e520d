package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dci-control-server/internal/database/models"
	"dci-control-server/internal/repository"
	"dci-control-server/internal/seed"
	"dci-control-server/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const document = `
teams:
  - name: admin
  - name: partner
users:
  - name: admin
    password: s3cret
    team: admin
    role: admin
  - name: bob
    password: hunter2
    team: partner
products:
  - name: OpenStack
    label: OPENSTACK
    team: admin
    teams: [partner]
componenttypes:
  - name: puddle
tests:
  - name: tempest
    data:
      url: https://example.com/tempest
`

func TestLoadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewRepositories(testutils.NewSQLiteDB(t))

	doc, err := seed.Parse(strings.NewReader(document))
	require.NoError(t, err)

	first, err := seed.Load(ctx, repos, doc)
	require.NoError(t, err)
	assert.Equal(t, seed.Result{
		models.KindTeam:          2,
		models.KindUser:          2,
		models.KindProduct:       1,
		models.KindComponentType: 1,
		models.KindTest:          1,
	}, first)

	second, err := seed.Load(ctx, repos, doc)
	require.NoError(t, err)
	assert.Empty(t, second)

	admin, err := repos.Users.FindOne(ctx, map[string]interface{}{"name": "admin"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("s3cret")))

	bob, err := repos.Users.FindOne(ctx, map[string]interface{}{"name": "bob"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, bob.Role)

	product, err := repos.Products.FindOne(ctx, map[string]interface{}{"name": "OpenStack"})
	require.NoError(t, err)
	granted, err := repos.ProductTeams.TeamIDs(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.TeamID, granted[0])
}

func TestLoadRejectsBadDocuments(t *testing.T) {
	cases := map[string]string{
		"unknown role":  "users:\n  - {name: x, password: y, team: t, role: root}\nteams:\n  - name: t\n",
		"unknown team":  "users:\n  - {name: x, password: y, team: nowhere}\n",
		"no password":   "teams:\n  - name: t\nusers:\n  - {name: x, team: t}\n",
		"missing label": "products:\n  - name: p\n",
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			db := testutils.NewSQLiteDB(t)
			repos := repository.NewRepositories(db)
			doc, err := seed.Parse(strings.NewReader(raw))
			require.NoError(t, err)

			_, err = seed.Load(context.Background(), repos, doc)
			require.Error(t, err)

			var count int64
			require.NoError(t, db.Model(&models.Team{}).Count(&count).Error)
			assert.Zero(t, count)
		})
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := seed.Parse(strings.NewReader("teamz:\n  - name: a\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))

	result, err := seed.LoadFile(context.Background(), repository.NewRepositories(testutils.NewSQLiteDB(t)), path)
	require.NoError(t, err)
	assert.Equal(t, 2, result[models.KindTeam])

	_, err = seed.LoadFile(context.Background(), nil, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
