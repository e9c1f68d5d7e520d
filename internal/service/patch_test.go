package service

import (
	"testing"

	"dci-control-server/internal/database/models"
	"dci-control-server/internal/schema"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestPatchLeavesItemUntouched(t *testing.T) {
	owner, other := uuid.New(), uuid.New()
	product := &models.Product{Name: "p", Label: "P", TeamID: &owner}

	patched, err := patch(product, schema.Payload{"team_id": other.String()})
	require.NoError(t, err)

	assert.Equal(t, other, *patched.TeamID)
	assert.Equal(t, owner, *product.TeamID)
	assert.NotSame(t, product.TeamID, patched.TeamID)

	topic := &models.Topic{Name: "t", Data: datatypes.JSONMap{"k": "before"}}
	patchedTopic, err := patch(topic, schema.Payload{"data": map[string]interface{}{"k": "after"}})
	require.NoError(t, err)

	assert.Equal(t, "after", patchedTopic.Data["k"])
	assert.Equal(t, "before", topic.Data["k"])
}
