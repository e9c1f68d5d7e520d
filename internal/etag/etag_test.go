package etag

import (
	"testing"

	apperrors "dci-control-server/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		tag := New()
		assert.Len(t, tag, 36)
		_, dup := seen[tag]
		assert.False(t, dup)
		seen[tag] = struct{}{}
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "abc", Normalize("abc"))
	assert.Equal(t, "abc", Normalize(`"abc"`))
	assert.Equal(t, "abc", Normalize(` W/"abc" `))
	assert.Equal(t, "", Normalize(""))
}

func TestCheck(t *testing.T) {
	current := New()

	tests := []struct {
		name      string
		presented string
		conflict  bool
	}{
		{name: "matching token", presented: current},
		{name: "quoted matching token", presented: `"` + current + `"`},
		{name: "missing token", presented: "", conflict: true},
		{name: "stale token", presented: New(), conflict: true},
		{name: "case differs", presented: "X" + current[1:], conflict: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check("product", current, tt.presented)
			if tt.conflict {
				assert.True(t, apperrors.IsConflict(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}
