package mongo

import (
	"testing"

	"matricare/maternal-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// The (midwifeId, motherId) uniqueness must be scoped to active assignments:
// a completed assignment must not block re-assigning the same mother to the
// same midwife for a later pregnancy.
func TestAssignmentPairIndexScopedToActive(t *testing.T) {
	models := assignmentIndexModels()
	require.NotEmpty(t, models)

	pairIndex := models[0]
	keys, ok := pairIndex.Keys.(bson.D)
	require.True(t, ok)
	require.Len(t, keys, 2)
	assert.Equal(t, "midwifeId", keys[0].Key)
	assert.Equal(t, "motherId", keys[1].Key)

	opts := pairIndex.Options
	require.NotNil(t, opts)
	require.NotNil(t, opts.Unique)
	assert.True(t, *opts.Unique)

	filter, ok := opts.PartialFilterExpression.(bson.M)
	require.True(t, ok, "pair index must carry a partial filter")
	assert.Equal(t, string(domain.AssignmentActive), filter["status"])
}
