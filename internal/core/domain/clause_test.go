package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClauseLibraryIsWellFormed(t *testing.T) {
	library := ClauseLibrary()
	require.NotEmpty(t, library)

	seen := make(map[string]bool)
	for _, clause := range library {
		assert.NotEmpty(t, clause.ID)
		assert.NotEmpty(t, clause.Name)
		assert.NotEmpty(t, clause.Queries, "clause %s has no queries", clause.ID)
		assert.False(t, seen[clause.ID], "duplicate clause ID %s", clause.ID)
		seen[clause.ID] = true
	}
}

func TestClauseByID(t *testing.T) {
	clause := ClauseByID("force_majeure")
	require.NotNil(t, clause)
	assert.Equal(t, "Force Majeure", clause.Name)

	assert.Nil(t, ClauseByID("boilerplate"))
	assert.Nil(t, ClauseByID(""))
}
