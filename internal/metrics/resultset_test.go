package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultSetRecordCreatesLazilyInOrder(t *testing.T) {
	set := NewResultSet()
	assert.Zero(t, set.Len())

	set.Record("b", NewSample("b", time.Millisecond))
	set.Record("a", NewSample("a", time.Millisecond))
	set.Record("b", NewSample("b", 2*time.Millisecond))

	assert.Equal(t, []string{"b", "a"}, set.Names())
	b, ok := set.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, b.Runs())

	results := set.Results()
	require.Len(t, results, 2)
	assert.Equal(t, "b", results[0].Name())
	assert.Equal(t, "a", results[1].Name())

	_, ok = set.Get("missing")
	assert.False(t, ok)
}

func TestResultSetAddRejectsDuplicates(t *testing.T) {
	set := NewResultSet()
	require.NoError(t, set.Add(NewResult("x")))
	err := set.Add(NewResult("x"))
	assert.ErrorIs(t, err, ErrDuplicateResult)
	assert.Equal(t, 1, set.Len())
}

func TestResultSetMerge(t *testing.T) {
	first := NewResultSet()
	first.Record("parse small suite", NewSample("parse small suite", time.Millisecond))
	second := NewResultSet()
	second.Record("run simple suite (no output)", NewSample("run simple suite (no output)", time.Millisecond))
	second.Record("build suite from filesystem", NewSample("build suite from filesystem", time.Millisecond))

	require.NoError(t, first.Merge(second))
	assert.Equal(t, []string{
		"parse small suite",
		"run simple suite (no output)",
		"build suite from filesystem",
	}, first.Names())
}

func TestResultSetMergeCollisionAddsNothing(t *testing.T) {
	first := NewResultSet()
	first.Record("shared", NewSample("shared", time.Millisecond))
	second := NewResultSet()
	second.Record("unique", NewSample("unique", time.Millisecond))
	second.Record("shared", NewSample("shared", time.Millisecond))

	err := first.Merge(second)
	assert.ErrorIs(t, err, ErrDuplicateResult)
	assert.Equal(t, []string{"shared"}, first.Names())
}
