package groups

import (
	"bytes"
	"context"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/suitebench/internal/benchmark"
	"github.com/mwiater/suitebench/internal/scenario"
)

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, scenario.WriteFixtures(dir))
	return dir
}

func TestNamesAndDescribe(t *testing.T) {
	assert.Equal(t, []string{"parsing", "execution", "model", "memory"}, Names())
	desc := Describe()
	all, err := Resolve(nil, "/fixtures")
	require.NoError(t, err)
	for _, g := range all {
		assert.NotEmpty(t, desc[g.Name], g.Name)
		assert.Equal(t, g.Description, desc[g.Name])
	}
}

func TestResolve(t *testing.T) {
	all, err := Resolve(nil, "/fixtures")
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i, g := range all {
		assert.Equal(t, Names()[i], g.Name)
	}

	some, err := Resolve([]string{" Memory", "parsing"}, "/fixtures")
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "memory", some[0].Name)
	assert.Equal(t, "parsing", some[1].Name)

	_, err = Resolve([]string{"parsing", "bogus"}, "/fixtures")
	assert.ErrorIs(t, err, benchmark.ErrConfiguration)
	assert.Contains(t, err.Error(), "bogus")
}

func TestOperationNamesAreUniqueAcrossCatalog(t *testing.T) {
	all, err := Resolve(nil, "/fixtures")
	require.NoError(t, err)
	seen := map[string]string{}
	for _, g := range all {
		for _, name := range g.OperationNames() {
			owner, dup := seen[name]
			assert.False(t, dup, "%q in %s and %s", name, owner, g.Name)
			seen[name] = g.Name
		}
	}
}

func TestEveryGroupRuns(t *testing.T) {
	dir := fixtureDir(t)
	all, err := Resolve(nil, dir)
	require.NoError(t, err)

	for _, g := range all {
		t.Run(g.Name, func(t *testing.T) {
			set, err := benchmark.NewRunner(benchmark.WithIterations(2)).Run(context.Background(), g)
			require.NoError(t, err)
			assert.Equal(t, g.OperationNames(), set.Names())
			for _, res := range set.Results() {
				assert.Equal(t, 2, res.Runs(), res.Name())
				_, tracked := res.PeakMemoryBytes()
				assert.Equal(t, g.Name == NameMemory, tracked, res.Name())
			}
		})
	}
}

func TestSelectingGroupsMergesResults(t *testing.T) {
	dir := fixtureDir(t)
	selected, err := Resolve([]string{NameParsing, NameExecution}, dir)
	require.NoError(t, err)

	set, err := benchmark.NewRunner().Run(context.Background(), selected...)
	require.NoError(t, err)
	assert.Equal(t, len(selected[0].Operations)+len(selected[1].Operations), set.Len())
}

func TestSelectingGroupTwiceCollides(t *testing.T) {
	dir := fixtureDir(t)
	selected, err := Resolve([]string{NameParsing, NameParsing}, dir)
	require.NoError(t, err)

	_, err = benchmark.NewRunner().Run(context.Background(), selected...)
	assert.ErrorIs(t, err, benchmark.ErrConfiguration)
}

func TestLargerInputTakesLonger(t *testing.T) {
	dir := fixtureDir(t)
	set, err := benchmark.NewRunner(benchmark.WithIterations(3)).Run(context.Background(), Parsing(dir))
	require.NoError(t, err)

	large, ok := set.Get("parse large suite")
	require.True(t, ok)
	small, ok := set.Get("parse small suite")
	require.True(t, ok)

	largeMean, err := large.MeanSeconds()
	require.NoError(t, err)
	smallMean, err := small.MeanSeconds()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, largeMean, smallMean)
}

func TestMissingFixturesFailFast(t *testing.T) {
	dir := t.TempDir()
	_, err := benchmark.NewRunner().Run(context.Background(), Parsing(dir))
	var opErr *benchmark.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "parse small suite", opErr.Operation)
	assert.Equal(t, 1, opErr.Iteration)
}

func TestModelTeardownRemovesOutput(t *testing.T) {
	dir := fixtureDir(t)
	g := Model(dir)
	require.NoError(t, g.Setup())
	st := g.Operations[2]
	require.NoError(t, st.Fn())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotEqual(t, outputFile, e.Name(), "fixture directory must not be written to")
	}
	require.NoError(t, g.Teardown())
	assert.Error(t, st.Fn(), "output is gone after teardown")
}

func TestVerboseStorageLogsBadger(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	dir := fixtureDir(t)
	selected, err := Resolve([]string{NameMemory}, dir, WithVerboseStorage(true))
	require.NoError(t, err)
	set, err := benchmark.NewRunner().Run(context.Background(), selected...)
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())

	buf.Reset()
	quiet := Memory(dir)
	require.NoError(t, quiet.Setup())
	require.NoError(t, quiet.Teardown())
	assert.NotContains(t, buf.String(), "[BADGER]", "badger stays silent unless verbose")
}

func TestMemoryStoreRequiresSetup(t *testing.T) {
	g := Memory(t.TempDir())
	assert.Error(t, g.Operations[2].Fn())
	assert.NoError(t, g.Teardown())
}
