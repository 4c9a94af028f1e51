// internal/groups/catalog.go
package groups

import (
	"strings"

	"github.com/mwiater/suitebench/internal/benchmark"
)

// Group names in catalog order.
const (
	NameParsing   = "parsing"
	NameExecution = "execution"
	NameModel     = "model"
	NameMemory    = "memory"
)

// Option configures the groups built by Resolve.
type Option func(*options)

type options struct {
	verboseStorage bool
}

// WithVerboseStorage forwards the memory group's badger log output to the
// standard logger.
func WithVerboseStorage(verbose bool) Option {
	return func(o *options) { o.verboseStorage = verbose }
}

type entry struct {
	name  string
	build func(dir string, opts ...Option) *benchmark.Group
}

var catalog = []entry{
	{NameParsing, func(dir string, _ ...Option) *benchmark.Group { return Parsing(dir) }},
	{NameExecution, func(dir string, _ ...Option) *benchmark.Group { return Execution(dir) }},
	{NameModel, func(dir string, _ ...Option) *benchmark.Group { return Model(dir) }},
	{NameMemory, Memory},
}

// Names returns the available group names in catalog order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for _, e := range catalog {
		names = append(names, e.name)
	}
	return names
}

// Describe returns the one-line description of each group, keyed by name.
// Building a group only registers its operations, so this touches no files.
func Describe() map[string]string {
	out := make(map[string]string, len(catalog))
	for _, e := range catalog {
		out[e.name] = e.build("").Description
	}
	return out
}

// Resolve builds the named groups against the fixture directory dir, in the
// order given. An empty selection means every group. Unknown names are
// configuration errors.
func Resolve(names []string, dir string, opts ...Option) ([]*benchmark.Group, error) {
	if len(names) == 0 {
		names = Names()
	}
	out := make([]*benchmark.Group, 0, len(names))
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		e, ok := lookup(name)
		if !ok {
			return nil, benchmark.Configf("unknown suite group %q (available: %s)", raw, strings.Join(Names(), ", "))
		}
		out = append(out, e.build(dir, opts...))
	}
	return out, nil
}

func lookup(name string) (entry, bool) {
	for _, e := range catalog {
		if e.name == name {
			return e, true
		}
	}
	return entry{}, false
}
