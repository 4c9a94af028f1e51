// internal/benchmark/group.go
package benchmark

import "strings"

// Operation is one named unit of work. Fn is invoked once per iteration.
type Operation struct {
	Name        string
	Fn          func() error
	TrackMemory bool
}

// Group is an ordered collection of operations sharing a fixture directory.
// Setup runs once before the first operation; Teardown runs once the group
// finishes, including after a failed Setup or operation.
type Group struct {
	Name        string
	Description string
	Operations  []Operation
	Setup       func() error
	Teardown    func() error
}

// NewGroup returns an empty group.
func NewGroup(name, description string) *Group {
	return &Group{Name: name, Description: description}
}

// Add registers an operation without memory tracking.
func (g *Group) Add(name string, fn func() error) *Group {
	g.Operations = append(g.Operations, Operation{Name: name, Fn: fn})
	return g
}

// AddMemory registers an operation with memory tracking.
func (g *Group) AddMemory(name string, fn func() error) *Group {
	g.Operations = append(g.Operations, Operation{Name: name, Fn: fn, TrackMemory: true})
	return g
}

// OperationNames returns the operation names in declaration order.
func (g *Group) OperationNames() []string {
	names := make([]string, 0, len(g.Operations))
	for _, op := range g.Operations {
		names = append(names, op.Name)
	}
	return names
}

func (g *Group) validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return Configf("group name must not be empty")
	}
	if len(g.Operations) == 0 {
		return Configf("group %q has no operations", g.Name)
	}
	for i, op := range g.Operations {
		if strings.TrimSpace(op.Name) == "" {
			return Configf("group %q: operation %d has no name", g.Name, i+1)
		}
		if op.Fn == nil {
			return Configf("group %q: operation %q has no function", g.Name, op.Name)
		}
	}
	return nil
}
