// internal/metrics/resultset.go
package metrics

import "fmt"

// ResultSet maps benchmark names to results, preserving insertion order.
// It has a single owner at a time and is not safe for concurrent use.
type ResultSet struct {
	order   []string
	results map[string]*Result
}

// NewResultSet returns an empty set.
func NewResultSet() *ResultSet {
	return &ResultSet{results: make(map[string]*Result)}
}

// Len returns the number of results.
func (s *ResultSet) Len() int { return len(s.order) }

// Names returns result names in insertion order.
func (s *ResultSet) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Get returns the result stored under name.
func (s *ResultSet) Get(name string) (*Result, bool) {
	r, ok := s.results[name]
	return r, ok
}

// Results returns the results in insertion order.
func (s *ResultSet) Results() []*Result {
	out := make([]*Result, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.results[name])
	}
	return out
}

// Record stores the sample under name, creating the result on first use.
func (s *ResultSet) Record(name string, sample Sample) *Result {
	r, ok := s.results[name]
	if !ok {
		r = NewResult(name)
		s.results[name] = r
		s.order = append(s.order, name)
	}
	r.Record(sample)
	return r
}

// Add inserts r. Names must be unique within the set.
func (s *ResultSet) Add(r *Result) error {
	if _, exists := s.results[r.Name()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateResult, r.Name())
	}
	s.results[r.Name()] = r
	s.order = append(s.order, r.Name())
	return nil
}

// Merge appends every result of other after the existing ones. Nothing is
// added when any name collides.
func (s *ResultSet) Merge(other *ResultSet) error {
	for _, name := range other.order {
		if _, exists := s.results[name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateResult, name)
		}
	}
	for _, r := range other.Results() {
		if err := s.Add(r); err != nil {
			return err
		}
	}
	return nil
}
