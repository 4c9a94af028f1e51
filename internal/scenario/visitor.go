// internal/scenario/visitor.go
package scenario

// Visitor walks a suite tree depth first. Returning false from StartSuite
// skips that suite's tests and children; EndSuite is still called.
type Visitor interface {
	StartSuite(s *Suite) bool
	VisitTest(t *TestCase)
	EndSuite(s *Suite)
}

// Visit walks s with v.
func (s *Suite) Visit(v Visitor) {
	if v.StartSuite(s) {
		for _, tc := range s.Tests {
			v.VisitTest(tc)
		}
		for _, child := range s.Suites {
			child.Visit(v)
		}
	}
	v.EndSuite(s)
}

// TestCounter counts suites, tests and steps.
type TestCounter struct {
	Suites int
	Tests  int
	Steps  int
}

func (c *TestCounter) StartSuite(*Suite) bool {
	c.Suites++
	return true
}

func (c *TestCounter) VisitTest(t *TestCase) {
	c.Tests++
	c.Steps += len(t.Steps)
}

func (c *TestCounter) EndSuite(*Suite) {}
