// internal/scenario/execute.go
package scenario

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"sort"
	"strconv"
	"strings"
	"time"
)

const maxKeywordDepth = 100

// Options controls a run.
type Options struct {
	// Output receives Log keyword messages. Nil discards them.
	Output io.Writer
	// Variables override suite and resource variables.
	Variables map[string]string
}

// Run executes every test of s and its children sequentially. Test failures
// are reported in the result; the error is reserved for unusable input.
func Run(s *Suite, opts Options) (*ExecutionResult, error) {
	if s == nil {
		return nil, errors.New("run: nil suite")
	}
	out := opts.Output
	if out == nil {
		out = io.Discard
	}
	return &ExecutionResult{
		Generator: "suitebench",
		Generated: time.Now().UTC(),
		Suite:     runSuite(s, out, opts.Variables),
	}, nil
}

func runSuite(s *Suite, out io.Writer, overrides map[string]string) *SuiteResult {
	start := time.Now()
	res := &SuiteResult{Name: s.Name, Source: s.Source, Status: StatusPass}

	vars := map[string]any{"SUITE_NAME": s.Name}
	for _, imp := range s.imports {
		for k, v := range imp.Variables {
			vars[k] = v
		}
	}
	for k, v := range s.Variables {
		vars[k] = v
	}
	for k, v := range overrides {
		vars[k] = v
	}
	suiteScope := &scope{vars: vars}
	ex := &executor{out: out, keywords: s.keywordTable(), suite: suiteScope}

	for _, tc := range s.Tests {
		tr := ex.runTest(tc)
		res.Tests = append(res.Tests, tr)
		if tr.Status == StatusPass {
			res.Pass++
		} else {
			res.Fail++
		}
	}
	for _, child := range s.Suites {
		cr := runSuite(child, out, overrides)
		res.Suites = append(res.Suites, cr)
		res.Pass += cr.Pass
		res.Fail += cr.Fail
	}
	if res.Fail > 0 {
		res.Status = StatusFail
	}
	res.ElapsedMS = float64(time.Since(start).Microseconds()) / 1000
	return res
}

type scope struct {
	parent *scope
	vars   map[string]any
}

func (s *scope) lookup(name string) (any, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (s *scope) child() *scope {
	return &scope{parent: s, vars: make(map[string]any)}
}

type executor struct {
	out      io.Writer
	keywords map[string]*Keyword
	suite    *scope
	logs     []string
}

func (e *executor) runTest(tc *TestCase) *TestResult {
	start := time.Now()
	tr := &TestResult{Name: tc.Name, Tags: tc.Tags, Status: StatusPass}
	e.logs = nil

	if len(tc.Steps) == 0 {
		tr.Status, tr.Message = StatusFail, "test contains no steps"
	} else {
		sc := e.suite.child()
		sc.vars["TEST_NAME"] = tc.Name
		for _, st := range tc.Steps {
			if err := e.runStep(sc, st, 0); err != nil {
				tr.Status, tr.Message = StatusFail, err.Error()
				break
			}
		}
	}
	tr.Logs = e.logs
	tr.ElapsedMS = float64(time.Since(start).Microseconds()) / 1000
	return tr
}

func (e *executor) runStep(sc *scope, st Step, depth int) error {
	args, err := e.resolveArgs(sc, st.Args)
	if err != nil {
		return err
	}
	value, err := e.call(sc, st.Keyword, args, depth)
	if err != nil {
		return err
	}
	if st.Assign != "" {
		sc.vars[variableName(st.Assign)] = value
	}
	return nil
}

func (e *executor) call(sc *scope, name string, args []any, depth int) (any, error) {
	if depth > maxKeywordDepth {
		return nil, fmt.Errorf("maximum keyword nesting depth %d exceeded", maxKeywordDepth)
	}
	key := normalize(name)
	if kw, ok := e.keywords[key]; ok {
		return e.callUser(kw, args, depth)
	}
	if fn, ok := builtins[key]; ok {
		return fn(e, sc, args, depth)
	}
	return nil, fmt.Errorf("no keyword with name '%s' found", name)
}

func (e *executor) callUser(kw *Keyword, args []any, depth int) (any, error) {
	if len(args) != len(kw.Args) {
		return nil, fmt.Errorf("keyword '%s' expected %d argument(s), got %d", kw.Name, len(kw.Args), len(args))
	}
	sc := e.suite.child()
	for i, name := range kw.Args {
		sc.vars[variableName(name)] = args[i]
	}
	for _, st := range kw.Steps {
		if err := e.runStep(sc, st, depth+1); err != nil {
			return nil, err
		}
	}
	if kw.Return == "" {
		return nil, nil
	}
	return e.resolve(sc, kw.Return)
}

func (e *executor) resolveArgs(sc *scope, raw []string) ([]any, error) {
	args := make([]any, 0, len(raw))
	for _, a := range raw {
		v, err := e.resolve(sc, a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

// resolve substitutes ${NAME} references. An argument that is exactly one
// reference keeps the variable's value, so lists and dictionaries pass
// through unchanged.
func (e *executor) resolve(sc *scope, raw string) (any, error) {
	if strings.HasPrefix(raw, "${") && strings.HasSuffix(raw, "}") && strings.Count(raw, "${") == 1 {
		return e.lookup(sc, raw[2:len(raw)-1])
	}
	var b strings.Builder
	rest := raw
	for {
		i := strings.Index(rest, "${")
		if i < 0 {
			b.WriteString(rest)
			break
		}
		j := strings.Index(rest[i:], "}")
		if j < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:i])
		v, err := e.lookup(sc, rest[i+2:i+j])
		if err != nil {
			return nil, err
		}
		b.WriteString(stringify(v))
		rest = rest[i+j+1:]
	}
	return b.String(), nil
}

func (e *executor) lookup(sc *scope, name string) (any, error) {
	switch name {
	case "EMPTY":
		return "", nil
	case "SPACE":
		return " ", nil
	}
	if v, ok := sc.lookup(name); ok {
		return v, nil
	}
	return nil, fmt.Errorf("variable '${%s}' not found", name)
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case string:
		return t
	case []string:
		return "[" + strings.Join(t, ", ") + "]"
	case map[string]string:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+t[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprint(t)
	}
}

type builtin func(e *executor, sc *scope, args []any, depth int) (any, error)

var builtinTable = []struct {
	name string
	fn   builtin
}{
	{"Log", builtinLog},
	{"Set Variable", builtinSetVariable},
	{"Catenate", builtinCatenate},
	{"Create List", builtinCreateList},
	{"Create Dictionary", builtinCreateDictionary},
	{"Should Be Equal", builtinShouldBeEqual},
	{"Should Contain", builtinShouldContain},
	{"No Operation", func(*executor, *scope, []any, int) (any, error) { return nil, nil }},
	{"Fail", builtinFail},
	{"Repeat Keyword", builtinRepeatKeyword},
}

var builtins map[string]builtin

func init() {
	builtins = make(map[string]builtin, len(builtinTable))
	for _, b := range builtinTable {
		builtins[normalize(b.name)] = b.fn
	}
}

// Builtins lists the names of the library keywords.
func Builtins() []string {
	names := make([]string, 0, len(builtinTable))
	for _, b := range builtinTable {
		names = append(names, b.name)
	}
	return names
}

func arity(name string, args []any, minArgs, maxArgs int) error {
	if len(args) < minArgs || (maxArgs >= 0 && len(args) > maxArgs) {
		if maxArgs < 0 {
			return fmt.Errorf("keyword '%s' expected at least %d argument(s), got %d", name, minArgs, len(args))
		}
		if minArgs == maxArgs {
			return fmt.Errorf("keyword '%s' expected %d argument(s), got %d", name, minArgs, len(args))
		}
		return fmt.Errorf("keyword '%s' expected %d to %d argument(s), got %d", name, minArgs, maxArgs, len(args))
	}
	return nil
}

func builtinLog(e *executor, _ *scope, args []any, _ int) (any, error) {
	if err := arity("Log", args, 1, 2); err != nil {
		return nil, err
	}
	level := "INFO"
	if len(args) == 2 {
		level = strings.ToUpper(stringify(args[1]))
	}
	msg := stringify(args[0])
	e.logs = append(e.logs, level+": "+msg)
	_, err := fmt.Fprintf(e.out, "[%s] %s\n", level, msg)
	return nil, err
}

func builtinSetVariable(_ *executor, _ *scope, args []any, _ int) (any, error) {
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		return args[0], nil
	default:
		list := make([]string, 0, len(args))
		for _, a := range args {
			list = append(list, stringify(a))
		}
		return list, nil
	}
}

func builtinCatenate(_ *executor, _ *scope, args []any, _ int) (any, error) {
	sep := " "
	parts := make([]string, 0, len(args))
	for i, a := range args {
		s := stringify(a)
		if i == 0 && strings.HasPrefix(s, "SEPARATOR=") {
			sep = strings.TrimPrefix(s, "SEPARATOR=")
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep), nil
}

func builtinCreateList(_ *executor, _ *scope, args []any, _ int) (any, error) {
	list := make([]string, 0, len(args))
	for _, a := range args {
		list = append(list, stringify(a))
	}
	return list, nil
}

func builtinCreateDictionary(_ *executor, _ *scope, args []any, _ int) (any, error) {
	dict := make(map[string]string, len(args))
	for _, a := range args {
		if m, ok := a.(map[string]string); ok {
			maps.Copy(dict, m)
			continue
		}
		k, v, ok := strings.Cut(stringify(a), "=")
		if !ok {
			return nil, fmt.Errorf("invalid dictionary item '%s': expected key=value", stringify(a))
		}
		dict[k] = v
	}
	return dict, nil
}

func builtinShouldBeEqual(_ *executor, _ *scope, args []any, _ int) (any, error) {
	if err := arity("Should Be Equal", args, 2, 3); err != nil {
		return nil, err
	}
	first, second := stringify(args[0]), stringify(args[1])
	if first == second {
		return nil, nil
	}
	if len(args) == 3 {
		return nil, errors.New(stringify(args[2]))
	}
	return nil, fmt.Errorf("%s != %s", first, second)
}

func builtinShouldContain(_ *executor, _ *scope, args []any, _ int) (any, error) {
	if err := arity("Should Contain", args, 2, 3); err != nil {
		return nil, err
	}
	item := stringify(args[1])
	var found bool
	switch c := args[0].(type) {
	case []string:
		for _, v := range c {
			if v == item {
				found = true
				break
			}
		}
	case map[string]string:
		_, found = c[item]
	default:
		found = strings.Contains(stringify(c), item)
	}
	if found {
		return nil, nil
	}
	if len(args) == 3 {
		return nil, errors.New(stringify(args[2]))
	}
	return nil, fmt.Errorf("'%s' does not contain '%s'", stringify(args[0]), item)
}

func builtinFail(_ *executor, _ *scope, args []any, _ int) (any, error) {
	msg := "AssertionError"
	if len(args) > 0 {
		msg = stringify(args[0])
	}
	return nil, errors.New(msg)
}

func builtinRepeatKeyword(e *executor, sc *scope, args []any, depth int) (any, error) {
	if err := arity("Repeat Keyword", args, 2, -1); err != nil {
		return nil, err
	}
	times, err := parseTimes(stringify(args[0]))
	if err != nil {
		return nil, err
	}
	name := stringify(args[1])
	for i := 0; i < times; i++ {
		if _, err := e.call(sc, name, args[2:], depth+1); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// parseTimes accepts "3", "3 times" and "3x".
func parseTimes(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(s, "times"), "x"))
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid repeat count '%s'", s)
	}
	return n, nil
}
