// Package param implements the ParameterMap contract of spec.md §3/§6: an
// immutable-after-load, access-tracking keyed store of bool/int64/float64/string
// values built from a line-oriented "key = value" text file (with "[table]"
// headings and "#"/";" comments) plus command-line "key=value" overrides.
//
// The grammar is deliberately not YAML/TOML/JSON: headings flatten into a
// dotted key prefix rather than nesting, and the map tracks which keys were
// ever read so callers can warn about dead configuration at shutdown. It is a
// direct port of the C++ ParameterMap this project was distilled from.
package param

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

var nameRe = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

type entry struct {
	value    string
	accessed bool
}

// Map is a parsed, immutable collection of parameters. Access via Bool, Int64,
// Float64, String, or the *Or variants records that a key was read.
type Map struct {
	entries map[string]*entry
}

// Parse reads a parameter file from r and applies cliArgs ("key=value" tokens)
// as overrides, exactly as ParameterMap's constructor does for a FILE* and argv.
func Parse(r io.Reader, cliArgs []string) (*Map, error) {
	m := &Map{entries: make(map[string]*entry)}

	tables := make(map[string]bool)  // every registered (sub)table name, any depth
	explicit := make(map[string]bool) // table names that appeared as an explicit [heading]

	scanner := bufio.NewScanner(r)
	curTable := ""
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") {
			if !strings.HasSuffix(trimmed, "]") {
				return nil, fmt.Errorf("param: line %d: problem parsing a parameter-table header", lineNo)
			}
			heading := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			if heading == "" {
				return nil, fmt.Errorf("param: line %d: empty parameter-table headers (e.g. []) aren't allowed", lineNo)
			}
			if explicit[heading] {
				return nil, fmt.Errorf("param: the [%s] header appears more than once", heading)
			}
			if _, ok := m.entries[heading]; ok {
				return nil, fmt.Errorf("param: the [%s] header collides with a parameter of the same name", heading)
			}
			if msg := processFullName(heading, tables, m.entries); msg != "" {
				return nil, fmt.Errorf("param: problem encountered while parsing [%s] table header: %s", heading, msg)
			}
			explicit[heading] = true
			tables[heading] = true
			curTable = heading
			continue
		}

		key, value, ok := splitKeyValue(trimmed)
		if !ok {
			continue
		}
		if strings.Contains(key, ".") {
			return nil, fmt.Errorf("param: line %d: the %q parameter contains a '.'; this isn't allowed in the parameter file", lineNo, key)
		}
		fullName := key
		if curTable != "" {
			fullName = curTable + "." + key
		}
		if msg := processFullName(fullName, tables, m.entries); msg != "" {
			if curTable == "" {
				return nil, fmt.Errorf("param: problem encountered while parsing the %q parameter: %s", fullName, msg)
			}
			return nil, fmt.Errorf("param: problem encountered while parsing the %q parameter in the [%s] parameter-table (aka %q): %s",
				key, curTable, fullName, msg)
		}
		m.entries[fullName] = &entry{value: value}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("param: reading parameter file: %w", err)
	}

	for _, arg := range cliArgs {
		key, value, ok := splitKeyValue(arg)
		if !ok {
			continue
		}
		if msg := processFullName(key, tables, m.entries); msg != "" {
			return nil, fmt.Errorf("param: problem parsing %q parameter from the command-line: %s", key, msg)
		}
		m.entries[key] = &entry{value: value}
	}

	return m, nil
}

// splitKeyValue mirrors Try_Extract_Key_Value_View: an '=' that is the first or
// last character, or missing entirely, yields no key/value pair.
func splitKeyValue(s string) (key, value string, ok bool) {
	pos := strings.IndexByte(s, '=')
	if pos <= 0 || pos+1 == len(s) {
		return "", "", false
	}
	return strings.TrimSpace(s[:pos]), strings.TrimSpace(s[pos+1:]), true
}

// processFullName validates a dotted parameter/table name and registers every
// ancestor prefix as a table, rejecting collisions between table and parameter
// names. Returns "" when the name is fine, otherwise a human-readable reason.
func processFullName(fullName string, tables map[string]bool, entries map[string]*entry) string {
	if !nameRe.MatchString(fullName) {
		return "contains an unallowed character"
	}
	if strings.HasPrefix(fullName, ".") {
		return "start with a '.' character"
	}
	if strings.HasSuffix(fullName, ".") {
		return "ends with a '.' character"
	}
	if strings.Contains(fullName, "..") {
		return "contains contiguous '.' characters"
	}

	parts := strings.Split(fullName, ".")
	for i := len(parts) - 1; i > 0; i-- {
		prefix := strings.Join(parts[:i], ".")
		if tables[prefix] {
			return ""
		}
		tables[prefix] = true
		if _, ok := entries[prefix]; ok {
			return fmt.Sprintf("the (sub)table name collides with the existing %q parameter", prefix)
		}
	}
	return ""
}

// Size reports the number of stored parameters.
func (m *Map) Size() int {
	return len(m.entries)
}

// Has reports whether the parameter exists, without recording access.
func (m *Map) Has(key string) bool {
	_, ok := m.entries[key]
	return ok
}

func (m *Map) lookup(key string) (*entry, bool) {
	e, ok := m.entries[key]
	return e, ok
}

// Bool returns the parameter's value interpreted as a bool, recording access.
func (m *Map) Bool(key string) (bool, error) {
	e, ok := m.lookup(key)
	if !ok {
		return false, fmt.Errorf("param: the %q parameter was not specified", key)
	}
	v, terr := tryBool(e.value)
	if terr != errNone {
		return false, &TypeError{Param: key, Value: e.value, Dtype: "bool", Err: terr}
	}
	e.accessed = true
	return v, nil
}

// Int64 returns the parameter's value interpreted as an int64, recording access.
func (m *Map) Int64(key string) (int64, error) {
	e, ok := m.lookup(key)
	if !ok {
		return 0, fmt.Errorf("param: the %q parameter was not specified", key)
	}
	v, terr := tryInt64(e.value)
	if terr != errNone {
		return 0, &TypeError{Param: key, Value: e.value, Dtype: "int64", Err: terr}
	}
	e.accessed = true
	return v, nil
}

// Float64 returns the parameter's value interpreted as a float64, recording access.
func (m *Map) Float64(key string) (float64, error) {
	e, ok := m.lookup(key)
	if !ok {
		return 0, fmt.Errorf("param: the %q parameter was not specified", key)
	}
	v, terr := tryFloat64(e.value)
	if terr != errNone {
		return 0, &TypeError{Param: key, Value: e.value, Dtype: "float64", Err: terr}
	}
	e.accessed = true
	return v, nil
}

// String returns the parameter's raw string value, recording access. Every
// value has a string representation, so this never fails on type grounds.
func (m *Map) String(key string) (string, error) {
	e, ok := m.lookup(key)
	if !ok {
		return "", fmt.Errorf("param: the %q parameter was not specified", key)
	}
	e.accessed = true
	return e.value, nil
}

// BoolOr returns the parameter's bool value, or def if it was not specified.
// It still aborts (via the returned behavior of Bool) on a type mismatch by
// panicking, matching the source's CHOLLA_ERROR-on-type-mismatch contract.
func (m *Map) BoolOr(key string, def bool) bool {
	if !m.Has(key) {
		return def
	}
	v, err := m.Bool(key)
	if err != nil {
		panic(err)
	}
	return v
}

func (m *Map) Int64Or(key string, def int64) int64 {
	if !m.Has(key) {
		return def
	}
	v, err := m.Int64(key)
	if err != nil {
		panic(err)
	}
	return v
}

func (m *Map) IntOr(key string, def int) int {
	return int(m.Int64Or(key, int64(def)))
}

func (m *Map) Float64Or(key string, def float64) float64 {
	if !m.Has(key) {
		return def
	}
	v, err := m.Float64(key)
	if err != nil {
		panic(err)
	}
	return v
}

func (m *Map) StringOr(key string, def string) string {
	if !m.Has(key) {
		return def
	}
	v, err := m.String(key)
	if err != nil {
		panic(err)
	}
	return v
}

// WarnUnusedParameters reports parameters that were never read via Bool, Int64,
// Float64, String, or an *Or accessor. When abortOnWarning is true the warnings
// are returned as an error rather than merely logged by the caller.
func (m *Map) WarnUnusedParameters(ignore map[string]bool, abortOnWarning bool) (unused []string, err error) {
	for key := range m.entries {
		if ignore[key] {
			continue
		}
		e := m.entries[key]
		if !e.accessed {
			unused = append(unused, key)
		}
	}
	sort.Strings(unused)
	if abortOnWarning && len(unused) > 0 {
		return unused, fmt.Errorf("param: %d unused parameter(s): %s", len(unused), strings.Join(unused, ", "))
	}
	return unused, nil
}
