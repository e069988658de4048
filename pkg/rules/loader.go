package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source supplies the rule table for a dispatch.
type Source interface {
	// Load returns the current rule table. Implementations are called
	// once per dispatch and may re-read backing storage each time.
	Load() (*Table, error)
}

// FileSource loads the rule table from a file on every Load call, so edits
// to the file take effect on the next dispatch. A caching variant would
// need mtime-based invalidation to preserve that property.
type FileSource struct {
	// Path is the rule-table document path.
	Path string
}

// NewFileSource creates a file-backed rule source.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load reads and parses the rule-table document.
func (s *FileSource) Load() (*Table, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &TableError{
			File:    s.Path,
			Message: "failed to read rule table",
			Cause:   err,
		}
	}

	table, err := Parse(data)
	if err != nil {
		if te, ok := err.(*TableError); ok {
			te.File = s.Path
			return nil, te
		}
		return nil, &TableError{
			File:    s.Path,
			Message: err.Error(),
		}
	}

	return table, nil
}

// StaticSource wraps a fixed table. Useful for tests and for embedders that
// manage reloading themselves.
type StaticSource struct {
	table *Table
}

// NewStaticSource creates a source that always returns the given table.
func NewStaticSource(table *Table) *StaticSource {
	return &StaticSource{table: table}
}

// Load returns the wrapped table.
func (s *StaticSource) Load() (*Table, error) {
	if s.table == nil {
		return nil, &TableError{Message: "no rule table configured"}
	}
	return s.table, nil
}

// Compile-time interface satisfaction checks.
var (
	_ Source = (*FileSource)(nil)
	_ Source = (*StaticSource)(nil)
)

// Parse parses a rule-table document from YAML or JSON bytes.
func Parse(data []byte) (*Table, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &TableError{
			Message: "failed to parse rule table",
			Cause:   err,
		}
	}
	if doc == nil {
		return nil, &TableError{Message: "rule table document is empty"}
	}

	table := &Table{
		categories: make(map[string][]Entry),
		vendors:    make(map[string]map[string][]Entry),
	}

	for key, value := range doc {
		if key == vendorDefinedKey {
			vendors, err := parseVendorSection(value)
			if err != nil {
				return nil, err
			}
			table.vendors = vendors
			continue
		}

		entries, err := parseEntryList(key, value)
		if err != nil {
			return nil, err
		}
		table.categories[key] = entries
	}

	return table, nil
}

// parseVendorSection parses the "VDPCI" section: vendor name -> sub-type
// code -> entry list.
func parseVendorSection(value any) (map[string]map[string][]Entry, error) {
	section, ok := value.(map[string]any)
	if !ok {
		return nil, &TableError{
			Message: fmt.Sprintf("%q section must be a mapping of vendors, got %T", vendorDefinedKey, value),
		}
	}

	vendors := make(map[string]map[string][]Entry, len(section))
	for vendor, subTypes := range section {
		subMap, ok := subTypes.(map[string]any)
		if !ok {
			return nil, &TableError{
				Message: fmt.Sprintf("vendor %q must map sub-type codes to rule lists, got %T", vendor, subTypes),
			}
		}

		vendors[vendor] = make(map[string][]Entry, len(subMap))
		for subType, list := range subMap {
			entries, err := parseEntryList(vendorDefinedKey+"."+vendor+"."+subType, list)
			if err != nil {
				return nil, err
			}
			vendors[vendor][subType] = entries
		}
	}

	return vendors, nil
}

// parseEntryList parses one ordered rule list. Per-entry field problems are
// recorded on the entry, not returned: a single bad rule must not take down
// the whole table.
func parseEntryList(key string, value any) ([]Entry, error) {
	list, ok := value.([]any)
	if !ok {
		return nil, &TableError{
			Message: fmt.Sprintf("%q must hold a list of rules, got %T", key, value),
		}
	}

	entries := make([]Entry, 0, len(list))
	for i, item := range list {
		rule, err := parseRule(item)
		if err != nil {
			entries = append(entries, Entry{Err: fmt.Errorf("%s[%d]: %w", key, i, err)})
			continue
		}
		entries = append(entries, Entry{Rule: rule})
	}

	return entries, nil
}

// parseRule decodes one rule entry.
func parseRule(item any) (Rule, error) {
	m, ok := item.(map[string]any)
	if !ok {
		return Rule{}, fmt.Errorf("%w: entry is %T, want mapping", ErrRuleField, item)
	}

	req, err := byteField(m, "request")
	if err != nil {
		return Rule{}, err
	}
	resp, err := byteField(m, "response")
	if err != nil {
		return Rule{}, err
	}

	rule := Rule{Request: req, Response: resp}

	if raw, ok := m["processing-delay"]; ok {
		delay, ok := intValue(raw)
		if !ok {
			return Rule{}, fmt.Errorf("%w: processing-delay is %T, want integer", ErrRuleField, raw)
		}
		rule.DelayMillis = int32(delay)
	}

	return rule, nil
}

// byteField extracts a required byte-list field.
func byteField(m map[string]any, name string) ([]byte, error) {
	raw, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", ErrRuleField, name)
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, want byte list", ErrRuleField, name, raw)
	}

	out := make([]byte, len(list))
	for i, v := range list {
		n, ok := intValue(v)
		if !ok || n < 0 || n > 0xFF {
			return nil, fmt.Errorf("%w: %q[%d] is not a byte value", ErrRuleField, name, i)
		}
		out[i] = byte(n)
	}

	return out, nil
}

// intValue coerces the integer types yaml.v3 produces.
func intValue(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}
