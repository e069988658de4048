package rules

import "fmt"

// vendorDefinedKey is the top-level key whose rules are keyed by vendor
// name and sub-type code instead of a flat list.
const vendorDefinedKey = "VDPCI"

// Table is an in-memory view of one loaded rule-table document. Tables are
// immutable once parsed; a Source produces a fresh one per load cycle.
type Table struct {
	categories map[string][]Entry
	vendors    map[string]map[string][]Entry
}

// CategoryRules returns the ordered rule entries for a non-vendor category.
func (t *Table) CategoryRules(category string) ([]Entry, error) {
	entries, ok := t.categories[category]
	if !ok {
		return nil, &TableError{
			Message: fmt.Sprintf("no rules for category %q", category),
		}
	}
	return entries, nil
}

// VendorRules returns the ordered rule entries for a vendor-defined
// (vendor, sub-type) pair. The sub-type code is string-typed because it is
// a document key.
func (t *Table) VendorRules(vendor, subType string) ([]Entry, error) {
	subMap, ok := t.vendors[vendor]
	if !ok {
		return nil, &TableError{
			Message: fmt.Sprintf("no rules for vendor %q", vendor),
		}
	}

	entries, ok := subMap[subType]
	if !ok {
		return nil, &TableError{
			Message: fmt.Sprintf("no rules for vendor %q sub-type %q", vendor, subType),
		}
	}

	return entries, nil
}

// Categories returns the non-vendor category names present in the table.
func (t *Table) Categories() []string {
	names := make([]string, 0, len(t.categories))
	for name := range t.categories {
		names = append(names, name)
	}
	return names
}
