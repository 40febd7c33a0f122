package dwca

import "strings"

// Field maps a term URI to a column of a table.
type Field struct {
	Term  string
	Index int
}

// Table is a core or an extension table of an archive.
type Table struct {
	// RowType is the rowType URI of the table.
	RowType string

	// Fields are kept in the order of the descriptor.
	Fields []Field
}

// Index returns the column of a term. The first field with the term wins.
func (t *Table) Index(term string) (int, bool) {
	if t == nil {
		return 0, false
	}
	for _, f := range t.Fields {
		if f.Term == term {
			return f.Index, true
		}
	}
	return 0, false
}

// Meta is a typed form of meta.xml.
type Meta struct {
	// Core is nil if the descriptor has no core table.
	Core *Table

	// Extensions in the order of the descriptor.
	Extensions []Table
}

// Extension returns the first extension with a row type containing marker.
func (m *Meta) Extension(marker string) (*Table, bool) {
	if m == nil {
		return nil, false
	}
	for i := range m.Extensions {
		if strings.Contains(m.Extensions[i].RowType, marker) {
			return &m.Extensions[i], true
		}
	}
	return nil, false
}

// Column resolves a term to a column in the core table (RowCore marker) or
// in the first extension matching the marker. Other extensions of the same
// kind are never consulted, even if the first one lacks the term.
func (m *Meta) Column(marker, term string) (int, bool) {
	if m == nil {
		return 0, false
	}
	if marker == RowCore {
		return m.Core.Index(term)
	}
	ext, ok := m.Extension(marker)
	if !ok {
		return 0, false
	}
	return ext.Index(term)
}
