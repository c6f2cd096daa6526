// Package stream models packetized stream endpoints and the configuration
// time contracts between them. A connection between two endpoints is fixed
// when the design elaborates; a vocabulary mismatch refuses to elaborate
// rather than surfacing at run time.
package stream

import (
	"fmt"
	"sort"
)

// A Field is one named lane of a stream with a fixed bit width.
type Field struct {
	Name  string
	Width int
}

// A Layout is the ordered field vocabulary of an endpoint.
type Layout struct {
	fields []Field
	index  map[string]int
}

// NewLayout creates a layout from the given fields. Duplicate names and
// non-positive widths are configuration errors.
func NewLayout(fields ...Field) Layout {
	l := Layout{
		index: make(map[string]int),
	}

	for _, f := range fields {
		if f.Name == "" {
			panic("stream field must have a name")
		}

		if f.Width < 1 {
			panic(fmt.Sprintf(
				"stream field %s must have a positive width", f.Name))
		}

		if _, dup := l.index[f.Name]; dup {
			panic("duplicate stream field " + f.Name)
		}

		l.index[f.Name] = len(l.fields)
		l.fields = append(l.fields, f)
	}

	return l
}

// Fields returns the fields of the layout in declaration order.
func (l Layout) Fields() []Field {
	return l.fields
}

// FieldNames returns the field names in declaration order.
func (l Layout) FieldNames() []string {
	names := make([]string, len(l.fields))
	for i, f := range l.fields {
		names[i] = f.Name
	}

	return names
}

// FieldByName looks a field up by name.
func (l Layout) FieldByName(name string) (Field, bool) {
	i, found := l.index[name]
	if !found {
		return Field{}, false
	}

	return l.fields[i], true
}

// Has tells if the layout defines the named field.
func (l Layout) Has(name string) bool {
	_, found := l.index[name]
	return found
}

// Without returns the layout with the named fields removed. Removing a field
// the layout does not define is a configuration error.
func (l Layout) Without(names ...string) Layout {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		if !l.Has(n) {
			panic("cannot omit field " + n + ": not in the source vocabulary")
		}
		drop[n] = true
	}

	kept := []Field{}
	for _, f := range l.fields {
		if !drop[f.Name] {
			kept = append(kept, f)
		}
	}

	return NewLayout(kept...)
}

// subtract returns the layout with the given fields removed, ignoring names
// the layout does not define.
func (l Layout) subtract(drop map[string]bool) Layout {
	kept := []Field{}
	for _, f := range l.fields {
		if !drop[f.Name] {
			kept = append(kept, f)
		}
	}

	return NewLayout(kept...)
}

// EqualSet tells if two layouts define the same fields with the same widths,
// ignoring order.
func (l Layout) EqualSet(other Layout) bool {
	if len(l.fields) != len(other.fields) {
		return false
	}

	for _, f := range l.fields {
		of, found := other.FieldByName(f.Name)
		if !found || of.Width != f.Width {
			return false
		}
	}

	return true
}

// Describe returns a stable, sorted rendering of the layout for reports and
// error messages.
func (l Layout) Describe() string {
	names := l.FieldNames()
	sort.Strings(names)

	s := ""
	for i, n := range names {
		if i > 0 {
			s += ", "
		}
		f, _ := l.FieldByName(n)
		s += fmt.Sprintf("%s(%d)", f.Name, f.Width)
	}

	return s
}
