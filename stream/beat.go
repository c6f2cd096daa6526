package stream

import "encoding/binary"

// A Beat is one transfer on a stream: a value for some or all of the fields
// the carrying layout defines. A beat delivered through a connection carries
// exactly the realized field set; omitted fields are absent, not zeroed.
type Beat struct {
	values map[string][]byte
}

// NewBeat creates an empty beat.
func NewBeat() *Beat {
	return &Beat{
		values: make(map[string][]byte),
	}
}

// Set assigns raw bytes to a field.
func (b *Beat) Set(name string, value []byte) *Beat {
	b.values[name] = value
	return b
}

// SetUint assigns an integer value to a field.
func (b *Beat) SetUint(name string, value uint64) *Beat {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, value)
	b.values[name] = buf
	return b
}

// SetFlag assigns a single-bit value to a field.
func (b *Beat) SetFlag(name string, value bool) *Beat {
	if value {
		return b.SetUint(name, 1)
	}
	return b.SetUint(name, 0)
}

// Get returns the raw bytes of a field and whether the beat carries it.
func (b *Beat) Get(name string) ([]byte, bool) {
	v, found := b.values[name]
	return v, found
}

// Uint returns the integer value of a field, 0 if absent.
func (b *Beat) Uint(name string) uint64 {
	v, found := b.values[name]
	if !found {
		return 0
	}

	if len(v) >= 8 {
		return binary.LittleEndian.Uint64(v[:8])
	}

	buf := make([]byte, 8)
	copy(buf, v)
	return binary.LittleEndian.Uint64(buf)
}

// Flag returns the boolean value of a field, false if absent.
func (b *Beat) Flag(name string) bool {
	return b.Uint(name) != 0
}

// Has tells if the beat carries the named field.
func (b *Beat) Has(name string) bool {
	_, found := b.values[name]
	return found
}

// FieldNames returns the names of the fields the beat carries.
func (b *Beat) FieldNames() []string {
	names := make([]string, 0, len(b.values))
	for n := range b.values {
		names = append(names, n)
	}

	return names
}

// project returns a copy of the beat restricted to the given layout.
func (b *Beat) project(l Layout) *Beat {
	out := NewBeat()
	for _, f := range l.Fields() {
		if v, found := b.values[f.Name]; found {
			out.values[f.Name] = v
		}
	}

	return out
}
