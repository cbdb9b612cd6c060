package gen

// EnumEntry is one surviving value -> name mapping.
type EnumEntry struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

// EnumTable maps normalised enum values to their canonical name.
// The first name inserted for a value wins; entries keep insertion order.
type EnumTable struct {
	index   map[string]int
	entries []EnumEntry
}

// NewEnumTable creates an empty table.
func NewEnumTable() *EnumTable {
	return &EnumTable{index: make(map[string]int)}
}

// InsertIfAbsent records name for value unless value is already present.
// It reports whether the entry was inserted.
func (t *EnumTable) InsertIfAbsent(value, name string) bool {
	if _, ok := t.index[value]; ok {
		return false
	}
	t.index[value] = len(t.entries)
	t.entries = append(t.entries, EnumEntry{Value: value, Name: name})
	return true
}

// Lookup returns the name that owns value.
func (t *EnumTable) Lookup(value string) (string, bool) {
	i, ok := t.index[value]
	if !ok {
		return "", false
	}
	return t.entries[i].Name, true
}

// Len returns the number of entries.
func (t *EnumTable) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries in insertion order.
func (t *EnumTable) Entries() []EnumEntry {
	out := make([]EnumEntry, len(t.entries))
	copy(out, t.entries)
	return out
}
