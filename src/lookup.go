package main

// LookupTable holds the legal values of the coded column in display order,
// plus the code -> label mapping derived from them once at construction.
type LookupTable struct {
	entries []LookupEntry
	labels  map[int]string
	unknown string
}

func newLookupTable(entries []LookupEntry, unknown string) *LookupTable {
	lt := &LookupTable{
		entries: append([]LookupEntry(nil), entries...),
		labels:  make(map[int]string, len(entries)),
		unknown: unknown,
	}
	for _, e := range lt.entries {
		lt.labels[e.Code] = e.Label
	}
	return lt
}

// Label returns the label for code, or the unknown sentinel.
func (lt *LookupTable) Label(code int) string {
	if l, ok := lt.labels[code]; ok {
		return l
	}
	return lt.unknown
}

// IndexOf returns the position of code in entry order, or -1.
func (lt *LookupTable) IndexOf(code int) int {
	for i, e := range lt.entries {
		if e.Code == code {
			return i
		}
	}
	return -1
}

// CodeAt returns the code of the i-th entry.
func (lt *LookupTable) CodeAt(i int) (int, bool) {
	if i < 0 || i >= len(lt.entries) {
		return 0, false
	}
	return lt.entries[i].Code, true
}

// Labels lists the labels in entry order, as shown by the dropdown.
func (lt *LookupTable) Labels() []string {
	out := make([]string, len(lt.entries))
	for i, e := range lt.entries {
		out[i] = e.Label
	}
	return out
}
