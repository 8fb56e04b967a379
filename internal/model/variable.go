package model

import "sort"

// Variable is a single environment variable assignment.
type Variable struct {
	Key   string
	Value string
}

// Snapshot is the variable set captured at one instant. Callers replace it
// wholesale after a write instead of mutating it.
type Snapshot []Variable

// Sorted returns a copy of the snapshot ordered by key.
func (s Snapshot) Sorted() Snapshot {
	out := make(Snapshot, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Keys returns the variable names in snapshot order.
func (s Snapshot) Keys() []string {
	keys := make([]string, len(s))
	for i, v := range s {
		keys[i] = v.Key
	}
	return keys
}

// Index returns the position of key, or -1.
func (s Snapshot) Index(key string) int {
	for i, v := range s {
		if v.Key == key {
			return i
		}
	}
	return -1
}
