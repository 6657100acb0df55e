package referenceframe

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// JointSet is an ordered collection of unique joint names. It defines the coordinate basis of
// joint space values: the value at index i of a JointValues belongs to the joint at index i.
// A JointSet is never mutated after construction.
type JointSet struct {
	names []string
	index map[string]int
}

// NewJointSet returns a JointSet over the given names. Duplicates are dropped, keeping the first
// occurrence.
func NewJointSet(names ...string) *JointSet {
	unique := lo.Uniq(names)
	index := make(map[string]int, len(unique))
	for i, name := range unique {
		index[name] = i
	}
	return &JointSet{names: unique, index: index}
}

// EmptyJointSet returns a JointSet with no joints.
func EmptyJointSet() *JointSet {
	return NewJointSet()
}

// Count returns the number of joints.
func (js *JointSet) Count() int {
	if js == nil {
		return 0
	}
	return len(js.names)
}

// Names returns a copy of the joint names in order.
func (js *JointSet) Names() []string {
	return append([]string(nil), js.names...)
}

// At returns the joint name at index i.
func (js *JointSet) At(i int) string {
	return js.names[i]
}

// Contains reports whether name is part of the set.
func (js *JointSet) Contains(name string) bool {
	if js == nil {
		return false
	}
	_, ok := js.index[name]
	return ok
}

// TryGetIndexOf returns the index of name and whether it was found.
func (js *JointSet) TryGetIndexOf(name string) (int, bool) {
	if js == nil {
		return -1, false
	}
	i, ok := js.index[name]
	return i, ok
}

// GetIndexOf returns the index of name, or a not found error.
func (js *JointSet) GetIndexOf(name string) (int, error) {
	i, ok := js.TryGetIndexOf(name)
	if !ok {
		return -1, NewMissingJointError(name)
	}
	return i, nil
}

// Equal reports whether both sets hold the same names in the same order.
func (js *JointSet) Equal(other *JointSet) bool {
	if js == other {
		return true
	}
	if js == nil || other == nil || len(js.names) != len(other.names) {
		return false
	}
	for i, name := range js.names {
		if other.names[i] != name {
			return false
		}
	}
	return true
}

// IsSubset reports whether every joint of js is contained in other.
func (js *JointSet) IsSubset(other *JointSet) bool {
	if js == nil {
		return true
	}
	if other == nil {
		return js.Count() == 0
	}
	for _, name := range js.names {
		if !other.Contains(name) {
			return false
		}
	}
	return true
}

// IsSimilar reports whether both sets contain the same names, regardless of order.
func (js *JointSet) IsSimilar(other *JointSet) bool {
	if js == nil || other == nil {
		return js == other
	}
	return js.Count() == other.Count() && js.IsSubset(other)
}

// Append returns a new set with names added at the end. Names already present are skipped.
func (js *JointSet) Append(names ...string) *JointSet {
	combined := make([]string, 0, len(js.names)+len(names))
	combined = append(combined, js.names...)
	combined = append(combined, names...)
	return NewJointSet(combined...)
}

// Combine returns the union of both sets, ordered by first appearance (js first).
func (js *JointSet) Combine(other *JointSet) *JointSet {
	if other == nil {
		return js
	}
	return js.Append(other.names...)
}

// CombineJointSets returns the union of a and b. A nil operand yields the other operand.
func CombineJointSets(a, b *JointSet) *JointSet {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		return a.Combine(b)
	}
}

// Key returns a string identifying the ordered set, suitable as a map key.
func (js *JointSet) Key() string {
	return strings.Join(js.names, "\x00")
}

func (js *JointSet) String() string {
	if js == nil {
		return "<nil>"
	}
	return fmt.Sprintf("[%s]", strings.Join(js.names, ", "))
}
