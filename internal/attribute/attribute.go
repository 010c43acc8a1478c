// Package attribute defines the configuration attribute model.
//
// An Attribute describes one user-facing configuration item: its display
// metadata, its live value, and the behaviour class that governs whether a
// front end may show or edit it. A Set is the owning collection of all
// attributes, keyed by attribute name.
package attribute

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
)

// Behaviour classifies how a front end treats an attribute.
type Behaviour int

const (
	// BehaviourEdit marks an attribute the user may change.
	BehaviourEdit Behaviour = iota

	// BehaviourDisplay marks an attribute shown read-only.
	BehaviourDisplay

	// BehaviourHide marks an attribute never presented to the user.
	BehaviourHide
)

// behaviourNames are the wire names used in definition documents.
var behaviourNames = map[Behaviour]string{
	BehaviourEdit:    "Edit",
	BehaviourDisplay: "Display",
	BehaviourHide:    "Hide",
}

// String returns the wire name of the behaviour.
func (b Behaviour) String() string {
	if name, ok := behaviourNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Behaviour(%d)", int(b))
}

// ParseBehaviour converts a wire name into a Behaviour.
func ParseBehaviour(name string) (Behaviour, error) {
	for b, n := range behaviourNames {
		if n == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown behaviour %q", name)
}

// MarshalJSON encodes the behaviour as its wire name.
func (b Behaviour) MarshalJSON() ([]byte, error) {
	name, ok := behaviourNames[b]
	if !ok {
		return nil, fmt.Errorf("unknown behaviour %d", int(b))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a behaviour from its wire name.
func (b *Behaviour) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("behaviour must be a string: %w", err)
	}
	parsed, err := ParseBehaviour(name)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Attribute is one configurable item. Current holds the live value as text
// regardless of the attribute's logical type; Default is the fallback value;
// Format is a regular expression the value is expected to satisfy.
type Attribute struct {
	Prompt  string    `json:"prompt"`
	Tooltip string    `json:"tooltip"`
	Current string    `json:"current"`
	Default string    `json:"default"`
	Format  string    `json:"format"`
	Action  Behaviour `json:"action"`
}

// MatchesFormat reports whether value satisfies the attribute's Format
// pattern. The pattern is anchored to the full value. Enforcement is left to
// presentation layers; loading and reconciliation never call this.
func (a Attribute) MatchesFormat(value string) (bool, error) {
	re, err := regexp.Compile("^(?:" + a.Format + ")$")
	if err != nil {
		return false, fmt.Errorf("invalid format pattern %q: %w", a.Format, err)
	}
	return re.MatchString(value), nil
}

// Set maps attribute keys to their definitions. Keys are case-sensitive and
// unordered. A Set is not safe for concurrent mutation.
type Set map[string]Attribute

// FilterByBehaviour returns a new Set holding exactly the entries whose
// Action equals b. The receiver is not modified.
func (s Set) FilterByBehaviour(b Behaviour) Set {
	out := make(Set)
	for k, a := range s {
		if a.Action == b {
			out[k] = a
		}
	}
	return out
}

// Keys returns the attribute keys in sorted order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, a := range s {
		out[k] = a
	}
	return out
}
