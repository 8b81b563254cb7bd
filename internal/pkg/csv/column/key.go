package column

import (
	"sort"
)

// Key identifies one output column.
// The name is the only identity, the declared type is informational.
type Key struct {
	name         string
	declaredType string
	owners       map[string]struct{}
}

func newKey(name, declaredType, owner string) *Key {
	return &Key{name: name, declaredType: declaredType, owners: map[string]struct{}{owner: {}}}
}

func (k *Key) Name() string {
	return k.name
}

// DeclaredType of the first-seen declaration.
func (k *Key) DeclaredType() string {
	return k.declaredType
}

// Owners returns sorted identifiers of all types declaring an attribute of this name.
func (k *Key) Owners() []string {
	out := make([]string, 0, len(k.owners))
	for owner := range k.owners {
		out = append(out, owner)
	}
	sort.Strings(out)
	return out
}

func (k *Key) OwnedBy(typeID string) bool {
	_, ok := k.owners[typeID]
	return ok
}

// OwnedByAny returns true if one of the types, usually a type chain, is an owner.
func (k *Key) OwnedByAny(typeIDs []string) bool {
	for _, id := range typeIDs {
		if k.OwnedBy(id) {
			return true
		}
	}
	return false
}

func (k *Key) addOwner(typeID string) {
	k.owners[typeID] = struct{}{}
}
