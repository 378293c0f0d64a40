package state

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// GUID identifies a DDS writer or reader: a 12-byte participant prefix
// followed by a 4-byte entity id. It is comparable and used as a map key.
type GUID struct {
	Prefix   [12]byte
	EntityID [4]byte
}

// String renders the GUID as "<prefix hex>|<entity id hex>".
func (g GUID) String() string {
	return hex.EncodeToString(g.Prefix[:]) + "|" + hex.EncodeToString(g.EntityID[:])
}

// ParseGUID parses the form produced by GUID.String.
func ParseGUID(s string) (GUID, error) {
	var g GUID

	prefix, entity, ok := strings.Cut(strings.TrimSpace(s), "|")
	if !ok {
		return g, fmt.Errorf("guid %q: missing '|' separator", s)
	}

	p, err := hex.DecodeString(prefix)
	if err != nil || len(p) != len(g.Prefix) {
		return g, fmt.Errorf("guid %q: prefix must be %d hex bytes", s, len(g.Prefix))
	}
	e, err := hex.DecodeString(entity)
	if err != nil || len(e) != len(g.EntityID) {
		return g, fmt.Errorf("guid %q: entity id must be %d hex bytes", s, len(g.EntityID))
	}

	copy(g.Prefix[:], p)
	copy(g.EntityID[:], e)
	return g, nil
}

// Less orders GUIDs bytewise, prefix first.
func (g GUID) Less(other GUID) bool {
	for i := range g.Prefix {
		if g.Prefix[i] != other.Prefix[i] {
			return g.Prefix[i] < other.Prefix[i]
		}
	}
	for i := range g.EntityID {
		if g.EntityID[i] != other.EntityID[i] {
			return g.EntityID[i] < other.EntityID[i]
		}
	}
	return false
}
