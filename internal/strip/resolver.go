package strip

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Identity is the stable rendering identity of a workspace: the numeric key
// that orders the strip and addresses switch commands, and the label shown
// inside the button.
type Identity struct {
	Key   int
	Label string
}

// Resolver parses workspace names into identities, memoized by the window
// manager's workspace id. Entries are write-once for the process lifetime:
// a workspace renamed in place keeps its first identity, and the cache only
// grows. Known limitation, kept deliberately small.
type Resolver struct {
	placeholder string
	cache       map[int64]Identity
}

// NewResolver returns a Resolver that substitutes placeholder when a name
// yields no label glyphs.
func NewResolver(placeholder string) *Resolver {
	return &Resolver{
		placeholder: placeholder,
		cache:       make(map[int64]Identity),
	}
}

// Resolve returns the identity for the workspace id, parsing rawName on
// first sighting only; later calls ignore rawName entirely.
//
// Names are either a bare ordinal ("3") or "<ordinal>;<label>". The label
// keeps only non-ASCII runes (icon glyphs); when nothing survives the
// placeholder is substituted. An ordinal part that does not parse as a
// non-negative integer is an error.
func (r *Resolver) Resolve(id int64, rawName string) (Identity, error) {
	if identity, ok := r.cache[id]; ok {
		return identity, nil
	}

	identity, err := parseName(rawName, r.placeholder)
	if err != nil {
		return Identity{}, err
	}
	r.cache[id] = identity
	return identity, nil
}

func parseName(rawName, placeholder string) (Identity, error) {
	numPart, rest, hasLabel := strings.Cut(rawName, ";")

	key, err := parseKey(numPart)
	if err != nil {
		return Identity{}, err
	}
	if !hasLabel {
		return Identity{Key: key, Label: rawName}, nil
	}

	var label strings.Builder
	for _, r := range rest {
		if r > unicode.MaxASCII {
			label.WriteRune(r)
		}
	}
	if label.Len() == 0 {
		return Identity{Key: key, Label: placeholder}, nil
	}
	return Identity{Key: key, Label: label.String()}, nil
}

// parseKey parses a workspace ordinal. Ordinals are non-negative; nothing
// is trimmed or normalized first.
func parseKey(s string) (int, error) {
	key, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid workspace ordinal %q: %w", s, err)
	}
	if key < 0 {
		return 0, fmt.Errorf("invalid workspace ordinal %q: negative", s)
	}
	return key, nil
}
