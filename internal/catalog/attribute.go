package catalog

import (
	"fmt"
	"strings"
)

// Attribute identifies a song field a catalog can be sorted on and a
// query can filter on.
type Attribute int

const (
	Unspecified Attribute = iota
	Name
	Artist
	Album
	Genre
	Year
	Charter
	Playlist
	Source
	Instrument

	attributeCount
)

// NumAttributes is the number of attributes, for tables indexed by
// Attribute.
const NumAttributes = int(attributeCount)

var attributeNames = [attributeCount]string{
	Unspecified: "unspecified",
	Name:        "name",
	Artist:      "artist",
	Album:       "album",
	Genre:       "genre",
	Year:        "year",
	Charter:     "charter",
	Playlist:    "playlist",
	Source:      "source",
	Instrument:  "instrument",
}

// Attributes returns every attribute in declaration order.
func Attributes() []Attribute {
	attrs := make([]Attribute, 0, attributeCount)
	for a := range attributeCount {
		attrs = append(attrs, a)
	}
	return attrs
}

func (a Attribute) String() string {
	if a < 0 || a >= attributeCount {
		return fmt.Sprintf("Attribute(%d)", int(a))
	}
	return attributeNames[a]
}

// Title returns the attribute name for display ("Artist").
func (a Attribute) Title() string {
	s := a.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Valid reports whether a is one of the declared attributes.
func (a Attribute) Valid() bool {
	return a >= 0 && a < attributeCount
}

// ParseAttribute parses an attribute name case-insensitively.
// "title" is accepted as an alias of name.
func ParseAttribute(s string) (Attribute, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "title" {
		return Name, nil
	}
	for a, name := range attributeNames {
		if name == s {
			return Attribute(a), nil
		}
	}
	return Unspecified, fmt.Errorf("unknown attribute %q", s)
}
