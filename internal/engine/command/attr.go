package command

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tidwall/sjson"

	"github.com/dshills/weave/internal/engine/ident"
)

// Attribute describes a style class: a name plus an optional color. The
// payload is opaque to integration; only the annotation editor and
// frontends interpret it.
type Attribute struct {
	Name  string
	Color string
}

// Canonical returns the stable byte serialization of the attribute.
// Colors are normalized to lowercase "#rrggbb" hex, so equivalent spellings
// canonicalize identically. A color that does not parse is a
// serialization failure.
func (a Attribute) Canonical() ([]byte, error) {
	out, err := sjson.Set("{}", "name", a.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if a.Color != "" {
		c, cerr := colorful.Hex(a.Color)
		if cerr != nil {
			return nil, fmt.Errorf("%w: color %q: %v", ErrSerialization, a.Color, cerr)
		}
		out, err = sjson.Set(out, "color", c.Hex())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
		}
	}
	return []byte(out), nil
}

// Normalize returns a copy with the color in canonical hex form.
func (a Attribute) Normalize() (Attribute, error) {
	if a.Color == "" {
		return a, nil
	}
	c, err := colorful.Hex(a.Color)
	if err != nil {
		return Attribute{}, fmt.Errorf("%w: color %q: %v", ErrSerialization, a.Color, err)
	}
	return Attribute{Name: a.Name, Color: c.Hex()}, nil
}

// Annotation is a half-open [Begin, End) range over the character sequence,
// tagged with the ID of a declared attribute.
type Annotation struct {
	Begin     ident.ID
	End       ident.ID
	Attribute ident.ID
}

// Canonical returns the stable byte serialization of the annotation.
func (a Annotation) Canonical() ([]byte, error) {
	out := "{}"
	fields := []struct {
		path string
		val  uint64
	}{
		{"begin.site", a.Begin.Site},
		{"begin.clock", a.Begin.Clock},
		{"end.site", a.End.Site},
		{"end.clock", a.End.Clock},
		{"attr.site", a.Attribute.Site},
		{"attr.clock", a.Attribute.Clock},
	}
	for _, f := range fields {
		var err error
		out, err = sjson.Set(out, f.path, f.val)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
		}
	}
	return []byte(out), nil
}
