package command

import (
	"encoding/base64"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/weave/internal/engine/ident"
)

// Encode renders the batch as a JSON array with a stable field layout.
// Character runs are base64 so arbitrary bytes survive the trip.
func Encode(s Set) ([]byte, error) {
	out := "[]"
	for i := range s.Commands {
		obj, err := encodeCommand(&s.Commands[i])
		if err != nil {
			return nil, err
		}
		out, err = sjson.SetRaw(out, "-1", obj)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
		}
	}
	return []byte(out), nil
}

// Decode parses a JSON command batch produced by Encode.
func Decode(data []byte) (Set, error) {
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return Set{}, fmt.Errorf("%w: not an array", ErrBadWire)
	}
	var set Set
	for _, elem := range root.Array() {
		cmd, err := decodeCommand(elem)
		if err != nil {
			return Set{}, err
		}
		set.Append(cmd)
	}
	return set, nil
}

func encodeCommand(c *Command) (string, error) {
	set := func(obj, path string, val any) string {
		out, err := sjson.Set(obj, path, val)
		if err != nil {
			return obj
		}
		return out
	}

	obj := "{}"
	obj = set(obj, "id.site", c.ID.Site)
	obj = set(obj, "id.clock", c.ID.Clock)
	obj = set(obj, "kind", c.Kind.String())

	switch c.Kind {
	case KindInsert:
		obj = set(obj, "after.site", c.After.Site)
		obj = set(obj, "after.clock", c.After.Clock)
		obj = set(obj, "before.site", c.Before.Site)
		obj = set(obj, "before.clock", c.Before.Clock)
		obj = set(obj, "chars", base64.StdEncoding.EncodeToString(c.Characters))
	case KindDecl:
		obj = set(obj, "attr.name", c.Attribute.Name)
		if c.Attribute.Color != "" {
			obj = set(obj, "attr.color", c.Attribute.Color)
		}
	case KindMark:
		obj = set(obj, "begin.site", c.Mark.Begin.Site)
		obj = set(obj, "begin.clock", c.Mark.Begin.Clock)
		obj = set(obj, "end.site", c.Mark.End.Site)
		obj = set(obj, "end.clock", c.Mark.End.Clock)
		obj = set(obj, "mark_attr.site", c.Mark.Attribute.Site)
		obj = set(obj, "mark_attr.clock", c.Mark.Attribute.Clock)
	case KindDelete, KindDelDecl, KindDelMark:
		// Target is the command ID itself.
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownKind, c.Kind)
	}
	return obj, nil
}

func decodeCommand(elem gjson.Result) (Command, error) {
	cmd := Command{ID: decodeID(elem, "id")}

	kind := elem.Get("kind").String()
	switch kind {
	case "insert":
		cmd.Kind = KindInsert
		cmd.After = decodeID(elem, "after")
		cmd.Before = decodeID(elem, "before")
		chars, err := base64.StdEncoding.DecodeString(elem.Get("chars").String())
		if err != nil {
			return Command{}, fmt.Errorf("%w: chars: %v", ErrBadWire, err)
		}
		cmd.Characters = chars
	case "delete":
		cmd.Kind = KindDelete
	case "decl":
		cmd.Kind = KindDecl
		cmd.Attribute = Attribute{
			Name:  elem.Get("attr.name").String(),
			Color: elem.Get("attr.color").String(),
		}
	case "del_decl":
		cmd.Kind = KindDelDecl
	case "mark":
		cmd.Kind = KindMark
		cmd.Mark = Annotation{
			Begin:     decodeID(elem, "begin"),
			End:       decodeID(elem, "end"),
			Attribute: decodeID(elem, "mark_attr"),
		}
	case "del_mark":
		cmd.Kind = KindDelMark
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return cmd, nil
}

func decodeID(elem gjson.Result, path string) ident.ID {
	return ident.ID{
		Site:  elem.Get(path + ".site").Uint(),
		Clock: elem.Get(path + ".clock").Uint(),
	}
}
