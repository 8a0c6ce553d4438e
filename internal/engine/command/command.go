package command

import (
	"github.com/dshills/weave/internal/engine/ident"
)

// Kind discriminates the command variants.
type Kind uint8

// Command kinds.
const (
	KindInsert Kind = iota + 1
	KindDelete
	KindDecl
	KindDelDecl
	KindMark
	KindDelMark
)

var kindNames = map[Kind]string{
	KindInsert:  "insert",
	KindDelete:  "delete",
	KindDecl:    "decl",
	KindDelDecl: "del_decl",
	KindMark:    "mark",
	KindDelMark: "del_mark",
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is one replicated edit operation. ID identifies the command
// itself; for Insert it is also the ID of the first inserted character,
// and for Delete, DelDecl, and DelMark it names the target.
type Command struct {
	ID   ident.ID
	Kind Kind

	// KindInsert: a contiguous character run spliced between the two
	// origin hints. Character i of the run gets ID.Clock+i.
	After      ident.ID
	Before     ident.ID
	Characters []byte

	// KindDecl: the declared style payload.
	Attribute Attribute

	// KindMark: the annotated range.
	Mark Annotation
}

// Set is an ordered batch of commands.
type Set struct {
	Commands []Command
}

// Append adds a command to the batch.
func (s *Set) Append(c Command) {
	s.Commands = append(s.Commands, c)
}

// Len returns the number of commands in the batch.
func (s *Set) Len() int {
	return len(s.Commands)
}

// MakeInsert appends an insert command for chars between after and before,
// allocating one ID per character from site. It returns the ID of the last
// character, which callers chain as the after hint of a following insert.
func MakeInsert(set *Set, site *ident.Site, chars []byte, after, before ident.ID) (ident.ID, error) {
	first, last, err := site.GenerateIDBlock(len(chars))
	if err != nil {
		return ident.ID{}, err
	}
	set.Append(Command{
		ID:         first,
		Kind:       KindInsert,
		After:      after,
		Before:     before,
		Characters: chars,
	})
	return last, nil
}

// MakeDelete appends a delete command targeting id.
func MakeDelete(set *Set, id ident.ID) {
	set.Append(Command{ID: id, Kind: KindDelete})
}

// MakeDecl appends an attribute declaration and returns its ID.
func MakeDecl(set *Set, site *ident.Site, attr Attribute) ident.ID {
	id := site.GenerateID()
	set.Append(Command{ID: id, Kind: KindDecl, Attribute: attr})
	return id
}

// MakeDelDecl appends a declaration removal targeting id.
func MakeDelDecl(set *Set, id ident.ID) {
	set.Append(Command{ID: id, Kind: KindDelDecl})
}

// MakeMark appends an annotation mark and returns its ID.
func MakeMark(set *Set, site *ident.Site, ann Annotation) ident.ID {
	id := site.GenerateID()
	set.Append(Command{ID: id, Kind: KindMark, Mark: ann})
	return id
}

// MakeDelMark appends a mark removal targeting id.
func MakeDelMark(set *Set, id ident.ID) {
	set.Append(Command{ID: id, Kind: KindDelMark})
}
