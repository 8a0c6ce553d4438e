package scenario

import (
	"errors"
	"testing"
)

const tieBreakTOML = `
name = "tie-break"
expect = "aXY"

[[sites]]
id = 1

[[sites]]
id = 2

[[steps]]
site = 1
op = "insert"
at = 0
text = "a"

[[steps]]
op = "sync"

[[steps]]
site = 1
op = "insert"
at = 1
text = "X"

[[steps]]
site = 2
op = "insert"
at = 1
text = "Y"
`

func TestParse(t *testing.T) {
	sc, err := Parse([]byte(tieBreakTOML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sc.Name != "tie-break" || sc.Expect != "aXY" {
		t.Errorf("header = %q, %q", sc.Name, sc.Expect)
	}
	if len(sc.Sites) != 2 || len(sc.Steps) != 4 {
		t.Errorf("parsed %d sites, %d steps", len(sc.Sites), len(sc.Steps))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want error
	}{
		{
			"no sites",
			`name = "x"`,
			ErrNoSites,
		},
		{
			"unknown op",
			"[[sites]]\nid = 1\n[[steps]]\nsite = 1\nop = \"frob\"",
			ErrUnknownOp,
		},
		{
			"unknown site",
			"[[sites]]\nid = 1\n[[steps]]\nsite = 9\nop = \"insert\"\ntext = \"x\"",
			ErrUnknownSite,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.toml)); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseBadTOML(t *testing.T) {
	if _, err := Parse([]byte("not [valid toml")); err == nil {
		t.Fatal("Parse accepted malformed TOML")
	}
}
