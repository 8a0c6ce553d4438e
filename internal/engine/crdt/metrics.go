package crdt

import "github.com/rivo/uniseg"

// DisplayWidth returns the rendered text's width in terminal cells.
func (s String) DisplayWidth() int {
	return uniseg.StringWidth(s.Text())
}

// GraphemeCount returns the number of grapheme clusters in the rendered
// text. Characters are stored as bytes, so a multi-byte cluster spans
// several graph nodes but counts once here.
func (s String) GraphemeCount() int {
	return uniseg.GraphemeClusterCount(s.Text())
}

// LineWidth returns line n's width in terminal cells.
func (s String) LineWidth(n int) (int, error) {
	text, err := s.LineText(n)
	if err != nil {
		return 0, err
	}
	return uniseg.StringWidth(text), nil
}
