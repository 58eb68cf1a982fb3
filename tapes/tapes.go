package tapes

import (
	"fmt"
	"os"
	"strings"

	"github.com/reusee/amc/ir"
)

// Split selects how text is cut into cells.
type Split uint8

const (
	// Words separates cells by white space.
	Words Split = iota + 1
	// Chars makes one cell of every character.
	Chars
)

func (s Split) String() string {
	switch s {
	case Words:
		return "words"
	case Chars:
		return "chars"
	}
	return fmt.Sprintf("Split(%d)", s)
}

func FromString(text string) []ir.Symbol {
	fields := strings.Fields(text)
	ret := make([]ir.Symbol, 0, len(fields))
	for _, field := range fields {
		ret = append(ret, ir.Symbol(field))
	}
	return ret
}

func FromChars(text string) []ir.Symbol {
	ret := make([]ir.Symbol, 0, len(text))
	for _, r := range text {
		ret = append(ret, ir.Symbol(string(r)))
	}
	return ret
}

// Parse splits text according to split.
func Parse(split Split, text string) []ir.Symbol {
	switch split {
	case Words:
		return FromString(text)
	case Chars:
		return FromChars(text)
	}
	panic(fmt.Errorf("bad split: %v", split))
}

// ReadFile loads a tape from path. A line break ending a chars file is not a cell.
func ReadFile(split Split, path string) ([]ir.Symbol, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := string(content)
	if split == Chars {
		text = strings.TrimSuffix(text, "\n")
		text = strings.TrimSuffix(text, "\r")
	}
	return Parse(split, text), nil
}

// Format joins cells the way results are displayed: blank cells are empty.
func Format(cells []ir.Symbol) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(string(cell))
	}
	return b.String()
}
