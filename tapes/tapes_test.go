package tapes

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/reusee/amc/ir"
)

func TestFromString(t *testing.T) {
	got := FromString("  1 0\n11\t_x  ")
	if !slices.Equal(got, []ir.Symbol{"1", "0", "11", "_x"}) {
		t.Fatalf("got %v", got)
	}
	if got := FromString(" \n "); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestFromChars(t *testing.T) {
	got := FromChars("a bé")
	if !slices.Equal(got, []ir.Symbol{"a", " ", "b", "é"}) {
		t.Fatalf("got %v", got)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tape")
	if err := os.WriteFile(path, []byte("ab c\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		split Split
		want  []ir.Symbol
	}{
		{Words, []ir.Symbol{"ab", "c"}},
		{Chars, []ir.Symbol{"a", "b", " ", "c"}},
	}
	for _, c := range cases {
		t.Run(c.split.String(), func(t *testing.T) {
			got, err := ReadFile(c.split, path)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, c.want) {
				t.Fatalf("got %v", got)
			}
		})
	}

	if _, err := ReadFile(Words, filepath.Join(dir, "foo")); !os.IsNotExist(err) {
		t.Fatalf("got %v", err)
	}
}

func TestFormat(t *testing.T) {
	if str := Format([]ir.Symbol{"0", "", "1"}); str != "0||1" {
		t.Fatalf("got %q", str)
	}
	if str := Format(nil); str != "" {
		t.Fatalf("got %q", str)
	}
}
