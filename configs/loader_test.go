package configs

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

var testSchema = `
str?: string
list?: [...int]
`

func TestLoaderAssignFirst(t *testing.T) {
	loader := NewLoader([]string{"test.cue"}, testSchema)

	var str string
	err := loader.AssignFirst("str", &str)
	if err != nil {
		t.Fatal(err)
	}
	if str != "bar" {
		t.Fatalf("got %q", str)
	}

	var list []int
	err = loader.AssignFirst("list", &list)
	if err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%v", list); str != "[1 2 3]" {
		t.Fatalf("got %s", str)
	}

	err = loader.AssignFirst("not", &list)
	if !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}

}

func TestLoaderEntries(t *testing.T) {
	loader := NewLoader([]string{
		"test.cue",
		"test2.cue",
	}, testSchema)

	var strs, files []string
	for entry, err := range loader.Entries("str") {
		if err != nil {
			t.Fatal(err)
		}
		var s string
		if err := entry.Decode(&s); err != nil {
			t.Fatal(err)
		}
		strs = append(strs, s)
		files = append(files, entry.File)
	}
	if str := fmt.Sprintf("%v", strs); str != "[bar foo]" {
		t.Fatalf("got %q", str)
	}
	if str := fmt.Sprintf("%v", files); str != "[test.cue test2.cue]" {
		t.Fatalf("got %q", str)
	}

	// list is only in the first file
	n := 0
	for range loader.Entries("list") {
		n++
	}
	if n != 1 {
		t.Fatalf("got %d", n)
	}

	strs = strs[:0]
	for str := range All[string](loader, "str") {
		strs = append(strs, str)
	}
	if str := fmt.Sprintf("%v", strs); str != "[bar foo]" {
		t.Fatalf("got %q", str)
	}
}

func TestUnknownField(t *testing.T) {
	loader := NewLoader([]string{
		"bad.cue",
	}, testSchema)
	var str string
	err := loader.AssignFirst("unknown_field", &str)
	if err == nil {
		t.Fatal("should error")
	}
	t.Logf("%v", err)
}

func TestMissingFile(t *testing.T) {
	loader := NewLoader([]string{"not-exists.cue"}, testSchema)
	if paths := loader.Paths(); len(paths) != 1 || paths[0] != "not-exists.cue" {
		t.Fatalf("got %v", paths)
	}
	var str string
	err := loader.AssignFirst("str", &str)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "not-exists.cue") {
		t.Fatalf("got %v", err)
	}
}
