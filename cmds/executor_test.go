package cmds

import (
	"errors"
	"strings"
	"testing"
)

func TestExecutor(t *testing.T) {
	executor := NewExecutor()

	var tracePrint bool
	executor.Define("-trace-print", Func(func() {
		tracePrint = true
	}))
	var head int
	executor.Define("-head", Func(func(i int) {
		head = i
	}))

	if err := executor.Execute([]string{
		"-trace-print",
		"-head", "3",
	}); err != nil {
		t.Fatal(err)
	}
	if !tracePrint {
		t.Fatal()
	}
	if head != 3 {
		t.Fatalf("got %d", head)
	}

	err := executor.Execute([]string{
		"-foo",
	})
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "unknown command: -foo") {
		t.Fatalf("got %v", err)
	}

	err = executor.Execute([]string{"-head"})
	if !errors.Is(err, ErrMissingArgument) {
		t.Fatalf("got %v", err)
	}
	err = executor.Execute([]string{"-head", "left"})
	if !errors.Is(err, ErrBadArgument) {
		t.Fatalf("got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "-head: ") {
		t.Fatalf("got %v", err)
	}
}

func TestAssignForm(t *testing.T) {
	executor := NewExecutor()
	var tape string
	executor.Define("-tape", Func(func(s string) {
		tape = s
	}))
	var steps int
	executor.Define("-max-steps", Func(func(i int) {
		steps = i
	}))
	executor.Define("-check", Func(func() {}))

	if err := executor.Execute([]string{
		"-tape=0 1 a=b",
		"-max-steps=100",
	}); err != nil {
		t.Fatal(err)
	}
	if tape != "0 1 a=b" {
		t.Fatalf("got %q", tape)
	}
	if steps != 100 {
		t.Fatalf("got %d", steps)
	}

	// the empty value is a value
	if err := executor.Execute([]string{"-tape="}); err != nil {
		t.Fatal(err)
	}
	if tape != "" {
		t.Fatalf("got %q", tape)
	}

	if err := executor.Execute([]string{"-check=1"}); !errors.Is(err, ErrBadArgument) {
		t.Fatalf("got %v", err)
	}
	if err := executor.Execute([]string{"-nope=1"}); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("got %v", err)
	}
}

func TestAlias(t *testing.T) {
	executor := NewExecutor()
	var file string
	executor.Define("-tape-file", Func(func(s string) {
		file = s
	}))
	executor.Alias("-tape-file", "-f")

	if err := executor.Execute([]string{"-f", "tape.txt"}); err != nil {
		t.Fatal(err)
	}
	if file != "tape.txt" {
		t.Fatalf("got %q", file)
	}
	if err := executor.Execute([]string{"-f=other.txt"}); err != nil {
		t.Fatal(err)
	}
	if file != "other.txt" {
		t.Fatalf("got %q", file)
	}

	func() {
		defer func() {
			if p := recover(); p == nil {
				t.Fatal("should panic")
			}
		}()
		executor.Alias("-tape-file", "-h")
	}()

	func() {
		defer func() {
			p := recover()
			err, ok := p.(error)
			if !ok || !errors.Is(err, ErrUnknownCommand) {
				t.Fatalf("got %v", p)
			}
		}()
		executor.Alias("-chars-file", "-i")
	}()
}

func TestCommandError(t *testing.T) {
	executor := NewExecutor()
	fail := errors.New("no such file")
	executor.Define("-file", Func(func(string) error {
		return fail
	}))
	executor.Define("-check", Func(func() error {
		return nil
	}))
	if err := executor.Execute([]string{"-check", "-file", "m.cue"}); !errors.Is(err, fail) {
		t.Fatalf("got %v", err)
	}
}

func TestOptionalArgument(t *testing.T) {
	executor := NewExecutor()
	var n int
	var s string
	executor.Define("foo", Func(func(arg *int, arg2 *string) {
		n = *arg
		s = *arg2
	}))

	err := executor.Execute([]string{"foo", "42", "foo"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 42 {
		t.Fatal()
	}
	if s != "foo" {
		t.Fatal()
	}

	err = executor.Execute([]string{"foo", "99"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 99 {
		t.Fatal()
	}
	if s != "" {
		t.Fatal()
	}

	err = executor.Execute([]string{"foo"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatal()
	}
	if s != "" {
		t.Fatal()
	}
}
