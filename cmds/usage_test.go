package cmds

import (
	"bytes"
	"strings"
	"testing"
)

func TestUsage(t *testing.T) {
	executor := NewExecutor()
	executor.Define("-tape", Func(func(string) {}).Desc("space separated initial tape"))
	executor.Define("-head", Func(func(int) {}).Desc("initial head position"))
	executor.Define("-trace-print", Func(func() {}).Desc("show the machine on prints"))
	executor.Alias("-tape", "-s")
	executor.Alias("-trace-print", "-p")

	buf := new(bytes.Buffer)
	executor.WriteUsage(buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"-h (help, -help, --help)\tprint this usage",
		"-head <int>\tinitial head position",
		"-tape (-s) <string>\tspace separated initial tape",
		"-trace-print (-p)\tshow the machine on prints",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %q", lines)
	}
	for i, line := range lines {
		if line != want[i] {
			t.Fatalf("got %q, want %q", line, want[i])
		}
	}
}
