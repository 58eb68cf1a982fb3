package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

func TestModules(t *testing.T) {
	for _, c := range []struct {
		name       string
		module     any
		mode       Mode
		systemWide bool
		hasT       bool
	}{
		{"production", ForProduction(), ModeProduction, true, false},
		{"development", ForDevelopment(), ModeDevelopment, false, false},
		{"test", ForTest(t), ModeDevelopment, false, true},
	} {
		t.Run(c.name, func(t *testing.T) {
			dscope.New(c.module).Call(func(
				mode Mode,
				scopeT *testing.T,
			) {
				if mode != c.mode {
					t.Fatalf("got %v", mode)
				}
				if mode.ReadsSystemConfig() != c.systemWide {
					t.Fatalf("got %v", mode.ReadsSystemConfig())
				}
				if (scopeT != nil) != c.hasT {
					t.Fatalf("got %v", scopeT)
				}
			})
		})
	}
}
