package ast

import "strings"

type SymbolKind uint8

const (
	SymbolLiteral SymbolKind = iota
	// SymbolGeneric binds the symbol actually read under its name.
	SymbolGeneric
	// SymbolWildcard is the anonymous default marker.
	SymbolWildcard
)

const (
	Wildcard = "..."
	// BlankEscape is the surface spelling of the blank cell.
	BlankEscape = `\0`
)

type Symbol struct {
	Kind SymbolKind
	Name string
}

func Literal(name string) Symbol {
	return Symbol{
		Kind: SymbolLiteral,
		Name: name,
	}
}

func Generic(name string) Symbol {
	return Symbol{
		Kind: SymbolGeneric,
		Name: name,
	}
}

func Blank() Symbol {
	return Literal("")
}

func Any() Symbol {
	return Symbol{
		Kind: SymbolWildcard,
		Name: Wildcard,
	}
}

func (s Symbol) IsGeneric() bool {
	return s.Kind != SymbolLiteral
}

func (s Symbol) String() string {
	if s.Kind == SymbolLiteral && s.Name == "" {
		return BlankEscape
	}
	return s.Name
}

// IsGeneric reports whether a surface symbol name is a binder: the wildcard, or an
// underscore followed by at least one character. A lone underscore is literal.
func IsGeneric(name string) bool {
	return name == Wildcard ||
		(name != "_" && strings.HasPrefix(name, "_"))
}

// ParseSymbol classifies a surface symbol name.
// A leading backslash escapes the name, so `\_x` is the literal "_x".
func ParseSymbol(text string) Symbol {
	switch {
	case text == BlankEscape:
		return Blank()
	case text == Wildcard:
		return Any()
	case strings.HasPrefix(text, `\`):
		return Literal(unescape(text[1:]))
	case IsGeneric(text):
		return Generic(text)
	}
	return Literal(unescape(text))
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}
