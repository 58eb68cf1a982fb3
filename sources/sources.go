package sources

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/reusee/amc/ast"
	"github.com/reusee/amc/configs"
)

//go:embed schema.cue
var schema string

var (
	ErrInvalidDeclaration = errors.New("invalid declaration")
	ErrInvalidReference   = errors.New("invalid reference")
	ErrInvalidAction      = errors.New("invalid action")
	ErrInvalidParam       = errors.New("invalid parameter")
)

// Extension is tried when an included path does not exist as written.
const Extension = ".cue"

type declDoc struct {
	Include   *string   `json:"include"`
	Symbols   *[]string `json:"symbols"`
	Init      any       `json:"init"`
	State     *stateDoc `json:"state"`
	MFunction *stateDoc `json:"mfunction"`
}

type stateDoc struct {
	Name   string    `json:"name"`
	Params []string  `json:"params"`
	Rules  []ruleDoc `json:"rules"`
}

type ruleDoc struct {
	Match *string  `json:"match"`
	Do    []string `json:"do"`
	Next  any      `json:"next"`
}

// LoadFile reads the machine declarations of one document. Include paths are made
// absolute relative to the document; they are not expanded.
func LoadFile(path string) ([]ast.Decl, error) {
	path, err := resolve(path)
	if err != nil {
		return nil, err
	}

	var docs []declDoc
	loader := configs.NewLoader([]string{path}, schema)
	if err := loader.AssignFirst("machine", &docs); err != nil {
		if errors.Is(err, configs.ErrValueNotFound) {
			return nil, nil
		}
		return nil, err
	}

	dir := filepath.Dir(path)
	decls := make([]ast.Decl, 0, len(docs))
	for i, doc := range docs {
		decl, err := doc.decl(dir)
		if err != nil {
			return nil, fmt.Errorf("%s: machine[%d]: %w", path, i, err)
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

// resolve finds the document for path, trying the extension when path has none.
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err == nil {
		return abs, nil
	} else if filepath.Ext(abs) == Extension {
		return "", err
	}
	if _, err := os.Stat(abs + Extension); err != nil {
		return "", err
	}
	return abs + Extension, nil
}

func (d declDoc) decl(dir string) (ast.Decl, error) {
	switch {

	case d.Include != nil:
		path := *d.Include
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		return ast.Include{
			Path: filepath.Clean(path),
		}, nil

	case d.Symbols != nil:
		var symbols []ast.Symbol
		for _, name := range *d.Symbols {
			symbols = append(symbols, ast.ParseSymbol(name))
		}
		return ast.Symbols{
			Symbols: symbols,
		}, nil

	case d.Init != nil:
		ref, err := parseRef(d.Init)
		if err != nil {
			return nil, err
		}
		return ast.Initial{
			Ref: ref,
		}, nil

	case d.State != nil:
		rules, err := parseRules(d.State.Rules)
		if err != nil {
			return nil, fmt.Errorf("state %s: %w", d.State.Name, err)
		}
		return ast.State{
			Name:  d.State.Name,
			Rules: rules,
		}, nil

	case d.MFunction != nil:
		var params []ast.Param
		for _, name := range d.MFunction.Params {
			param, err := parseParam(name)
			if err != nil {
				return nil, fmt.Errorf("m-function %s: %w", d.MFunction.Name, err)
			}
			params = append(params, param)
		}
		rules, err := parseRules(d.MFunction.Rules)
		if err != nil {
			return nil, fmt.Errorf("m-function %s: %w", d.MFunction.Name, err)
		}
		return ast.MFunction{
			Name:   d.MFunction.Name,
			Params: params,
			Rules:  rules,
		}, nil

	}
	return nil, ErrInvalidDeclaration
}

// IsStateName reports whether a name refers to a state: it starts with an upper case
// letter. Anything else is a symbol.
func IsStateName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

func parseParam(name string) (ast.Param, error) {
	if IsStateName(name) {
		return ast.Param{
			Kind: ast.ArgState,
			Name: name,
		}, nil
	}
	if sym := ast.ParseSymbol(name); sym.Kind != ast.SymbolGeneric {
		return ast.Param{}, fmt.Errorf("%w: %s is neither a state name nor a generic symbol", ErrInvalidParam, name)
	}
	return ast.Param{
		Kind: ast.ArgSymbol,
		Name: name,
	}, nil
}

func parseRules(docs []ruleDoc) ([]ast.Rule, error) {
	rules := make([]ast.Rule, 0, len(docs))
	for _, doc := range docs {
		rule := ast.Rule{
			Match: ast.Blank(),
		}
		if doc.Match != nil {
			rule.Match = ast.ParseSymbol(*doc.Match)
		}
		for _, text := range doc.Do {
			action, err := ParseAction(text)
			if err != nil {
				return nil, err
			}
			rule.Actions = append(rule.Actions, action)
		}
		target, err := parseRef(doc.Next)
		if err != nil {
			return nil, err
		}
		rule.Target = target
		rules = append(rules, rule)
	}
	return rules, nil
}

// ParseAction parses "<-", "->" or "P:symbol".
func ParseAction(text string) (ast.Action, error) {
	switch text {
	case "<-", "L":
		return ast.Left{}, nil
	case "->", "R":
		return ast.Right{}, nil
	}
	if sym, ok := strings.CutPrefix(text, "P:"); ok {
		return ast.Print{
			Symbol: ast.ParseSymbol(sym),
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidAction, text)
}

func parseRef(v any) (ast.StateRef, error) {
	switch v := v.(type) {

	case string:
		if !IsStateName(v) {
			return nil, fmt.Errorf("%w: %q is not a state name", ErrInvalidReference, v)
		}
		return ast.Direct{
			Name: v,
		}, nil

	case map[string]any:
		name, ok := v["call"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: missing call", ErrInvalidReference)
		}
		call := ast.Call{
			Name: name,
		}
		args, _ := v["args"].([]any)
		for _, arg := range args {
			if str, ok := arg.(string); ok && !IsStateName(str) {
				call.Args = append(call.Args, ast.ParseSymbol(str))
				continue
			}
			ref, err := parseRef(arg)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			call.Args = append(call.Args, ref)
		}
		return call, nil

	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidReference, v)
}
