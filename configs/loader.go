package configs

import (
	"fmt"
	"iter"
	"os"
	"slices"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

type Loader struct {
	paths    []string
	getRoots func() ([]rootInfo, error)
}

// NewLoader loads filePaths lazily. Earlier files take precedence in First.
func NewLoader(filePaths []string, schemaSrc string) Loader {
	return Loader{
		paths: slices.Clone(filePaths),

		getRoots: sync.OnceValues(func() (ret []rootInfo, err error) {
			// schema and documents must share one runtime to be unified
			ctx := cuecontext.New()

			var schema cue.Value
			if schemaSrc != "" {
				schema = ctx.CompileString("close({" + schemaSrc + "})")
				if err := schema.Err(); err != nil {
					return nil, err
				}
			}

			for _, filePath := range filePaths {
				content, err := os.ReadFile(filePath)
				if err != nil {
					return nil, fmt.Errorf("read %s: %w", filePath, err)
				}

				value := ctx.CompileBytes(
					content,
					cue.Filename(filePath),
				)
				if err = value.Err(); err != nil {
					return nil, err
				}

				if schema.Exists() {
					if err := schema.Unify(value).Validate(); err != nil {
						return nil, fmt.Errorf("validate %s: %w", filePath, err)
					}
				}

				ret = append(ret, rootInfo{
					value: value,
					path:  filePath,
				})
			}

			return
		}),
	}
}

func (l Loader) Paths() []string {
	return slices.Clone(l.paths)
}

type rootInfo struct {
	value cue.Value
	path  string
}

// Entry is the value under a path in one file.
type Entry struct {
	File  string
	Path  string
	Value cue.Value
}

func (e Entry) Decode(target any) error {
	if err := e.Value.Decode(target); err != nil {
		return &DecodeError{
			File: e.File,
			Path: e.Path,
			Err:  err,
		}
	}
	return nil
}

// Entries yields the files defining path, in precedence order.
func (l Loader) Entries(path string) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		roots, err := l.getRoots()
		if err != nil {
			yield(Entry{}, err)
			return
		}

		cuePath := cue.ParsePath(path)
		for _, info := range roots {
			value := info.value.LookupPath(cuePath)
			if err := value.Err(); err != nil {
				continue
			}
			if !yield(Entry{
				File:  info.path,
				Path:  path,
				Value: value,
			}, nil) {
				break
			}
		}
	}
}

func (l Loader) AssignFirst(path string, target any) error {
	for entry, err := range l.Entries(path) {
		if err != nil {
			return err
		}
		return entry.Decode(target)
	}
	return ErrValueNotFound
}
