package configs

import "iter"

// All decodes path from every file defining it. Errors panic.
func All[T any](loader Loader, path string) iter.Seq[T] {
	return func(yield func(T) bool) {
		for entry, err := range loader.Entries(path) {
			if err != nil {
				panic(err)
			}
			var v T
			if err := entry.Decode(&v); err != nil {
				panic(err)
			}
			if !yield(v) {
				break
			}
		}
	}
}
