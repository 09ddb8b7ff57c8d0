package configs

import (
	"errors"
	"fmt"
)

// First decodes path from the first source defining it, zero if none does.
// Decode errors panic.
func First[T any](loader Loader, path string) T {
	return FirstOr(loader, path, *new(T))
}

// FirstOr is First with a fallback for undefined paths.
func FirstOr[T any](loader Loader, path string, def T) T {
	var value T
	err := loader.AssignFirst(path, &value)
	if errors.Is(err, ErrValueNotFound) {
		return def
	}
	if err != nil {
		panic(fmt.Errorf("config %s: %w", path, err))
	}
	return value
}
