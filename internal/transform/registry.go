package transform

import (
	"fmt"
	"sort"
	"strings"
)

var registry = map[string]func() (Transform, error){
	"grayscale": func() (Transform, error) {
		return NewLuminosity(), nil
	},
	"sobel": func() (Transform, error) {
		return NewSobel(NewLuminosity())
	},
}

// Lookup returns a new instance of the named transform. Names are
// case-insensitive; "edges" is accepted as an alias of "sobel".
func Lookup(name string) (Transform, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "edges" {
		key = "sobel"
	}
	fn, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownTransform, name, strings.Join(Names(), ", "))
	}
	return fn()
}

// Names returns the registered transform names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
