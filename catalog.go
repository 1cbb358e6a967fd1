package tri

import (
	"fmt"
	"slices"
)

// DefaultDemo is the demo run when none is named.
const DefaultDemo = "triangle"

var catalog = map[string]*Demo{}

func init() {
	for _, d := range []*Demo{
		&simpleDemo,
		&triangleDemo,
		&texturedDemo,
		&roseDemo,
		&phongDemo,
		&diffuseDemo,
		&advancedPhongDemo,
		&advancedTexturedDemo,
		&hsvDemo,
		&gradientDemo,
		&noiseDemo,
	} {
		catalog[d.Name] = d
	}
}

// Lookup returns a copy of the named demo.
func Lookup(name string) (Demo, error) {
	d, ok := catalog[name]
	if !ok {
		return Demo{}, fmt.Errorf("%w: %q", ErrUnknownDemo, name)
	}
	return *d, nil
}

// MustLookup is like Lookup but panics on an unknown name.
func MustLookup(name string) Demo {
	d, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return d
}

// Names returns the catalog names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
