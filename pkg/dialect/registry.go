package dialect

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Dialect)
)

// UnknownDialectError is returned by Lookup for a name nothing registered.
type UnknownDialectError struct {
	Name      string
	Available []string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect %q; available: %s", e.Name, strings.Join(e.Available, ", "))
}

// Register adds d under its lowercased name, replacing any earlier entry.
// Dialect packages call it from init.
func Register(d *Dialect) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(d.Name)] = d
}

// Get returns the dialect registered under name, ignoring case.
func Get(name string) (*Dialect, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[strings.ToLower(name)]
	return d, ok
}

// Lookup is Get with an *UnknownDialectError for missing names.
func Lookup(name string) (*Dialect, error) {
	if d, ok := Get(name); ok {
		return d, nil
	}
	return nil, &UnknownDialectError{Name: name, Available: List()}
}

// List returns the registered names, sorted.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
