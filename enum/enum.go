package enum

import (
	"reflect"
	"sort"
	"sync"
)

// registry is the global enum member registry, keyed by enumeration type.
var (
	registry = make(map[reflect.Type]map[string]reflect.Value)
	mu       sync.RWMutex
)

// Register registers the members of the enumeration type T under their
// declared names. Registering the same type again replaces its members.
//
// T must be a concrete named type; member lookup during decoding is
// case-sensitive and matches names exactly as given here.
//
// Register before the first decode of any struct type that uses T: the
// decoder classifies and caches each struct type on first use, so a
// registration after that point is not seen for already-decoded types.
// Registering in an init function of the package declaring T is the
// usual pattern.
func Register[T any](members map[string]T) {
	t := reflect.TypeOf((*T)(nil)).Elem()

	values := make(map[string]reflect.Value, len(members))
	for name, member := range members {
		values[name] = reflect.ValueOf(member)
	}

	mu.Lock()
	defer mu.Unlock()
	registry[t] = values
}

// IsEnum reports whether t is a registered enumeration type.
func IsEnum(t reflect.Type) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := registry[t]
	return ok
}

// Lookup returns the member of the enumeration type t with the given
// name. The second return value is false if t is not a registered
// enumeration or has no member with that exact name.
func Lookup(t reflect.Type, name string) (reflect.Value, bool) {
	mu.RLock()
	defer mu.RUnlock()

	members, ok := registry[t]
	if !ok {
		return reflect.Value{}, false
	}

	v, ok := members[name]
	return v, ok
}

// Members returns the sorted member names of the enumeration type t, or
// nil if t is not registered. Useful for building diagnostics.
func Members(t reflect.Type) []string {
	mu.RLock()
	defer mu.RUnlock()

	members, ok := registry[t]
	if !ok {
		return nil
	}

	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Clear removes all registered enumerations. Intended for test isolation.
func Clear() {
	mu.Lock()
	defer mu.Unlock()

	registry = make(map[reflect.Type]map[string]reflect.Value)
}
