package sink

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps format names to sink factory functions
var Registry = map[string]func(path string) (Sink, error){
	"csv":  func(path string) (Sink, error) { return NewCSV(path) },
	"xlsx": func(path string) (Sink, error) { return NewExcel(path) },
	"bolt": func(path string) (Sink, error) { return NewBolt(path) },
}

// Get returns a sink writing to path in the named format
func Get(format, path string) (Sink, error) {
	factory, exists := Registry[format]
	if !exists {
		return nil, fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(Formats(), ", "))
	}
	return factory(path)
}

// Formats returns all registered format names, sorted
func Formats() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
