package importer

import (
	"fmt"
	"sort"
	"sync"
)

// DomainInfo contains display information about an import domain.
type DomainInfo struct {
	Key   string `json:"key"`   // Unique identifier: "vehicle", "tire"
	Label string `json:"label"` // Display name: "Vehicle Variants"
}

// Definition contains everything needed to run imports for one domain.
type Definition struct {
	Info    DomainInfo
	Columns []FieldSpec

	// Build constructs a fresh pipeline bound to the given database handle.
	// Pipelines carry per-run index state, so each run gets its own.
	Build func(db DBTX) Pipeline
}

var (
	registry   = make(map[string]Definition)
	registryMu sync.RWMutex
)

// Register adds a domain definition to the registry.
// Panics if a domain with the same key is already registered.
func Register(def Definition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("domain already registered: %s", def.Info.Key))
	}

	registry[def.Info.Key] = def
}

// Get returns a domain definition by key.
// Returns false if not found.
func Get(key string) (Definition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// All returns all registered domain definitions, sorted by key.
func All() []Definition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Definition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// DomainCount returns the number of registered domains.
func DomainCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered domains.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]Definition)
}
