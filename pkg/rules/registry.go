package rules

import (
	"cmp"
	"slices"
	"strings"
	"sync"
)

// Registry holds rule metadata keyed by ID and by name.
type Registry struct {
	mu     sync.RWMutex
	byID   map[ID]Info
	byName map[string]ID
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[ID]Info),
		byName: make(map[string]ID),
	}
}

// Register adds a rule to the registry.
// If a rule with the same ID already exists, it is replaced.
func (r *Registry) Register(info Info) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[info.ID] = info
	if info.Name != "" {
		r.byName[info.Name] = info.ID
	}
}

// Get retrieves a rule by ID or name.
// It tries ID first (case-insensitive), then falls back to name lookup.
func (r *Registry) Get(key string) (Info, bool) {
	if info, ok := r.GetByID(ID(strings.ToUpper(key))); ok {
		return info, true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if id, ok := r.byName[strings.ToLower(key)]; ok {
		return r.byID[id], true
	}
	return Info{}, false
}

// GetByID retrieves a rule by its ID only.
func (r *Registry) GetByID(id ID) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.byID[id]
	return info, ok
}

// CategoryOf returns the driver category for id.
func (r *Registry) CategoryOf(id ID) (Category, bool) {
	info, ok := r.GetByID(id)
	return info.Category, ok
}

// Rules returns all registered rules sorted by ID.
func (r *Registry) Rules() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Info, 0, len(r.byID))
	for _, info := range r.byID {
		result = append(result, info)
	}

	slices.SortFunc(result, func(a, b Info) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return result
}

// ByCategory returns the rules handled by the given category, sorted by ID.
func (r *Registry) ByCategory(c Category) []Info {
	var result []Info
	for _, info := range r.Rules() {
		if info.Category == c {
			result = append(result, info)
		}
	}
	return result
}

// DefaultRegistry is the registry of built-in rules, filled from the catalog
// during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule lookup
var DefaultRegistry = NewRegistry()

func init() {
	for _, info := range catalog {
		DefaultRegistry.Register(info)
	}
}
