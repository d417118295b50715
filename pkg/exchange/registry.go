package exchange

import (
	"sort"
	"strings"
	"sync"
)

// Constructor builds a fresh adapter instance. Each call returns an
// independent instance with its own client and cache.
type Constructor func() (Exchange, error)

// Info describes a registered exchange without instantiating it.
type Info struct {
	Name        string       `json:"name"`
	Markets     []MarketType `json:"markets"`
	Description string       `json:"description"`
}

// Registry maps exchange names to adapter constructors. It is an explicit
// value owned by the composition root; there is no ambient global. Names
// are stored lowercase and looked up case-insensitively, and registering
// an existing name replaces the previous entry.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registration
}

type registration struct {
	info Info
	ctor Constructor
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registration)}
}

// Register adds an exchange under info.Name. The last registration for a
// name wins.
func (r *Registry) Register(info Info, ctor Constructor) {
	key := normalizeName(info.Name)
	if key == "" || ctor == nil {
		return
	}
	info.Name = key
	r.mu.Lock()
	r.entries[key] = registration{info: info, ctor: ctor}
	r.mu.Unlock()
}

// Create instantiates the adapter registered under name.
func (r *Registry) Create(name string) (Exchange, error) {
	r.mu.RLock()
	reg, ok := r.entries[normalizeName(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, r.notFound(name)
	}
	return reg.ctor()
}

// Describe returns the registered metadata for name without building an
// instance.
func (r *Registry) Describe(name string) (Info, error) {
	r.mu.RLock()
	reg, ok := r.entries[normalizeName(name)]
	r.mu.RUnlock()
	if !ok {
		return Info{}, r.notFound(name)
	}
	return reg.info, nil
}

// Names lists the registered exchange names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// List returns the metadata of every registered exchange, sorted by name.
func (r *Registry) List() []Info {
	r.mu.RLock()
	infos := make([]Info, 0, len(r.entries))
	for _, reg := range r.entries {
		infos = append(infos, reg.info)
	}
	r.mu.RUnlock()
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

func (r *Registry) notFound(name string) *ValidationError {
	return Validationf("exchange %q not found, available exchanges: %s", name, strings.Join(r.Names(), ", "))
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
