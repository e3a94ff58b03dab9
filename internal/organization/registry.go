package organization

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Org describes one entry of the organization directory. Registration only
// accepts organizations listed here.
type Org struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	TimeZone string `json:"time_zone"`
}

type orgsFile struct {
	Organizations []Org `json:"organizations"`
}

type Registry struct {
	mu   sync.RWMutex
	orgs map[string]*Org
}

func NewRegistry() *Registry {
	return &Registry{
		orgs: make(map[string]*Org),
	}
}

func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read orgs config: %w", err)
	}

	var file orgsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse orgs config: %w", err)
	}

	registry := NewRegistry()
	for i := range file.Organizations {
		registry.Register(&file.Organizations[i])
	}
	return registry, nil
}

func (r *Registry) Register(org *Org) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orgs[org.ID] = org
}

func (r *Registry) Get(orgID string) *Org {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.orgs[orgID]
}

func (r *Registry) Exists(orgID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.orgs[orgID]
	return ok
}

func (r *Registry) All() []*Org {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Org, 0, len(r.orgs))
	for _, org := range r.orgs {
		result = append(result, org)
	}
	return result
}
