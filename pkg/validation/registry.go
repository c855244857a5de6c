package validation

import (
	"errors"
	"fmt"
	"sync"
)

// Registry sentinel errors. A missing domain is a configuration problem; a
// missing check under both the requested and the default version is a
// resolution problem. The dispatcher converts both into per-message failed
// entries rather than aborting the flow.
var (
	ErrDomainNotConfigured = errors.New("domain has no validator configuration")
	ErrCheckNotFound       = errors.New("no check registered for action")
)

// Registry maps (domain, version, action) to a leaf validator. It replaces
// runtime module lookup by string path with an explicit table populated at
// startup; resolution falls back to the "default" version slot when no
// version-specific check exists.
type Registry struct {
	mu      sync.RWMutex
	domains map[string]map[string]map[string]CheckFunc
}

func NewRegistry() *Registry {
	return &Registry{domains: make(map[string]map[string]map[string]CheckFunc)}
}

// Register installs a check. Registering twice for the same key overwrites,
// which lets callers shadow a default check with a version-specific one.
func (r *Registry) Register(domain, version, action string, fn CheckFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	versions, ok := r.domains[domain]
	if !ok {
		versions = make(map[string]map[string]CheckFunc)
		r.domains[domain] = versions
	}
	actions, ok := versions[version]
	if !ok {
		actions = make(map[string]CheckFunc)
		versions[version] = actions
	}
	actions[CanonicalAction(action)] = fn
}

// Resolve finds the check for (domain, version, action), falling back to the
// domain's "default" version slot when the requested version has no entry.
func (r *Registry) Resolve(domain, version, action string) (CheckFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions, ok := r.domains[domain]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDomainNotConfigured, domain)
	}

	action = CanonicalAction(action)
	if actions, ok := versions[version]; ok {
		if fn, ok := actions[action]; ok {
			return fn, nil
		}
	}
	if actions, ok := versions[DefaultVersion]; ok {
		if fn, ok := actions[action]; ok {
			return fn, nil
		}
	}
	return nil, fmt.Errorf("%w: %s (domain %s, version %s)", ErrCheckNotFound, action, domain, version)
}

// Domains lists the configured domains, for startup logging.
func (r *Registry) Domains() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.domains))
	for d := range r.domains {
		out = append(out, d)
	}
	return out
}
