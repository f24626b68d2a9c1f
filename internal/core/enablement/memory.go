package enablement

import (
	"context"
	"sync"
)

type memberKey struct {
	scope  Scope
	target string
	member string
}

type targetKey struct {
	scope  Scope
	target string
}

// MemoryStore keeps flags in process memory.
type MemoryStore struct {
	mu             sync.RWMutex
	defaultGateway bool
	gateways       map[Scope]bool
	targets        map[targetKey]bool
	members        map[memberKey]bool
}

// NewMemoryStore creates a store whose unset gateway flags read as defaultGateway.
func NewMemoryStore(defaultGateway bool) *MemoryStore {
	return &MemoryStore{
		defaultGateway: defaultGateway,
		gateways:       make(map[Scope]bool),
		targets:        make(map[targetKey]bool),
		members:        make(map[memberKey]bool),
	}
}

func (s *MemoryStore) Flags(_ context.Context, scope Scope, target, member string) (Flags, error) {
	if _, err := ParseScope(string(scope)); err != nil {
		return Flags{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	f := Flags{Gateway: s.defaultGateway}
	if g, ok := s.gateways[scope]; ok {
		f.Gateway = g
	}
	if v, ok := s.targets[targetKey{scope, target}]; ok {
		f.Target = Bool(v)
	}
	if v, ok := s.members[memberKey{scope, target, member}]; ok {
		f.Member = Bool(v)
	}
	return f, nil
}

func (s *MemoryStore) SetGateway(_ context.Context, scope Scope, enabled bool) error {
	if _, err := ParseScope(string(scope)); err != nil {
		return err
	}
	s.mu.Lock()
	s.gateways[scope] = enabled
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) SetTargetOverride(_ context.Context, scope Scope, target string, enabled *bool) error {
	if _, err := ParseScope(string(scope)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := targetKey{scope, target}
	if enabled == nil {
		delete(s.targets, key)
		return nil
	}
	s.targets[key] = *enabled
	return nil
}

func (s *MemoryStore) SetMemberOverride(_ context.Context, scope Scope, target, member string, enabled *bool) error {
	if _, err := ParseScope(string(scope)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memberKey{scope, target, member}
	if enabled == nil {
		delete(s.members, key)
		return nil
	}
	s.members[key] = *enabled
	return nil
}

func (s *MemoryStore) Describe(_ context.Context, scope Scope) (Overview, error) {
	if _, err := ParseScope(string(scope)); err != nil {
		return Overview{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ov := Overview{
		Scope:   scope,
		Gateway: s.defaultGateway,
		Targets: make(map[string]bool),
		Members: make(map[string]map[string]bool),
	}
	if g, ok := s.gateways[scope]; ok {
		ov.Gateway = g
	}
	for k, v := range s.targets {
		if k.scope == scope {
			ov.Targets[k.target] = v
		}
	}
	for k, v := range s.members {
		if k.scope != scope {
			continue
		}
		if ov.Members[k.target] == nil {
			ov.Members[k.target] = make(map[string]bool)
		}
		ov.Members[k.target][k.member] = v
	}
	return ov, nil
}
