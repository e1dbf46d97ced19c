package paramcache

import "fmt"

// ComputeFunc fills dst from the parameter vector values. It must only read
// the fields the group declares as dependencies.
type ComputeFunc[C any] func(dst *C, values []float64)

// Group caches a value of type C derived from a subset of parameter fields.
type Group[C any] struct {
	name     string
	deps     []int
	snapshot []float64
	valid    bool
	value    C
	compute  ComputeFunc[C]

	recomputes uint64
}

// NewGroup returns an invalid group. deps are indices into the parameter
// vector passed to Get.
func NewGroup[C any](name string, deps []int, compute ComputeFunc[C]) (*Group[C], error) {
	if compute == nil {
		return nil, fmt.Errorf("paramcache group %q: nil compute", name)
	}
	if len(deps) == 0 {
		return nil, fmt.Errorf("paramcache group %q: no dependencies", name)
	}
	for _, d := range deps {
		if d < 0 {
			return nil, fmt.Errorf("paramcache group %q: negative dependency %d", name, d)
		}
	}

	return &Group[C]{
		name:     name,
		deps:     append([]int(nil), deps...),
		snapshot: make([]float64, len(deps)),
		compute:  compute,
	}, nil
}

// Get returns the cached value, recomputing it first if the group is invalid
// or any dependency in values differs from the stored snapshot.
// values must cover every dependency index.
func (g *Group[C]) Get(values []float64) *C {
	if g.stale(values) {
		for i, d := range g.deps {
			g.snapshot[i] = values[d]
		}
		g.compute(&g.value, values)
		g.valid = true
		g.recomputes++
	}
	return &g.value
}

func (g *Group[C]) stale(values []float64) bool {
	if !g.valid {
		return true
	}
	for i, d := range g.deps {
		if values[d] != g.snapshot[i] {
			return true
		}
	}
	return false
}

// Invalidate forces recomputation on the next Get.
func (g *Group[C]) Invalidate() { g.valid = false }

// Valid reports whether the cached value is current for the last snapshot.
func (g *Group[C]) Valid() bool { return g.valid }

// Name returns the group name.
func (g *Group[C]) Name() string { return g.name }

// Deps returns a copy of the dependency indices.
func (g *Group[C]) Deps() []int { return append([]int(nil), g.deps...) }

// Recomputes returns how often the compute function ran.
func (g *Group[C]) Recomputes() uint64 { return g.recomputes }

func (g *Group[C]) resetStats() { g.recomputes = 0 }

// Member is the type-erased view of a Group held by a Cache.
type Member interface {
	Name() string
	Invalidate()
	Recomputes() uint64
	resetStats()
}

// GroupStats is the recompute count of one group.
type GroupStats struct {
	Name       string
	Recomputes uint64
}

// Stats summarizes recompute counters of all groups in a Cache.
type Stats struct {
	Groups []GroupStats
	Total  uint64
}

// Count returns the recompute count of the named group, or 0.
func (s Stats) Count(name string) uint64 {
	for _, g := range s.Groups {
		if g.Name == name {
			return g.Recomputes
		}
	}
	return 0
}

// Cache is a registry of groups.
type Cache struct {
	members []Member
}

// Add creates a group and registers it with c.
func Add[C any](c *Cache, name string, deps []int, compute ComputeFunc[C]) (*Group[C], error) {
	for _, m := range c.members {
		if m.Name() == name {
			return nil, fmt.Errorf("paramcache group %q: duplicate name", name)
		}
	}

	g, err := NewGroup(name, deps, compute)
	if err != nil {
		return nil, err
	}
	c.members = append(c.members, g)
	return g, nil
}

// Len returns the number of registered groups.
func (c *Cache) Len() int { return len(c.members) }

// InvalidateAll marks every group invalid.
func (c *Cache) InvalidateAll() {
	for _, m := range c.members {
		m.Invalidate()
	}
}

// ResetStats zeroes all recompute counters.
func (c *Cache) ResetStats() {
	for _, m := range c.members {
		m.resetStats()
	}
}

// Stats returns the recompute counters in registration order.
func (c *Cache) Stats() Stats {
	s := Stats{Groups: make([]GroupStats, 0, len(c.members))}
	for _, m := range c.members {
		n := m.Recomputes()
		s.Groups = append(s.Groups, GroupStats{Name: m.Name(), Recomputes: n})
		s.Total += n
	}
	return s
}
