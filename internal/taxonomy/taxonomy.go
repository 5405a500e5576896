// Package taxonomy groups catalog entries into named families. Families form
// a directed acyclic graph: a family may have several parents, and each
// family holds its own list of direct members plus links to subfamilies.
//
// Removal operations only unlink a single edge. Members and subfamilies that
// are still linked elsewhere stay reachable from those parents.
package taxonomy

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrCycle is returned when a link would make a family its own ancestor.
var ErrCycle = errors.New("family cycle")

// ErrFamilyNotFound is returned when an operation references an unknown family.
var ErrFamilyNotFound = errors.New("family not found")

// ErrNotImplemented is returned by operations that delete families outright.
var ErrNotImplemented = errors.New("not implemented")

// Family identifies a family within one Taxonomy.
type Family int

// Member is an item linked to a family under a display name.
type Member[T comparable] struct {
	Item T
	Name string
}

type node[T comparable] struct {
	name     string
	children []Family
	parents  []Family
	members  []Member[T]
}

// Taxonomy is a DAG of families over items of type T. It is safe for
// concurrent use.
type Taxonomy[T comparable] struct {
	mu     sync.RWMutex
	nodes  []*node[T]
	byName map[string]Family
}

// New creates a taxonomy with a single root family.
func New[T comparable](rootName string) *Taxonomy[T] {
	t := &Taxonomy[T]{byName: make(map[string]Family)}
	t.create(rootName)
	return t
}

// Root returns the family every other family descends from.
func (t *Taxonomy[T]) Root() Family { return 0 }

// NewFamily creates a family named name and links it under parent.
func (t *Taxonomy[T]) NewFamily(parent Family, name string) (Family, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.check(parent); err != nil {
		return 0, err
	}
	f := t.create(name)
	t.link(parent, f)
	return f, nil
}

// AddSubfamily links child under parent. It returns false when the link
// already exists.
func (t *Taxonomy[T]) AddSubfamily(parent, child Family) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.check(parent); err != nil {
		return false, err
	}
	if err := t.check(child); err != nil {
		return false, err
	}
	if parent == child {
		return false, fmt.Errorf("%w: %s under itself", ErrCycle, t.nodes[parent].name)
	}
	if slices.Contains(t.nodes[parent].children, child) {
		return false, nil
	}
	if t.hasPath(child, parent) {
		return false, fmt.Errorf("%w: %s is an ancestor of %s",
			ErrCycle, t.nodes[child].name, t.nodes[parent].name)
	}
	t.link(parent, child)
	return true, nil
}

// RemoveSubfamily unlinks child from parent. The child keeps its other
// parents and its own contents. It returns false when no link existed.
func (t *Taxonomy[T]) RemoveSubfamily(parent, child Family) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.check(parent); err != nil {
		return false, err
	}
	if err := t.check(child); err != nil {
		return false, err
	}
	p, c := t.nodes[parent], t.nodes[child]
	i := slices.Index(p.children, child)
	if i < 0 {
		return false, nil
	}
	p.children = slices.Delete(p.children, i, i+1)
	if j := slices.Index(c.parents, parent); j >= 0 {
		c.parents = slices.Delete(c.parents, j, j+1)
	}
	return true, nil
}

// AddMember links item to parent under name. It returns false when item is
// already a direct member of parent, whatever name it was given.
func (t *Taxonomy[T]) AddMember(parent Family, item T, name string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.check(parent); err != nil {
		return false, err
	}
	n := t.nodes[parent]
	if indexOf(n.members, item) >= 0 {
		return false, nil
	}
	n.members = append(n.members, Member[T]{Item: item, Name: name})
	return true, nil
}

// RemoveMember unlinks item from parent only. It returns false when item was
// not a direct member.
func (t *Taxonomy[T]) RemoveMember(parent Family, item T) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.check(parent); err != nil {
		return false, err
	}
	n := t.nodes[parent]
	i := indexOf(n.members, item)
	if i < 0 {
		return false, nil
	}
	n.members = slices.Delete(n.members, i, i+1)
	return true, nil
}

// DeleteFamily would remove a family and decide the fate of its contents.
// Whether contents cascade or are orphaned is undecided, so it always fails.
func (t *Taxonomy[T]) DeleteFamily(f Family) error {
	return fmt.Errorf("delete family %d: %w", f, ErrNotImplemented)
}

// Name returns the family's name.
func (t *Taxonomy[T]) Name(f Family) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.check(f) != nil {
		return ""
	}
	return t.nodes[f].name
}

// Find returns the first family created with name.
func (t *Taxonomy[T]) Find(name string) (Family, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	f, ok := t.byName[name]
	return f, ok
}

// Len returns the number of families, including the root.
func (t *Taxonomy[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}

// Subfamilies returns the direct subfamilies of f in link order.
func (t *Taxonomy[T]) Subfamilies(f Family) []Family {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.check(f) != nil {
		return nil
	}
	return slices.Clone(t.nodes[f].children)
}

// Parents returns the families f is directly linked under.
func (t *Taxonomy[T]) Parents(f Family) []Family {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.check(f) != nil {
		return nil
	}
	return slices.Clone(t.nodes[f].parents)
}

// DirectMembers returns the members linked to f in link order.
func (t *Taxonomy[T]) DirectMembers(f Family) []Member[T] {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.check(f) != nil {
		return nil
	}
	return slices.Clone(t.nodes[f].members)
}

// AllSubfamilies returns every family reachable below f, breadth first,
// each listed once.
func (t *Taxonomy[T]) AllSubfamilies(f Family) []Family {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.check(f) != nil {
		return nil
	}
	return t.descendants(f)
}

// AllMembers returns the members of f and of every family below it. An item
// reachable along several paths appears once, under the first name found.
func (t *Taxonomy[T]) AllMembers(f Family) []Member[T] {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.check(f) != nil {
		return nil
	}
	seen := make(map[T]bool)
	var out []Member[T]
	for _, fam := range append([]Family{f}, t.descendants(f)...) {
		for _, m := range t.nodes[fam].members {
			if seen[m.Item] {
				continue
			}
			seen[m.Item] = true
			out = append(out, m)
		}
	}
	return out
}

// FamiliesOf returns every family that has item as a direct member.
func (t *Taxonomy[T]) FamiliesOf(item T) []Family {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []Family
	for i, n := range t.nodes {
		if indexOf(n.members, item) >= 0 {
			out = append(out, Family(i))
		}
	}
	return out
}

// Families returns every family in creation order.
func (t *Taxonomy[T]) Families() []Family {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Family, len(t.nodes))
	for i := range t.nodes {
		out[i] = Family(i)
	}
	return out
}

// create requires t.mu to be held for writing.
func (t *Taxonomy[T]) create(name string) Family {
	f := Family(len(t.nodes))
	t.nodes = append(t.nodes, &node[T]{name: name})
	if _, exists := t.byName[name]; !exists {
		t.byName[name] = f
	}
	return f
}

// link requires t.mu to be held for writing.
func (t *Taxonomy[T]) link(parent, child Family) {
	t.nodes[parent].children = append(t.nodes[parent].children, child)
	t.nodes[child].parents = append(t.nodes[child].parents, parent)
}

func (t *Taxonomy[T]) check(f Family) error {
	if f < 0 || int(f) >= len(t.nodes) {
		return fmt.Errorf("%w: %d", ErrFamilyNotFound, f)
	}
	return nil
}

// hasPath reports whether dst is reachable from src by following
// subfamily links.
func (t *Taxonomy[T]) hasPath(src, dst Family) bool {
	visited := make(map[Family]bool)
	queue := []Family{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range t.nodes[cur].children {
			if c == dst {
				return true
			}
			if !visited[c] {
				visited[c] = true
				queue = append(queue, c)
			}
		}
	}
	return false
}

func (t *Taxonomy[T]) descendants(f Family) []Family {
	visited := map[Family]bool{f: true}
	var out []Family
	queue := []Family{f}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range t.nodes[cur].children {
			if visited[c] {
				continue
			}
			visited[c] = true
			out = append(out, c)
			queue = append(queue, c)
		}
	}
	return out
}

func indexOf[T comparable](members []Member[T], item T) int {
	return slices.IndexFunc(members, func(m Member[T]) bool { return m.Item == item })
}
