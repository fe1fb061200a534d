package traverse

import "xmidoc/internal/model"

// RootSentinel is the parent reported for a traversal root. Roots are marked
// on the entry itself, so a package that is really named "root" is an
// ordinary ancestor.
const RootSentinel = "root"

type parentEntry struct {
	child  string
	parent string
	root   bool
	next   *parentEntry
}

// ParentMap maps a package name to the name of its parent. It is persistent:
// With returns an extended map and never modifies the receiver, so a value
// handed to one subtree is unaffected by entries added in a sibling subtree.
// The zero value is an empty map.
type ParentMap struct {
	head *parentEntry
	size int
}

// With returns m extended with child -> parent. A later entry for the same
// child shadows earlier ones.
func (m ParentMap) With(child, parent string) ParentMap {
	return ParentMap{
		head: &parentEntry{child: child, parent: parent, next: m.head},
		size: m.size + 1,
	}
}

// WithRoot returns m extended with name as a traversal root. Its parent is
// reported as RootSentinel.
func (m ParentMap) WithRoot(name string) ParentMap {
	return ParentMap{
		head: &parentEntry{child: name, parent: RootSentinel, root: true, next: m.head},
		size: m.size + 1,
	}
}

// Parent returns the most recent parent recorded for name.
func (m ParentMap) Parent(name string) (string, bool) {
	if e := m.entry(name); e != nil {
		return e.parent, true
	}
	return "", false
}

func (m ParentMap) entry(name string) *parentEntry {
	for e := m.head; e != nil; e = e.next {
		if e.child == name {
			return e
		}
	}
	return nil
}

// Len returns the number of entries, counting shadowed ones.
func (m ParentMap) Len() int {
	return m.size
}

// PathToRoot returns the names from the traversal root down to name, both
// inclusive. The walk stops at an entry added with WithRoot or at a name with
// no recorded parent. A chain longer than the map can hold
// means the map contains a cycle.
func PathToRoot(name string, m ParentMap) ([]string, error) {
	chain := []string{name}
	current := name

	for steps := 0; ; steps++ {
		if steps > m.Len() {
			reverse(chain)
			return nil, model.NewStructuralError(model.ErrParentCycle, chain,
				"parent chain of %q does not reach the root", name)
		}
		e := m.entry(current)
		if e == nil || e.root {
			break
		}
		chain = append(chain, e.parent)
		current = e.parent
	}

	reverse(chain)
	return chain, nil
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
