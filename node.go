package auda

import "strconv"

// Node is one position of the aggregate. It is either a leaf holding a *Value
// or a keyed collection of child nodes, never both. Lists are collections
// whose keys are "0", "1", ... as produced by append segments.
type Node struct {
	value *Value
	keys  []string
	kids  map[string]*Node
}

func newCollection() *Node { return &Node{kids: map[string]*Node{}} }

func newLeaf(v *Value) *Node { return &Node{value: v} }

// IsLeaf reports whether n holds a Value.
func (n *Node) IsLeaf() bool { return n != nil && n.value != nil }

// Value returns the leaf value, or nil for collections.
func (n *Node) Value() *Value {
	if n == nil {
		return nil
	}
	return n.value
}

// Len returns the number of children; leaves have none.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.keys)
}

// Keys returns child keys in insertion order.
func (n *Node) Keys() []string {
	if n == nil {
		return nil
	}
	return append([]string(nil), n.keys...)
}

// Child returns the child stored under key, or nil.
func (n *Node) Child(key string) *Node {
	if n == nil || n.kids == nil {
		return nil
	}
	return n.kids[key]
}

// set stores child under key. A re-set key keeps its original position.
func (n *Node) set(key string, child *Node) {
	if n.kids == nil {
		n.value = nil
		n.kids = map[string]*Node{}
	}
	if _, ok := n.kids[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.kids[key] = child
}

// ensureCollection returns the collection under key, replacing a missing or
// leaf child with an empty collection.
func (n *Node) ensureCollection(key string) *Node {
	if c := n.Child(key); c != nil && !c.IsLeaf() {
		return c
	}
	c := newCollection()
	n.set(key, c)
	return c
}

// nextIndex returns the first unused integer key starting at the child count.
func (n *Node) nextIndex() string {
	for i := n.Len(); ; i++ {
		k := strconv.Itoa(i)
		if n.Child(k) == nil {
			return k
		}
	}
}

// replace turns n into a copy of other in place.
func (n *Node) replace(other *Node) { *n = *other }
