package auda

import "strconv"

// Flatten converts n into plain Go values: leaves become their stored value,
// collections whose keys are exactly "0".."n-1" in insertion order become
// []any and every other collection becomes map[string]any. A one-element list
// whose element is itself a collection is unwrapped to that element, so a
// structure built through a single append reads back as the structure.
func Flatten(n *Node) any {
	out := flatten(n)
	if list, ok := out.([]any); ok && len(list) == 1 {
		switch list[0].(type) {
		case []any, map[string]any:
			return list[0]
		}
	}
	return out
}

func flatten(n *Node) any {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return n.value.raw
	}
	if isList(n) {
		list := make([]any, 0, len(n.keys))
		for _, k := range n.keys {
			list = append(list, flatten(n.kids[k]))
		}
		return list
	}
	m := make(map[string]any, len(n.keys))
	for _, k := range n.keys {
		m[unbracket(k)] = flatten(n.kids[k])
	}
	return m
}

func isList(n *Node) bool {
	if len(n.keys) == 0 {
		return false
	}
	for i, k := range n.keys {
		if k != strconv.Itoa(i) {
			return false
		}
	}
	return true
}

// unbracket strips one pair of surrounding brackets from key.
func unbracket(key string) string {
	if len(key) >= 2 && key[0] == '[' && key[len(key)-1] == ']' {
		return key[1 : len(key)-1]
	}
	return key
}
