package auda

// setNested walks path below n, creating collections on demand, and stores v
// at the terminal segment. It reports false when the write was skipped
// because a protected leaf already occupies the target and v is not
// protected; that is the only way a write can lose.
func setNested(n *Node, path Path, v *Value) bool {
	if len(path) == 0 {
		n.replace(newLeaf(v))
		return true
	}
	seg, rest := path[0], path[1:]

	if len(rest) == 0 {
		switch seg.Kind {
		case SegmentEmpty:
			n.replace(newLeaf(v))
		case SegmentAppend:
			n.set(n.nextIndex(), newLeaf(v))
		default:
			if old := n.Child(seg.Key); old.IsLeaf() && old.value.protected && !v.protected {
				return false
			}
			n.set(seg.Key, newLeaf(v))
		}
		return true
	}

	switch seg.Kind {
	case SegmentEmpty:
		return setNested(n, rest, v)
	case SegmentAppend:
		slot := newCollection()
		n.set(n.nextIndex(), slot)
		return setNested(slot, rest, v)
	default:
		return setNested(n.ensureCollection(seg.Key), rest, v)
	}
}

// lookup descends path below n and returns the node found there, or nil as
// soon as a segment is missing.
func lookup(n *Node, path Path) *Node {
	for _, seg := range path {
		if n == nil {
			return nil
		}
		switch seg.Kind {
		case SegmentEmpty:
			continue
		case SegmentAppend:
			return nil
		default:
			n = n.Child(seg.Key)
		}
	}
	return n
}
