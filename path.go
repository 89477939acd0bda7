package auda

import "strings"

// SegmentKind classifies one component of a dotted path.
type SegmentKind int

const (
	// SegmentNamed is a plain key used verbatim.
	SegmentNamed SegmentKind = iota
	// SegmentBracket is a key written as [key]; Key holds it without brackets.
	SegmentBracket
	// SegmentAppend is [] and always creates a new list slot.
	SegmentAppend
	// SegmentEmpty is an empty component; as the last segment it replaces the
	// whole target position.
	SegmentEmpty
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentNamed:
		return "named"
	case SegmentBracket:
		return "bracket"
	case SegmentAppend:
		return "append"
	case SegmentEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Segment is one parsed path component.
type Segment struct {
	Kind SegmentKind
	Key  string
}

// Path is an ordered sequence of segments.
type Path []Segment

// String renders p back into the key syntax accepted by ParsePath.
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		switch s.Kind {
		case SegmentAppend:
			b.WriteString("[]")
			continue
		case SegmentBracket:
			b.WriteString("[" + s.Key + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.Key)
	}
	return b.String()
}

// ParsePath splits key into segments. Dots separate segments, and every
// [...] group starts a segment of its own, so "user.address[0].city" yields
// user, address, [0], city. Bracket contents are atomic: "a.[b.c].d" yields
// a, [b.c], d. Text directly following a closing bracket stays glued to it
// ("a[0]b" yields a, "[0]b" which is then a named key) and an unterminated
// bracket turns the rest of the key into a literal. Any string parses.
func ParsePath(key string, toLower bool) Path {
	if toLower {
		key = strings.ToLower(key)
	}
	chunks := splitKey(key)
	p := make(Path, 0, len(chunks))
	for _, c := range chunks {
		p = append(p, classify(c))
	}
	return p
}

// lookupPath parses a read key. A trailing [] on the whole key only hints that
// a list is expected, so it is dropped before descending.
func lookupPath(key string, toLower bool) Path {
	p := ParsePath(key, toLower)
	if n := len(p); n > 1 && p[n-1].Kind == SegmentAppend {
		p = p[:n-1]
	}
	return p
}

func classify(chunk string) Segment {
	switch {
	case chunk == "":
		return Segment{Kind: SegmentEmpty}
	case chunk == "[]":
		return Segment{Kind: SegmentAppend}
	case len(chunk) > 2 && chunk[0] == '[' && chunk[len(chunk)-1] == ']':
		return Segment{Kind: SegmentBracket, Key: chunk[1 : len(chunk)-1]}
	default:
		return Segment{Kind: SegmentNamed, Key: chunk}
	}
}

func splitKey(key string) []string {
	var (
		chunks []string
		cur    strings.Builder
	)
	flush := func() {
		chunks = append(chunks, cur.String())
		cur.Reset()
	}
	for i := 0; i < len(key); i++ {
		switch c := key[i]; c {
		case '.':
			flush()
		case '[':
			end := strings.IndexByte(key[i+1:], ']')
			if end < 0 {
				cur.WriteString(key[i:])
				i = len(key)
				continue
			}
			if cur.Len() > 0 {
				flush()
			}
			cur.WriteString(key[i : i+end+2])
			i += end + 1
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return chunks
}
