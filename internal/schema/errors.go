package schema

import (
	"encoding/json"
	"sort"
	"strings"
)

// ErrorTree is a recursive validation error structure mirroring the document
// shape lazily: a node is either a leaf carrying one message or a mapping from
// path segment to subtree. Only paths that actually failed are present.
type ErrorTree struct {
	message  string
	children map[string]*ErrorTree
}

// Leaf creates a terminal node holding a single error message.
func Leaf(message string) *ErrorTree {
	return &ErrorTree{message: message}
}

// Node creates an empty branch node.
func Node() *ErrorTree {
	return &ErrorTree{children: make(map[string]*ErrorTree)}
}

// IsLeaf reports whether the node carries a message rather than children.
func (t *ErrorTree) IsLeaf() bool {
	return t != nil && t.children == nil
}

// Message returns the leaf message, or "" for branch nodes.
func (t *ErrorTree) Message() string {
	if t == nil {
		return ""
	}
	return t.message
}

// Empty reports whether the tree contains no errors at all.
func (t *ErrorTree) Empty() bool {
	if t == nil {
		return true
	}
	if t.IsLeaf() {
		return t.message == ""
	}
	return len(t.children) == 0
}

// Add inserts a message at the given dotted path, creating intermediate
// branch nodes as needed. Adding under an existing leaf converts it to a
// branch; the earlier leaf message is discarded in favor of the deeper path.
func (t *ErrorTree) Add(path, message string) {
	segs := strings.Split(path, ".")
	cur := t
	for i, seg := range segs {
		if cur.children == nil {
			cur.children = make(map[string]*ErrorTree)
			cur.message = ""
		}
		if i == len(segs)-1 {
			cur.children[seg] = Leaf(message)
			return
		}
		next, ok := cur.children[seg]
		if !ok || next.IsLeaf() {
			next = Node()
			cur.children[seg] = next
		}
		cur = next
	}
}

// Lookup returns the message stored at the exact dotted path.
func (t *ErrorTree) Lookup(path string) (string, bool) {
	cur := t
	for _, seg := range strings.Split(path, ".") {
		if cur == nil || cur.children == nil {
			return "", false
		}
		cur = cur.children[seg]
	}
	if cur != nil && cur.IsLeaf() && cur.message != "" {
		return cur.message, true
	}
	return "", false
}

// Delete removes the subtree rooted at the given top-level key. Used to clear
// a section's errors after a successful partial validation.
func (t *ErrorTree) Delete(key string) {
	if t != nil && t.children != nil {
		delete(t.children, key)
	}
}

// Flatten returns every leaf as a dotted-path → message mapping, sorted keys
// making the aggregate list stable for display.
func (t *ErrorTree) Flatten() map[string]string {
	out := make(map[string]string)
	t.flattenInto("", out)
	return out
}

func (t *ErrorTree) flattenInto(prefix string, out map[string]string) {
	if t == nil {
		return
	}
	if t.IsLeaf() {
		if t.message != "" {
			out[prefix] = t.message
		}
		return
	}
	for key, child := range t.children {
		p := key
		if prefix != "" {
			p = prefix + "." + key
		}
		child.flattenInto(p, out)
	}
}

// Paths returns the sorted dotted paths of all leaves.
func (t *ErrorTree) Paths() []string {
	flat := t.Flatten()
	paths := make([]string, 0, len(flat))
	for p := range flat {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// MarshalJSON renders leaves as bare strings and branches as objects, the
// shape consumed by form UIs.
func (t *ErrorTree) MarshalJSON() ([]byte, error) {
	if t.IsLeaf() {
		return json.Marshal(t.message)
	}
	m := make(map[string]*ErrorTree, len(t.children))
	for k, v := range t.children {
		m[k] = v
	}
	return json.Marshal(m)
}
