package keymap

import (
	"github.com/dshills/keychord/internal/input/key"
)

// Table is an immutable set of bindings indexed for prefix lookup.
// A reload builds a new Table; existing tables are never mutated, so a
// Table may be shared freely between goroutines.
type Table struct {
	bindings []Binding
	tree     *prefixTree
	platform key.Platform
}

// NewTable builds a table from already validated bindings. Most callers
// want Load, which validates records and merges sources.
func NewTable(bindings []Binding, platform key.Platform) *Table {
	cp := make([]Binding, len(bindings))
	for i, b := range bindings {
		b.Pattern = b.Pattern.Clone()
		b.When = canonicalConditions(b.When)
		cp[i] = b
	}
	return newTable(cp, platform)
}

func newTable(bindings []Binding, platform key.Platform) *Table {
	t := &Table{
		bindings: bindings,
		tree:     newPrefixTree(),
		platform: platform,
	}
	for i := range t.bindings {
		t.tree.insert(&t.bindings[i])
	}
	return t
}

// Len returns the number of bindings.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.bindings)
}

// Platform returns the platform the table's "cmd" aliases were resolved for.
func (t *Table) Platform() key.Platform {
	if t == nil {
		return key.PlatformAny
	}
	return t.platform
}

// Bindings returns a copy of all bindings.
func (t *Table) Bindings() []Binding {
	if t == nil {
		return nil
	}
	out := make([]Binding, len(t.bindings))
	for i, b := range t.bindings {
		out[i] = b.clone()
	}
	return out
}

// Lookup returns the bindings whose pattern is exactly seq, regardless of
// conditions or platform.
func (t *Table) Lookup(seq key.Sequence) []Binding {
	if t == nil {
		return nil
	}
	n := t.tree.find(seq)
	if n == nil {
		return nil
	}
	out := make([]Binding, len(n.entries))
	for i, b := range n.entries {
		out[i] = b.clone()
	}
	return out
}

// HasPrefix reports whether any binding strictly extends seq.
func (t *Table) HasPrefix(seq key.Sequence) bool {
	if t == nil {
		return false
	}
	n := t.tree.find(seq)
	return n != nil && len(n.children) > 0
}

// BindingFor returns the preferred binding for a command on the platform:
// fewest conditions first, then user over default, then the earliest.
func (t *Table) BindingFor(cmd CommandID, platform key.Platform) (Binding, bool) {
	if t == nil {
		return Binding{}, false
	}
	var best *Binding
	for i := range t.bindings {
		b := &t.bindings[i]
		if b.Command != cmd || !b.Platform.Allows(platform) {
			continue
		}
		if best == nil || lessSpecificFirst(b, best) {
			best = b
		}
	}
	if best == nil {
		return Binding{}, false
	}
	return best.clone(), true
}

// DisplayFor renders the keys bound to cmd for menus and help text,
// or "" when the command is unbound on the platform.
func (t *Table) DisplayFor(cmd CommandID, platform key.Platform) string {
	b, ok := t.BindingFor(cmd, platform)
	if !ok {
		return ""
	}
	return b.Pattern.Display(platform)
}

func lessSpecificFirst(a, b *Binding) bool {
	if a.Specificity() != b.Specificity() {
		return a.Specificity() < b.Specificity()
	}
	if a.Source != b.Source {
		return a.Source == SourceUser
	}
	return a.Order < b.Order
}

// prefixTree indexes bindings by keystroke path.
type prefixTree struct {
	root *prefixNode
}

type prefixNode struct {
	children map[key.Keystroke]*prefixNode
	entries  []*Binding
}

func newPrefixTree() *prefixTree {
	return &prefixTree{root: newPrefixNode()}
}

func newPrefixNode() *prefixNode {
	return &prefixNode{children: make(map[key.Keystroke]*prefixNode)}
}

func (t *prefixTree) insert(b *Binding) {
	node := t.root
	for _, k := range b.Pattern {
		child, ok := node.children[k]
		if !ok {
			child = newPrefixNode()
			node.children[k] = child
		}
		node = child
	}
	node.entries = append(node.entries, b)
}

// find returns the node at seq, or nil when no binding passes through it.
func (t *prefixTree) find(seq key.Sequence) *prefixNode {
	node := t.root
	for _, k := range seq {
		child, ok := node.children[k]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// anyBelow reports whether a binding strictly below n satisfies keep.
func (n *prefixNode) anyBelow(keep func(*Binding) bool) bool {
	for _, child := range n.children {
		for _, b := range child.entries {
			if keep(b) {
				return true
			}
		}
		if child.anyBelow(keep) {
			return true
		}
	}
	return false
}
