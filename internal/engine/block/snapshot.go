package block

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Snapshot is a plain, pointer-free copy of a subtree, used for dumps and
// structural comparisons in tests.
type Snapshot struct {
	ID       string     `yaml:"id"`
	Kind     string     `yaml:"kind"`
	HTML     string     `yaml:"html,omitempty"`
	Content  string     `yaml:"content,omitempty"`
	Inline   []Snapshot `yaml:"inline,omitempty"`
	Children []Snapshot `yaml:"children,omitempty"`
}

// Snapshot copies the whole document.
func (t *Tree) Snapshot() Snapshot {
	return SnapshotOf(t.root)
}

// SnapshotOf copies the subtree rooted at b.
func SnapshotOf(b *Block) Snapshot {
	s := Snapshot{
		ID:      b.id.String(),
		Kind:    b.kind.String(),
		HTML:    b.html,
		Content: b.content,
	}
	if b.inline != nil {
		for c := range b.inline.All() {
			s.Inline = append(s.Inline, SnapshotOf(c))
		}
	}
	if b.children != nil {
		for c := range b.children.All() {
			s.Children = append(s.Children, SnapshotOf(c))
		}
	}
	return s
}

// YAML encodes the snapshot.
func (s Snapshot) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// Shape returns a compact structural description with IDs replaced by
// names from the given map, e.g. "A(B C)". Blocks missing from names are
// written as their kind.
func (s Snapshot) Shape(names map[string]string) string {
	parts := make([]string, len(s.Children))
	for i, c := range s.Children {
		parts[i] = c.shape(names)
	}
	return strings.Join(parts, " ")
}

func (s Snapshot) shape(names map[string]string) string {
	name, ok := names[s.ID]
	if !ok {
		name = s.Kind
	}
	if len(s.Children) == 0 {
		return name
	}
	return name + "(" + s.Shape(names) + ")"
}
