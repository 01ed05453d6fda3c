package decomp

import (
	"github.com/Iron-Ham/zhong/internal/errors"
)

// DefaultMaxDepth bounds tree resolution when no WithMaxDepth is given.
const DefaultMaxDepth = 64

// Tree is a record with its references replaced by resolved subtrees.
// Trees are built per call and owned by the caller.
type Tree struct {
	ID           string       `json:"id" yaml:"id"`
	Kind         NodeKind     `json:"kind" yaml:"kind"`
	RelationKind RelationKind `json:"relation" yaml:"relation"`
	Children     []*Tree      `json:"children,omitempty" yaml:"children,omitempty"`
	Line         int          `json:"line,omitempty" yaml:"line,omitempty"`
}

// Depth returns the number of edges on the longest root-to-leaf path.
func (t *Tree) Depth() int {
	depth := 0
	for _, c := range t.Children {
		depth = max(depth, c.Depth()+1)
	}
	return depth
}

type resolveOptions struct {
	maxDepth int
}

// ResolveOption configures Resolve.
type ResolveOption func(*resolveOptions)

// WithMaxDepth fails resolution of any tree deeper than depth.
// Values below 1 keep the default.
func WithMaxDepth(depth int) ResolveOption {
	return func(o *resolveOptions) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// Resolve builds the decomposition tree rooted at id.
//
// A missing id, at the root or anywhere below it, is a NotFoundError.
// Revisiting an id already on the current path, or going deeper than the
// maximum depth, is a CycleError. Components shared by several branches
// are resolved once per branch and are not cycles.
func Resolve(t *Table, id string, opts ...ResolveOption) (*Tree, error) {
	o := resolveOptions{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	r := &resolver{
		table:    t,
		maxDepth: o.maxDepth,
		onPath:   make(map[string]bool),
	}
	return r.resolve(id)
}

type resolver struct {
	table    *Table
	maxDepth int
	path     []string
	onPath   map[string]bool
}

func (r *resolver) resolve(id string) (*Tree, error) {
	if r.onPath[id] {
		return nil, errors.NewCycleError(id).WithPath(append(r.path, id))
	}
	if len(r.path) > r.maxDepth {
		return nil, errors.NewCycleError(r.path[0]).
			WithMaxDepth(r.maxDepth).
			WithPath(append(r.path, id))
	}

	rec, err := r.table.Get(id)
	if err != nil {
		return nil, err
	}

	r.path = append(r.path, id)
	r.onPath[id] = true
	defer func() {
		r.path = r.path[:len(r.path)-1]
		delete(r.onPath, id)
	}()

	tree := &Tree{
		ID:           rec.ID,
		Kind:         rec.Kind,
		RelationKind: rec.RelationKind(),
		Line:         rec.Line,
	}

	refs := rec.Referents()
	if len(refs) == 0 {
		return tree, nil
	}

	tree.Children = make([]*Tree, 0, len(refs))
	for _, ref := range refs {
		child, err := r.resolve(ref)
		if err != nil {
			return nil, err
		}
		tree.Children = append(tree.Children, child)
	}
	return tree, nil
}

// FlattenOneLevelDown lists the characters directly visible at the top of
// tree: a character is itself, and a group is replaced by the characters
// its children expose.
func FlattenOneLevelDown(tree *Tree) []string {
	if tree.Kind == Character {
		return []string{tree.ID}
	}
	out := []string{}
	for _, child := range tree.Children {
		out = append(out, FlattenOneLevelDown(child)...)
	}
	return out
}

// Flatten returns the direct structural components of tree with groups
// expanded. An irreducible character yields an empty, non-nil slice. A
// variant yields its primary, not the primary's components.
func Flatten(tree *Tree) []string {
	if tree.Kind == Character && tree.RelationKind == VariantOf && len(tree.Children) == 1 {
		return FlattenOneLevelDown(tree.Children[0])
	}
	out := []string{}
	for _, child := range tree.Children {
		out = append(out, FlattenOneLevelDown(child)...)
	}
	return out
}
