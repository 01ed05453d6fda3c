package decomp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/zhong/internal/datasource"
	"github.com/Iron-Ham/zhong/internal/errors"
)

func TestResolve_Leaf(t *testing.T) {
	table := loadFixture(t)

	tree, err := Resolve(table, "女")
	require.NoError(t, err)

	assert.Equal(t, &Tree{ID: "女", Kind: Character, RelationKind: ComposedOf, Line: 5}, tree)
	assert.Equal(t, 0, tree.Depth())
}

func TestResolve_Composed(t *testing.T) {
	table := loadFixture(t)

	tree, err := Resolve(table, "車")
	require.NoError(t, err)

	require.Len(t, tree.Children, 2)
	group := tree.Children[0]
	assert.Equal(t, "100", group.ID)
	assert.Equal(t, Group, group.Kind)
	require.Len(t, group.Children, 2)
	assert.Equal(t, "二", group.Children[0].ID)
	assert.Equal(t, "丨", group.Children[1].ID)
	assert.Equal(t, "日", tree.Children[1].ID)
	assert.Equal(t, 2, tree.Depth())
}

func TestResolve_Variant(t *testing.T) {
	table := loadFixture(t)

	tree, err := Resolve(table, "髙")
	require.NoError(t, err)

	assert.Equal(t, VariantOf, tree.RelationKind)
	require.Len(t, tree.Children, 1)
	assert.Equal(t, "高", tree.Children[0].ID)
	assert.Len(t, tree.Children[0].Children, 2)
}

// Every record with components resolves to one child per component, in order.
func TestResolve_ShapeMatchesRecords(t *testing.T) {
	table := loadFixture(t)

	var check func(*Tree)
	check = func(tree *Tree) {
		rec, err := table.Get(tree.ID)
		require.NoError(t, err)
		refs := rec.Referents()
		require.Len(t, tree.Children, len(refs), tree.ID)
		for i, child := range tree.Children {
			assert.Equal(t, refs[i], child.ID)
			check(child)
		}
	}

	for _, id := range table.SortedKeys() {
		tree, err := Resolve(table, id)
		require.NoError(t, err, id)
		check(tree)
	}
}

func TestResolve_NotFound(t *testing.T) {
	table, err := Load(datasource.FromStrings("好:z:c:女,子", "女:z:c:"))
	require.NoError(t, err)

	_, err = Resolve(table, "火")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	_, err = Resolve(table, "好")
	require.Error(t, err)
	var nf *errors.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "子", nf.ResourceID)
}

func TestResolve_Cycle(t *testing.T) {
	table, err := Load(datasource.FromStrings(
		"u:z:c:v",
		"v:z:c:u",
		"s:z:c:s",
		"x:z:c:y",
		"y:z:c:20",
		"20:g:c:y",
	))
	require.NoError(t, err)

	tests := []struct {
		id   string
		path []string
	}{
		{"u", []string{"u", "v", "u"}},
		{"s", []string{"s", "s"}},
		{"x", []string{"x", "y", "20", "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			_, err := Resolve(table, tt.id)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCycleDetected))

			var cycleErr *errors.CycleError
			require.True(t, errors.As(err, &cycleErr))
			assert.Equal(t, tt.path, cycleErr.Path)
			assert.Zero(t, cycleErr.MaxDepth)
		})
	}
}

func TestResolve_SharedComponentIsNotCycle(t *testing.T) {
	table := loadFixture(t)

	// 轟 reaches group 100 through both 車 and group 200.
	tree, err := Resolve(table, "轟")
	require.NoError(t, err)
	assert.Equal(t, []string{"車", "二", "丨", "口"}, Flatten(tree))
}

func TestResolve_MaxDepth(t *testing.T) {
	table := loadFixture(t)

	_, err := Resolve(table, "好", WithMaxDepth(1))
	require.NoError(t, err)

	_, err = Resolve(table, "車", WithMaxDepth(1))
	require.Error(t, err)

	var cycleErr *errors.CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, 1, cycleErr.MaxDepth)
	assert.Equal(t, "車", cycleErr.ID)
	assert.Equal(t, []string{"車", "100", "二"}, cycleErr.Path)

	_, err = Resolve(table, "車", WithMaxDepth(0))
	assert.NoError(t, err, "non-positive depth keeps the default")
}

func TestFlatten(t *testing.T) {
	table := loadFixture(t)

	tests := []struct {
		id   string
		want []string
	}{
		{"女", []string{}},
		{"好", []string{"女", "子"}},
		{"本", []string{"木", "一"}},
		{"車", []string{"二", "丨", "日"}},
		{"髙", []string{"高"}},
		{"100", []string{"二", "丨"}},
		{"200", []string{"二", "丨", "口"}},
		{"轟", []string{"車", "二", "丨", "口"}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			tree, err := Resolve(table, tt.id)
			require.NoError(t, err)

			got := Flatten(tree)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlatten_VariantOfGroupedPrimary(t *testing.T) {
	table, err := Load(datasource.FromStrings(
		"a:z:c:",
		"b:z:c:",
		"p:z:c:10",
		"10:g:c:a,b",
		"q:z:v:p",
		"r:z:v:q",
	))
	require.NoError(t, err)

	tree, err := Resolve(table, "q")
	require.NoError(t, err)
	assert.Equal(t, []string{"p"}, Flatten(tree))

	// Chained variants stop at the immediate primary.
	tree, err = Resolve(table, "r")
	require.NoError(t, err)
	assert.Equal(t, []string{"q"}, Flatten(tree))
}

func TestFlattenOneLevelDown(t *testing.T) {
	table := loadFixture(t)

	tree, err := Resolve(table, "車")
	require.NoError(t, err)
	assert.Equal(t, []string{"車"}, FlattenOneLevelDown(tree))

	group, err := Resolve(table, "200")
	require.NoError(t, err)
	assert.Equal(t, []string{"二", "丨", "口"}, FlattenOneLevelDown(group))

	empty := &Tree{ID: "300", Kind: Group, RelationKind: ComposedOf}
	assert.Equal(t, []string{}, FlattenOneLevelDown(empty))
}

// Flatten concatenates FlattenOneLevelDown of the direct children.
func TestFlatten_ConcatenatesChildren(t *testing.T) {
	table := loadFixture(t)

	for _, id := range table.SortedKeys() {
		tree, err := Resolve(table, id)
		require.NoError(t, err)
		if tree.RelationKind == VariantOf {
			continue
		}
		want := []string{}
		for _, child := range tree.Children {
			want = append(want, FlattenOneLevelDown(child)...)
		}
		assert.Equal(t, want, Flatten(tree), id)
	}
}
