package decomp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/zhong/internal/errors"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Record
	}{
		{
			name: "leaf character",
			line: "女:z:c:",
			want: Record{ID: "女", Kind: Character, Relation: Leaf{}},
		},
		{
			name: "composed character",
			line: "好:z:c:女,子",
			want: Record{ID: "好", Kind: Character, Relation: Composition{Components: []string{"女", "子"}}},
		},
		{
			name: "single component",
			line: "乙:z:c:100",
			want: Record{ID: "乙", Kind: Character, Relation: Composition{Components: []string{"100"}}},
		},
		{
			name: "group",
			line: "37045:g:c:亠,口",
			want: Record{ID: "37045", Kind: Group, Relation: Composition{Components: []string{"亠", "口"}}},
		},
		{
			name: "variant",
			line: "髙:z:v:高",
			want: Record{ID: "髙", Kind: Character, Relation: Variant{Primary: "高"}},
		},
		{
			name: "surrounding whitespace",
			line: "  子:z:c:\r\n",
			want: Record{ID: "子", Kind: Character, Relation: Leaf{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLine_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		message string
	}{
		{"too few fields", "好:z:c", "expected 4 colon-separated fields, got 3"},
		{"too many fields", "好:z:c:女:子", "expected 4 colon-separated fields, got 5"},
		{"empty id", ":z:c:", "empty id"},
		{"unknown type", "好:x:c:", `unknown node type "x"`},
		{"unknown relation", "好:z:q:", `unknown relation "q"`},
		{"empty component", "好:z:c:女,,子", "empty component at position 2"},
		{"trailing comma", "好:z:c:女,", "empty component at position 2"},
		{"group variant", "10:g:v:高", "a group cannot be a variant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrMalformedRecord))
			assert.False(t, errors.Is(err, ErrDroppedLine))
			assert.Contains(t, err.Error(), tt.message)

			var malformedErr *errors.MalformedRecordError
			require.True(t, errors.As(err, &malformedErr))
			assert.NotEmpty(t, malformedErr.Text)
		})
	}
}

func TestParseLine_Dropped(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"multi code point character id", "女子:z:c:"},
		{"multi code point variant primary", "髙:z:v:高口"},
		{"empty variant primary", "髙:z:v:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDroppedLine))
			assert.False(t, errors.Is(err, errors.ErrMalformedRecord))
		})
	}
}

func TestRecord_RelationKind(t *testing.T) {
	assert.Equal(t, ComposedOf, Record{Relation: Leaf{}}.RelationKind())
	assert.Equal(t, ComposedOf, Record{Relation: Composition{Components: []string{"a"}}}.RelationKind())
	assert.Equal(t, VariantOf, Record{Relation: Variant{Primary: "a"}}.RelationKind())
}

func TestRecord_Referents(t *testing.T) {
	assert.Empty(t, Record{Relation: Leaf{}}.Referents())
	assert.Equal(t, []string{"a", "b"}, Record{Relation: Composition{Components: []string{"a", "b"}}}.Referents())
	assert.Equal(t, []string{"p"}, Record{Relation: Variant{Primary: "p"}}.Referents())
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "character", Character.String())
	assert.Equal(t, "group", Group.String())
	assert.Equal(t, "composed_of", ComposedOf.String())
	assert.Equal(t, "variant_of", VariantOf.String())

	text, err := Group.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "group", string(text))
}
