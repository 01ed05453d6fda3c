package decomp

import (
	"bytes"
	"encoding/json"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/zhong/internal/datasource"
	"github.com/Iron-Ham/zhong/internal/errors"
	"github.com/Iron-Ham/zhong/internal/logging"
)

func loadFixture(t *testing.T) *Table {
	t.Helper()
	f, err := os.Open("testdata/decomposition.txt")
	require.NoError(t, err)
	defer f.Close()

	lines, err := datasource.Read(f)
	require.NoError(t, err)

	table, err := Load(lines)
	require.NoError(t, err)
	return table
}

func TestLoad_Fixture(t *testing.T) {
	table := loadFixture(t)

	assert.Equal(t, 17, table.Len())
	assert.True(t, table.Contains("好"))
	assert.True(t, table.Contains("100"))
	assert.False(t, table.Contains("火"))
	assert.Empty(t, table.Dropped())

	rec, err := table.Get("好")
	require.NoError(t, err)
	assert.Equal(t, Record{ID: "好", Kind: Character, Relation: Composition{Components: []string{"女", "子"}}, Line: 10}, rec)
}

func TestLoad_SkipsBlankLines(t *testing.T) {
	table, err := Load(datasource.FromStrings("女:z:c:", "", "   ", "子:z:c:"))
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	rec, err := table.Get("子")
	require.NoError(t, err)
	assert.Equal(t, 4, rec.Line)
}

func TestLoad_DropsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLoggerWithWriter(&buf, logging.LevelWarn)

	table, err := Load(datasource.FromStrings(
		"女:z:c:",
		"女子:z:c:",
		"髙:z:v:高口",
		"子:z:c:",
	), WithLogger(logger), WithSource("chars.txt"))
	require.NoError(t, err)

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []int{2, 3}, table.Dropped())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "decomp", entry["component"])
	assert.Equal(t, "chars.txt", entry["source"])
	assert.Equal(t, float64(2), entry["line"])
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(datasource.FromStrings("女:z:c:", "好:z:c"), WithSource("chars.txt"))
	require.Error(t, err)

	var malformedErr *errors.MalformedRecordError
	require.True(t, errors.As(err, &malformedErr))
	assert.Equal(t, 2, malformedErr.Line)
	assert.Equal(t, "chars.txt", malformedErr.Source)
	assert.Equal(t, "好:z:c", malformedErr.Text)
}

func TestLoad_DuplicateID(t *testing.T) {
	_, err := Load(datasource.FromStrings("女:z:c:", "子:z:c:", "女:z:c:子"))
	require.Error(t, err)

	assert.True(t, errors.Is(err, errors.ErrMalformedRecord))
	assert.True(t, errors.Is(err, errors.ErrDuplicateID))
	assert.Contains(t, err.Error(), "line=3")
	assert.Contains(t, err.Error(), "already defined on line 1")
}

func TestTable_Get_NotFound(t *testing.T) {
	table := loadFixture(t)

	_, err := table.Get("火")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestTable_Keys(t *testing.T) {
	table, err := Load(datasource.FromStrings("b:z:c:", "a:z:c:", "10:g:c:a,b"))
	require.NoError(t, err)

	keys := slices.Collect(table.Keys())
	slices.Sort(keys)
	assert.Equal(t, []string{"10", "a", "b"}, keys)
	assert.Equal(t, []string{"10", "a", "b"}, table.SortedKeys())
}

func TestFromRecords(t *testing.T) {
	table, err := FromRecords(
		Record{ID: "a", Kind: Character},
		Record{ID: "b", Kind: Character, Relation: Composition{Components: []string{"a"}}},
	)
	require.NoError(t, err)

	rec, err := table.Get("a")
	require.NoError(t, err)
	assert.Equal(t, Leaf{}, rec.Relation)

	_, err = FromRecords(Record{ID: "a"}, Record{ID: "a"})
	assert.True(t, errors.Is(err, errors.ErrDuplicateID))
}
