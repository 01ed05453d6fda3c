package lexicon

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/zhong/internal/charset"
	"github.com/Iron-Ham/zhong/internal/datasource"
	"github.com/Iron-Ham/zhong/internal/errors"
)

func loadSample(t *testing.T) *Dictionary {
	t.Helper()
	f, err := os.Open("testdata/cedict.txt")
	require.NoError(t, err)
	defer f.Close()

	lines, err := datasource.Read(f)
	require.NoError(t, err)

	d := New()
	require.NoError(t, d.Load(lines))
	return d
}

func gateway1(t *testing.T, e Entry) {
	t.Helper()
	assert.Equal(t, "門", e.Traditional)
	assert.Equal(t, "门", e.Simplified)
	assert.Equal(t, "men2", e.Pinyin)
	assert.Equal(t, []string{"gate", "door", "gateway", "doorway", "opening"}, e.English)
	assert.Equal(t, []string{"扇", "個"}, e.TraditionalMeasureWords)
	assert.Equal(t, []string{"扇", "个"}, e.SimplifiedMeasureWords)
}

func gateway2(t *testing.T, e Entry) {
	t.Helper()
	assert.Equal(t, "門口", e.Traditional)
	assert.Equal(t, "门口", e.Simplified)
	assert.Equal(t, "men2 kou3", e.Pinyin)
	assert.Equal(t, []string{"doorway", "gate"}, e.English)
	assert.Equal(t, []string{"個"}, e.TraditionalMeasureWords)
	assert.Equal(t, []string{"个"}, e.SimplifiedMeasureWords)
}

func TestLoad(t *testing.T) {
	d := loadSample(t)
	assert.Equal(t, 5, d.Len())
	assert.Equal(t, 2, d.MaxWordLength())
}

func TestFind(t *testing.T) {
	d := loadSample(t)

	result := d.Find("門", charset.Traditional)
	require.Len(t, result, 1)
	gateway1(t, result[0])

	result = d.Find("門口", charset.Traditional)
	require.Len(t, result, 1)
	gateway2(t, result[0])

	result = d.Find("门", charset.Simplified)
	require.Len(t, result, 1)
	gateway1(t, result[0])

	result = d.Find("门口", charset.Simplified)
	require.Len(t, result, 1)
	gateway2(t, result[0])

	assert.Empty(t, d.Find("门", charset.Traditional))
}

func TestFind_BothSetsDeduplicates(t *testing.T) {
	d := loadSample(t)

	// 本子 has the same traditional and simplified form.
	result := d.Find("本子", charset.Both)
	require.Len(t, result, 1)
	assert.Equal(t, "ben3 zi5", result[0].Pinyin)
}

func TestFind_MultipleMeasureWords(t *testing.T) {
	d := loadSample(t)

	result := d.Find("課", charset.Both)
	require.Len(t, result, 1)
	assert.Equal(t, []string{"門", "堂", "節"}, result[0].TraditionalMeasureWords)
	assert.Equal(t, []string{"门", "堂", "节"}, result[0].SimplifiedMeasureWords)
}

func TestFindEnglish(t *testing.T) {
	d := loadSample(t)

	for _, term := range []string{"gate", "doorway", "Gate"} {
		t.Run(term, func(t *testing.T) {
			result := d.FindEnglish(term)
			require.Len(t, result, 2)
			gateway2(t, result[0])
			gateway1(t, result[1])
		})
	}

	assert.Len(t, d.FindEnglish("seem"), 1)
	assert.Empty(t, d.FindEnglish("door-"))
	assert.Empty(t, d.FindEnglish(""))
}

func TestHasWord(t *testing.T) {
	d := loadSample(t)

	assert.True(t, d.HasWord(charset.Traditional, "門"))
	assert.False(t, d.HasWord(charset.Simplified, "門"))
	assert.True(t, d.HasWord(charset.Both, "門"))

	assert.False(t, d.HasWord(charset.Traditional, "门"))
	assert.True(t, d.HasWord(charset.Simplified, "门"))
	assert.True(t, d.HasWord(charset.Both, "门"))

	assert.True(t, d.HasWord(charset.Traditional, "門口"))
	assert.False(t, d.HasWord(charset.Traditional, "门口"))
	assert.False(t, d.HasWord(charset.Simplified, "門口"))

	assert.False(t, d.HasWord(charset.Traditional, "Hello"))
}

func TestAdd(t *testing.T) {
	d := New()
	d.Add(charset.Traditional, "A", "AB", "")
	d.Add(charset.Both, "CCC")

	assert.True(t, d.HasWord(charset.Traditional, "AB"))
	assert.False(t, d.HasWord(charset.Simplified, "AB"))
	assert.True(t, d.HasWord(charset.Simplified, "CCC"))
	assert.False(t, d.HasWord(charset.Traditional, ""))
	assert.Equal(t, 3, d.MaxWordLength())
	assert.Equal(t, 0, d.Len())
	assert.Empty(t, d.Find("AB", charset.Traditional))
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"missing pinyin", "門 门 /gate/"},
		{"missing glosses", "門 门 [men2]"},
		{"single headword", "門 [men2] /gate/"},
		{"bad measure word", "門 门 [men2] /gate/CL:扇/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().Load(datasource.FromStrings("# header", tt.line))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrMalformedRecord))

			var malformedErr *errors.MalformedRecordError
			require.True(t, errors.As(err, &malformedErr))
			assert.Equal(t, 2, malformedErr.Line)
		})
	}
}
