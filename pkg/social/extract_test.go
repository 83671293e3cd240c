package social

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPOIs_NumberedList(t *testing.T) {
	note := Note{
		Title: "Tokyo 3-day guide",
		Content: "1. Sensoji Temple grounds\n" +
			"2. Shibuya Sky observation deck\n" +
			"3. Tsukiji Outer Market stalls\n",
		URL:   "https://example.com/note/1",
		Likes: 120,
	}

	pois := ExtractPOIs(note)

	require.Len(t, pois, 3)
	assert.Equal(t, "Sensoji Temple grounds", pois[0].Name)
	assert.Equal(t, "Shibuya Sky observation deck", pois[1].Name)
	assert.Equal(t, "https://example.com/note/1", pois[0].SourceURL)
	assert.Equal(t, 120, pois[0].Likes)
}

func TestExtractPOIs_CircledNumbersAndPin(t *testing.T) {
	note := Note{
		Title:   "打卡清单",
		Content: "① 浅草寺 雷门前\n② 表参道 咖啡街\n📍 代官山 蔦屋书店",
	}

	pois := ExtractPOIs(note)
	require.Len(t, pois, 3)
	assert.Equal(t, "浅草寺 雷门前", pois[0].Name)
}

func TestExtractPOIs_CapPerNote(t *testing.T) {
	note := Note{
		Title: "mega list",
		Content: "1. First Place Here\n2. Second Place Here\n3. Third Place Here\n" +
			"4. Fourth Place Here\n5. Fifth Place Here\n6. Sixth Place Here\n7. Seventh Place Here\n",
	}
	assert.Len(t, ExtractPOIs(note), maxPOIsPerNote)
}

func TestExtractPOIs_TitleFallback(t *testing.T) {
	note := Note{
		Title:   "Hidden gem: Yanaka Ginza",
		Content: "A quiet shopping street with no numbered list at all.",
		Likes:   42,
	}

	pois := ExtractPOIs(note)
	require.Len(t, pois, 1)
	assert.Equal(t, "Hidden gem: Yanaka Ginza", pois[0].Name)
	assert.Equal(t, 42, pois[0].Likes)
}

func TestExtractPOIs_SkipsShortAndNumericNames(t *testing.T) {
	note := Note{
		Title:   "guide",
		Content: "1. ab\n2. 12345\n3. Proper Place Name\n",
	}
	pois := ExtractPOIs(note)
	require.Len(t, pois, 1)
	assert.Equal(t, "Proper Place Name", pois[0].Name)
}

func TestExtractAddress(t *testing.T) {
	text := "1. 浅草寺\n地址：東京都台東区浅草2-3-1 雷門通り\nmore text"
	addr := extractAddress(text, "浅草寺")
	assert.Equal(t, "東京都台東区浅草2-3-1 雷門通り", addr)
}

func TestExtractAddress_None(t *testing.T) {
	assert.Empty(t, extractAddress("no address info here at all", "somewhere"))
}
