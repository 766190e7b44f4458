package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogParses(t *testing.T) {
	courses, err := Catalog()
	require.NoError(t, err)
	require.NotEmpty(t, courses)
	assert.Equal(t, "CS410", courses[0].ID)
	assert.Equal(t, "Học máy", courses[0].Title)
}

func TestFindByIDOrCode(t *testing.T) {
	byID, ok := Find("CS410")
	require.True(t, ok)
	byCode, ok := Find(byID.Code)
	require.True(t, ok)
	assert.Equal(t, byID, byCode)

	_, ok = Find("CS999")
	assert.False(t, ok)
}

func TestChapterTitlesOrdered(t *testing.T) {
	c, ok := Find("CS410")
	require.True(t, ok)
	titles := c.ChapterTitles()
	require.Len(t, titles, len(c.Chapters))
	assert.Equal(t, "Tổng quan về học máy", titles[0])
	assert.Equal(t, "Mạng nơ-ron tích chập (CNN)", titles[len(titles)-1])
}
