package menuscan_test

import (
	"testing"

	"github.com/jwalczak/menuscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesFromMarkdown_Empty(t *testing.T) {
	t.Parallel()

	assert.Nil(t, menuscan.LinesFromMarkdown("", 0))
	assert.Nil(t, menuscan.LinesFromMarkdown("  \n\n", 0))
}

func TestLinesFromMarkdown_HeadingsGetSizeHints(t *testing.T) {
	t.Parallel()

	corpus := menuscan.LinesFromMarkdown("# Dinner\n\n## Appetizers\n\nCalamari $12", 1)

	require.Len(t, corpus, 3)
	assert.Equal(t, "Dinner", corpus[0].Text)
	assert.True(t, corpus[0].Bold)
	assert.Greater(t, corpus[0].FontSize, corpus[1].FontSize)
	assert.Equal(t, "Appetizers", corpus[1].Text)
	assert.Equal(t, "Calamari $12", corpus[2].Text)
	assert.Zero(t, corpus[2].FontSize)
	assert.Equal(t, 1, corpus[2].Page)
}

func TestLinesFromMarkdown_BoldOnlyLine(t *testing.T) {
	t.Parallel()

	corpus := menuscan.LinesFromMarkdown("**SPECIALS**\n\nPot Roast $18", 0)

	require.Len(t, corpus, 2)
	assert.Equal(t, "SPECIALS", corpus[0].Text)
	assert.True(t, corpus[0].Bold)
	assert.False(t, corpus[1].Bold)
}

func TestLinesFromMarkdown_ListNesting(t *testing.T) {
	t.Parallel()

	corpus := menuscan.LinesFromMarkdown("- Wings $12\n  - add blue cheese 1", 0)

	require.Len(t, corpus, 2)
	assert.Equal(t, "Wings $12", corpus[0].Text)
	assert.Equal(t, 0, corpus[0].Indent)
	assert.Equal(t, "add blue cheese 1", corpus[1].Text)
	assert.Equal(t, 1, corpus[1].Indent)
}

func TestLinesFromMarkdown_TableRowKeepsDelimiters(t *testing.T) {
	t.Parallel()

	md := "| Soup | Cup 4 | Bowl 6 |\n| --- | --- | --- |\n| Chili | Cup 5 | Bowl 7 |"
	corpus := menuscan.LinesFromMarkdown(md, 0)

	require.Len(t, corpus, 2)
	assert.Contains(t, corpus[0].Text, "Soup")
	assert.Contains(t, corpus[0].Text, "|")
}

func TestLinesFromMarkdown_DropsCodeFencesAndImages(t *testing.T) {
	t.Parallel()

	md := "Burger $15\n```\nnot menu content\n```\n![menu photo](menu.jpg)\n[Dinner PDF](dinner.pdf)"
	corpus := menuscan.LinesFromMarkdown(md, 0)

	require.Len(t, corpus, 2)
	assert.Equal(t, "Burger $15", corpus[0].Text)
	assert.Equal(t, "Dinner PDF", corpus[1].Text)
}

func TestLine_PreParsed(t *testing.T) {
	t.Parallel()

	assert.False(t, menuscan.Line{Text: "x"}.PreParsed())
	assert.True(t, menuscan.Line{Item: &menuscan.SegmentedItem{Name: "x"}}.PreParsed())
}
