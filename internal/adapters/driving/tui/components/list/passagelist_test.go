package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helicon-labs/ragview-cli/internal/core/domain"
)

func vectorResult() *domain.QueryResult {
	return &domain.QueryResult{
		Kind:  domain.KindVector,
		Query: "testing",
		Hits: []domain.VectorHit{
			{Text: "first passage", Distance: 0.11, Metadata: map[string]any{"source": "guide.pdf"}},
			{Text: "second passage", Distance: 0.42},
			{Text: "third passage", Distance: 0.77},
		},
	}
}

func llmResult() *domain.QueryResult {
	return &domain.QueryResult{
		Kind:   domain.KindLLM,
		Query:  "testing",
		Answer: "An answer.",
		Sources: []domain.SourceNode{
			{ID: "chunk-1", Text: "cited passage", Score: 0.93},
			{ID: "chunk-2", Text: "another citation", Score: 0.71},
		},
	}
}

func TestSetResult_VectorVariant(t *testing.T) {
	pl := NewPassageList(nil)
	pl.SetResult(vectorResult())

	require.Equal(t, 3, pl.Count())
	assert.Equal(t, "guide.pdf", pl.Passages()[0].Label)
	assert.Equal(t, "d=0.1100", pl.Passages()[0].Score)
	// Hits without a source metadata key fall back to their rank
	assert.Equal(t, "[2]", pl.Passages()[1].Label)
}

func TestSetResult_LLMVariant(t *testing.T) {
	pl := NewPassageList(nil)
	pl.SetResult(llmResult())

	require.Equal(t, 2, pl.Count())
	assert.Equal(t, "chunk-1", pl.Passages()[0].Label)
	assert.Equal(t, "0.93", pl.Passages()[0].Score)
}

func TestSetResult_ResetsSelection(t *testing.T) {
	pl := NewPassageList(nil)
	pl.SetResult(vectorResult())
	pl.MoveDown()
	pl.MoveDown()
	require.Equal(t, 2, pl.Selected())

	pl.SetResult(llmResult())
	assert.Equal(t, 0, pl.Selected())
}

func TestSetResult_NilClears(t *testing.T) {
	pl := NewPassageList(nil)
	pl.SetResult(vectorResult())
	pl.SetResult(nil)

	assert.True(t, pl.IsEmpty())
}

func TestNavigation_Bounds(t *testing.T) {
	pl := NewPassageList(nil)
	pl.SetResult(vectorResult())

	pl.MoveUp()
	assert.Equal(t, 0, pl.Selected())

	pl.MoveDown()
	pl.MoveDown()
	pl.MoveDown()
	pl.MoveDown()
	assert.Equal(t, 2, pl.Selected())
}

func TestSelectedPassage(t *testing.T) {
	pl := NewPassageList(nil)
	assert.Nil(t, pl.SelectedPassage())

	pl.SetResult(llmResult())
	got := pl.SelectedPassage()
	require.NotNil(t, got)
	assert.Equal(t, "chunk-1", got.Label)
}

func TestView_EmptyList(t *testing.T) {
	pl := NewPassageList(nil)
	assert.Contains(t, pl.View(), "No results")
}

func TestView_RendersPassages(t *testing.T) {
	pl := NewPassageList(nil)
	pl.SetDimensions(100, 20)
	pl.SetResult(vectorResult())

	out := pl.View()
	assert.Contains(t, out, "Passages (3)")
	assert.Contains(t, out, "first passage")
}

func TestSetSelected_IgnoresOutOfRange(t *testing.T) {
	pl := NewPassageList(nil)
	pl.SetResult(llmResult())

	pl.SetSelected(5)
	assert.Equal(t, 0, pl.Selected())

	pl.SetSelected(1)
	assert.Equal(t, 1, pl.Selected())
}
