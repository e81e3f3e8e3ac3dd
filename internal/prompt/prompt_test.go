package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Summary(t *testing.T) {
	out, err := Render(KindSummary, "Team met to plan Q3.")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Return ONLY valid JSON (no markdown, no extra text)."))
	assert.Contains(t, out, `"key_points": ["string", "string", "string"]`)
	assert.True(t, strings.HasSuffix(out, "Text:\nTeam met to plan Q3."))
}

func TestRender_ActionItemsRuleSets(t *testing.T) {
	strict, err := Render(KindActionItems, "Ana sends the deck Monday.")
	require.NoError(t, err)
	brief, err := Render(KindActionItemsBrief, "Ana sends the deck Monday.")
	require.NoError(t, err)

	for _, out := range []string{strict, brief} {
		assert.Contains(t, out, `"priority": "high|medium|low|null"`)
		assert.Contains(t, out, `- If owner is not explicit, use "Unknown".`)
		assert.True(t, strings.HasSuffix(out, "Text:\nAna sends the deck Monday."))
	}

	assert.Contains(t, strict, "- Extract ALL action items mentioned in the text. Do not omit any.\n")
	assert.Contains(t, strict, "- Keep tasks short (3-10 words) and actionable (verb first).\n")
	assert.Contains(t, strict, "- If you are unsure, still include the item with best guess and nulls.")

	assert.Contains(t, brief, "- Extract ALL action items mentioned in the text.\n")
	assert.Contains(t, brief, "- Keep tasks short and actionable.\n")
	assert.NotContains(t, brief, "If you are unsure")
	assert.NotContains(t, brief, "\n\n\n")
}

func TestRender_Topic(t *testing.T) {
	out, err := Render(KindTopic, "embeddings")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "Topic: embeddings"))
	assert.Contains(t, out, `"bullets": ["string", "string", "string", "string"]`)
}

func TestRender_TextIsNotEscaped(t *testing.T) {
	out, err := Render(KindSummary, `<b>"quoted" & more</b>`)
	require.NoError(t, err)
	assert.Contains(t, out, `<b>"quoted" & more</b>`)
}

func TestRender_UnknownKind(t *testing.T) {
	_, err := Render(Kind("haiku"), "x")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
