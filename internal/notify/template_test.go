package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderConfirmation_GreetsByName(t *testing.T) {
	content, err := RenderConfirmation("Ada Lovelace")
	require.NoError(t, err)

	assert.Equal(t, ConfirmationSubject, content.Subject)
	assert.Contains(t, content.HTML, "hey Ada Lovelace,")
	assert.Contains(t, content.Text, "hey Ada Lovelace,")
	assert.Contains(t, content.HTML, "mailto:team@techoptimum.org")
}

func TestRenderConfirmation_IsDeterministic(t *testing.T) {
	first, err := RenderConfirmation("Grace")
	require.NoError(t, err)
	second, err := RenderConfirmation("Grace")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderConfirmation_EscapesMarkupInHTML(t *testing.T) {
	content, err := RenderConfirmation(`<script>alert("x")</script>`)
	require.NoError(t, err)

	assert.NotContains(t, content.HTML, "<script>")
	assert.Contains(t, content.HTML, "&lt;script&gt;")
}

func TestRenderConfirmation_OnlyNameVaries(t *testing.T) {
	a, err := RenderConfirmation("A")
	require.NoError(t, err)
	b, err := RenderConfirmation("B")
	require.NoError(t, err)

	assert.Equal(t, len(a.HTML), len(b.HTML))
	assert.Equal(t, a.Subject, b.Subject)
}
