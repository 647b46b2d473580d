package judge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserPayload_Markers(t *testing.T) {
	payload := userPayload(Input{
		Title:       "タイトル",
		Lead:        "リード",
		Body:        "本文",
		Contact:     "press@example.jp",
		TargetHooks: 3,
	})

	for _, marker := range []string{"<INPUTS>", "[TITLE]", "[LEAD]", "[BODY]", "[CONTACT]", "[TARGET_HOOKS]", "</INPUTS>"} {
		assert.Contains(t, payload, marker)
	}
	assert.Contains(t, payload, "press@example.jp")
	assert.Contains(t, payload, "\n3\n")

	// Sections stay in document order.
	assert.Less(t, strings.Index(payload, "[TITLE]"), strings.Index(payload, "[LEAD]"))
	assert.Less(t, strings.Index(payload, "[LEAD]"), strings.Index(payload, "[BODY]"))
}

func TestSystemPrompt_PerSchema(t *testing.T) {
	scored := systemPrompt(SchemaScored)
	assert.Contains(t, scored, "0 / 0.5 / 1")
	assert.Contains(t, scored, "detected")

	flat := systemPrompt(SchemaFlat)
	assert.Contains(t, flat, "scores")
	assert.Contains(t, flat, "suggestion")

	// Both contracts enumerate every catalog hook by its exact name.
	for _, hook := range HookCatalog {
		assert.Contains(t, scored, hook)
		assert.Contains(t, flat, hook)
	}
}
