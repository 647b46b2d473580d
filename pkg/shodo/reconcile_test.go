package shodo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildComposite(t *testing.T) {
	full := BuildComposite("T", "L", "B", "C")
	assert.Equal(t, "[TITLE]\nT\n\n[LEAD]\nL\n\n[BODY]\nB\n\n[CONTACT]\nC", full)

	// Blank sections are omitted, marker and all.
	partial := BuildComposite("T", "", "B", "   ")
	assert.Equal(t, "[TITLE]\nT\n\n[BODY]\nB", partial)

	assert.Equal(t, "", BuildComposite("", "", "", ""))
}

func TestSectionIndexMap_RuneOffsets(t *testing.T) {
	composite := BuildComposite("ああ", "いい", "", "")
	idx := SectionIndexMap(composite)

	assert.Equal(t, 0, idx["title"])
	// "[TITLE]\nああ\n\n" is 12 runes but more bytes; offsets count runes.
	assert.Equal(t, 12, idx["lead"])
	assert.Equal(t, -1, idx["body"])
	assert.Equal(t, -1, idx["contact"])
}

func TestGuessSection(t *testing.T) {
	composite := BuildComposite("AAA", "BBB", "CCC", "")
	idx := SectionIndexMap(composite)
	require.Equal(t, 0, idx["title"])
	require.Equal(t, 13, idx["lead"])
	require.Equal(t, 25, idx["body"])

	cases := []struct {
		offset int
		want   string
	}{
		{0, "title"},
		{5, "title"},
		{12, "title"},
		{13, "lead"},
		{14, "lead"},
		{25, "body"},
		{100, "body"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, GuessSection(c.offset, idx), "offset %d", c.offset)
	}

	// No marker qualifies: default to body.
	none := map[string]int{"title": -1, "lead": -1, "body": -1, "contact": -1}
	assert.Equal(t, "body", GuessSection(3, none))
}

func TestNormalizeMessage_Aliases(t *testing.T) {
	m := NormalizeMessage(map[string]any{
		"category": "ら抜き言葉",
		"src":      "見れる",
		"dst":      "見られる",
		"pos":      float64(3),
		"len":      float64(3),
		"title":    "ら抜き言葉の可能性",
		"detail":   "可能の意味では「られる」を使います",
	})

	assert.Equal(t, "ら抜き言葉", m.Type)
	assert.Equal(t, "見れる", m.Before)
	assert.Equal(t, "見られる", m.After)
	require.NotNil(t, m.Offset)
	assert.Equal(t, 3, *m.Offset)
	require.NotNil(t, m.Length)
	assert.Equal(t, 3, *m.Length)
	assert.Equal(t, "ら抜き言葉の可能性", m.Message)
	assert.Equal(t, "可能の意味では「られる」を使います", m.Explanation)
}

func TestNormalizeMessage_CanonicalNameWins(t *testing.T) {
	m := NormalizeMessage(map[string]any{
		"type":     "敬語",
		"category": "ignored",
		"offset":   float64(7),
		"pos":      float64(99),
	})
	assert.Equal(t, "敬語", m.Type)
	require.NotNil(t, m.Offset)
	assert.Equal(t, 7, *m.Offset)
}

func TestNormalizeMessage_LengthFromBounds(t *testing.T) {
	m := NormalizeMessage(map[string]any{
		"index":    float64(5),
		"index_to": float64(9),
	})
	require.NotNil(t, m.Offset)
	assert.Equal(t, 5, *m.Offset)
	require.NotNil(t, m.Length)
	assert.Equal(t, 4, *m.Length)
}

func TestNormalizeMessage_AbsentFieldsStayNil(t *testing.T) {
	m := NormalizeMessage(map[string]any{"message": "x"})
	assert.Nil(t, m.Offset)
	assert.Nil(t, m.Length)
	assert.Equal(t, "x", m.Message)
}

func TestDecorate_InfersSections(t *testing.T) {
	composite := BuildComposite("AAA", "BBB", "CCC", "")
	result := map[string]any{
		"status": "done",
		"messages": []any{
			map[string]any{"type": "敬語", "offset": float64(5)},
			map[string]any{"type": "ら抜き言葉", "offset": float64(30), "before": "見れる", "after": "見られる"},
			map[string]any{"type": "その他"}, // no offset, no section
			"garbage entry",
		},
	}

	r := Decorate(result, composite)
	assert.Equal(t, "done", r.Status)
	require.Len(t, r.Messages, 3)
	assert.Equal(t, "title", r.Messages[0].Section)
	assert.Equal(t, "body", r.Messages[1].Section)
	assert.Equal(t, "", r.Messages[2].Section)

	require.NotNil(t, r.Summary)
	assert.Equal(t, 3, r.Summary.Counts.Total)
	assert.Equal(t, 1, r.Summary.Counts.Ranuki)
	assert.Equal(t, 1, r.Summary.Counts.Keigo)
	assert.Equal(t, 1, r.Summary.BySection["title"])
	assert.Equal(t, 1, r.Summary.BySection["body"])
	assert.Equal(t, 0, r.Summary.BySection["lead"])
}

func TestDecorate_EmptyCompositeSkipsInference(t *testing.T) {
	result := map[string]any{
		"status":   "done",
		"messages": []any{map[string]any{"offset": float64(5)}},
	}
	r := Decorate(result, "")
	require.Len(t, r.Messages, 1)
	assert.Equal(t, "", r.Messages[0].Section)
}

func TestSummarize_RanukiDetectionAndSampleCap(t *testing.T) {
	var msgs []*Message
	for i := 0; i < 8; i++ {
		msgs = append(msgs, &Message{
			Type:    "文法",
			Message: fmt.Sprintf("ら抜き言葉の可能性 %d", i),
			Section: "body",
			Before:  "見れる",
			After:   "見られる",
		})
	}
	// Detected through explanation text too.
	msgs = append(msgs, &Message{Explanation: "ら抜きの指摘", Section: "lead"})

	s := Summarize(msgs)
	assert.Equal(t, 9, s.Counts.Total)
	assert.Equal(t, 9, s.Counts.Ranuki)
	assert.Len(t, s.RanukiSamples, 5)
	assert.Equal(t, "body", s.RanukiSamples[0].Section)
	assert.Equal(t, "見れる", s.RanukiSamples[0].Before)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Counts.Total)
	assert.Equal(t, map[string]int{"title": 0, "lead": 0, "body": 0, "contact": 0}, s.BySection)
	require.NotNil(t, s.RanukiSamples)
	assert.Empty(t, s.RanukiSamples)
}
