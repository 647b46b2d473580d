package judge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_EmptyObjectGetsFullDefaults(t *testing.T) {
	n := Normalizer{Schema: SchemaScored, TargetHooks: 3}

	res, err := n.Normalize(`{}`)
	require.NoError(t, err)
	require.NotNil(t, res.Scored)

	for _, k := range []string{"title", "lead", "body"} {
		sec := res.Scored.FiveW2H[k]
		require.NotNil(t, sec, "section %s must exist", k)
		assert.Zero(t, sec.Who)
		assert.Zero(t, sec.ToWhom)
		assert.Empty(t, sec.Evidence)
		// Every element scored 0 is missing.
		assert.ElementsMatch(t,
			[]string{"Who", "What", "Where", "When", "Why", "How", "HowMuch", "ToWhom"},
			sec.Missing)
	}

	assert.Empty(t, res.Scored.Hooks.Detected)
	assert.Empty(t, res.Scored.Hooks.Missing)
	assert.Equal(t, 3, res.Scored.Hooks.Target)

	assert.False(t, res.Scored.Contact.Exists)
	assert.Zero(t, res.Scored.Contact.Confidence)
	assert.Empty(t, res.Scored.Contact.Evidence)
}

func TestNormalize_RejectsUnusableInput(t *testing.T) {
	n := Normalizer{Schema: SchemaScored, TargetHooks: 3}

	for _, raw := range []string{"", "   \n\t", "[1,2,3]", `"a string"`, "null", "42", "not json at all"} {
		_, err := n.Normalize(raw)
		require.Error(t, err, "input %q must be rejected", raw)
		assert.ErrorIs(t, err, ErrInvalidJudgment)
	}
}

func TestNormalize_StripsCodeFences(t *testing.T) {
	n := Normalizer{Schema: SchemaScored, TargetHooks: 3}

	res, err := n.Normalize("```json\n{\"contact\":{\"exists\":true,\"confidence\":0.9}}\n```")
	require.NoError(t, err)
	assert.True(t, res.Scored.Contact.Exists)
	assert.InDelta(t, 0.9, res.Scored.Contact.Confidence, 1e-9)
}

func TestNormalize_MissingIsUnionOfSuppliedAndDerived(t *testing.T) {
	n := Normalizer{Schema: SchemaScored, TargetHooks: 3}

	raw := `{"fiveW2H":{"title":{
		"who":1,"what":1,"when":1,"why":1,"how":1,"howMuch":1,"toWhom":1,
		"where":0,
		"missing":["where"],
		"evidence":["10/1開始"]
	}}}`

	res, err := n.Normalize(raw)
	require.NoError(t, err)

	title := res.Scored.FiveW2H["title"]
	// Canonicalized and deduplicated even though it is both supplied
	// (lowercase) and derived from the score.
	assert.Equal(t, []string{"Where"}, title.Missing)
}

func TestNormalize_MissingNeverTrustsTheJudge(t *testing.T) {
	n := Normalizer{Schema: SchemaScored, TargetHooks: 3}

	// The judge claims nothing is missing while scoring several elements
	// below 1; the scores win.
	raw := `{"fiveW2H":{"lead":{
		"who":1,"what":0.5,"where":1,"when":1,"why":0,"how":1,"howMuch":1,"toWhom":1,
		"missing":[]
	}}}`

	res, err := n.Normalize(raw)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"What", "Why"}, res.Scored.FiveW2H["lead"].Missing)
}

func TestNormalize_UnrecognizedMissingNamesAreDropped(t *testing.T) {
	n := Normalizer{Schema: SchemaScored, TargetHooks: 3}

	raw := `{"fiveW2H":{"title":{
		"who":1,"what":1,"where":1,"when":1,"why":1,"how":1,"howMuch":1,"toWhom":1,
		"missing":["Banana","HOWMUCH"]
	}}}`

	res, err := n.Normalize(raw)
	require.NoError(t, err)
	// "Banana" is dropped; "HOWMUCH" canonicalizes despite the odd casing.
	assert.Equal(t, []string{"HowMuch"}, res.Scored.FiveW2H["title"].Missing)
}

func TestNormalize_EvidenceScoreInvariantIsNotRepaired(t *testing.T) {
	n := Normalizer{Schema: SchemaScored, TargetHooks: 3}

	// A score of 1 with no evidence violates the judge's own contract.
	// The normalizer must neither crash nor "fix" the score.
	raw := `{"fiveW2H":{"title":{
		"who":1,"what":1,"where":1,"when":1,"why":1,"how":1,"howMuch":1,"toWhom":1,
		"evidence":[]
	}}}`

	res, err := n.Normalize(raw)
	require.NoError(t, err)
	title := res.Scored.FiveW2H["title"]
	assert.Equal(t, 1.0, title.Who)
	assert.Empty(t, title.Evidence)
	assert.NotContains(t, title.Missing, "Who")
}

func TestNormalize_HookTargetDefaultsAndOverrides(t *testing.T) {
	n := Normalizer{Schema: SchemaScored, TargetHooks: 4}

	res, err := n.Normalize(`{}`)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Scored.Hooks.Target)

	res, err = n.Normalize(`{"hooks":{"target":7}}`)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Scored.Hooks.Target)
}

func TestNormalize_Idempotent(t *testing.T) {
	n := Normalizer{Schema: SchemaScored, TargetHooks: 3}

	raw := `{"fiveW2H":{"title":{"who":1,"where":0.5,"missing":["why"],"evidence":["株式会社Example"]}},
		"hooks":{"detected":[{"name":"地域性","score":0.8,"evidence":["東京都"]}],"missing":["意外性"],"target":3},
		"contact":{"exists":true,"confidence":0.7,"evidence":["press@example.jp"]}}`

	first, err := n.Normalize(raw)
	require.NoError(t, err)

	serialized, err := json.Marshal(first)
	require.NoError(t, err)

	second, err := n.Normalize(string(serialized))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalize_FlatSchema(t *testing.T) {
	n := Normalizer{Schema: SchemaFlat, TargetHooks: 3}

	raw := `{"fiveW2H":{
		"title":{"missing":["where","Nonsense"],"suggestion":"地名を入れる"},
		"lead":{}
	},
	"hooks":{"scores":[{"name":"地域性","score":0.9}],"suggestion":["季節の話題を足す"]}}`

	res, err := n.Normalize(raw)
	require.NoError(t, err)
	require.NotNil(t, res.Flat)
	require.Nil(t, res.Scored)

	assert.Equal(t, []string{"Where"}, res.Flat.FiveW2H["title"].Missing)
	assert.Equal(t, "地名を入れる", res.Flat.FiveW2H["title"].Suggestion)

	// Absent sections are created with defaults, never nil.
	require.NotNil(t, res.Flat.FiveW2H["lead"])
	assert.Empty(t, res.Flat.FiveW2H["lead"].Missing)
	require.NotNil(t, res.Flat.FiveW2H["body"])

	require.Len(t, res.Flat.Hooks.Scores, 1)
	assert.Equal(t, "地域性", res.Flat.Hooks.Scores[0].Name)
	assert.Equal(t, []string{"季節の話題を足す"}, res.Flat.Hooks.Suggestion)

	assert.False(t, res.Flat.Contact.Exists)
}

func TestResult_MissingElementsUnion(t *testing.T) {
	n := Normalizer{Schema: SchemaScored, TargetHooks: 3}

	raw := `{"fiveW2H":{
		"title":{"who":1,"what":1,"where":0,"when":1,"why":1,"how":1,"howMuch":1,"toWhom":1},
		"lead":{"who":1,"what":1,"where":0,"when":0,"why":1,"how":1,"howMuch":1,"toWhom":1},
		"body":{"who":1,"what":1,"where":1,"when":1,"why":1,"how":1,"howMuch":1,"toWhom":1}
	}}`

	res, err := n.Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Where", "When"}, res.MissingElements())
}

func TestResult_MissingHooks(t *testing.T) {
	n := Normalizer{Schema: SchemaScored, TargetHooks: 3}

	// Judge-supplied missing wins as-is.
	res, err := n.Normalize(`{"hooks":{"missing":["意外性","意外性"]}}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"意外性"}, res.MissingHooks())

	// Only detections given: derived by catalog difference.
	res, err = n.Normalize(`{"hooks":{"detected":[
		{"name":"新規性/独自性","score":0.9},
		{"name":"地域性","score":0.6}
	]}}`)
	require.NoError(t, err)
	missing := res.MissingHooks()
	assert.Len(t, missing, 7)
	assert.NotContains(t, missing, "新規性/独自性")
	assert.NotContains(t, missing, "地域性")

	// Nothing given at all: no gap is invented.
	res, err = n.Normalize(`{}`)
	require.NoError(t, err)
	assert.Empty(t, res.MissingHooks())
}

func TestNormalize_HostileShapesDoNotPanic(t *testing.T) {
	n := Normalizer{Schema: SchemaScored, TargetHooks: 3}

	hostile := []string{
		`{"fiveW2H":"not an object"}`,
		`{"fiveW2H":{"title":[1,2,3]}}`,
		`{"fiveW2H":{"title":{"who":"one","missing":"where","evidence":{"a":1}}}}`,
		`{"hooks":{"detected":[42,"x",{"name":3}],"target":"soon"}}`,
		`{"contact":[true]}`,
	}
	for _, raw := range hostile {
		res, err := n.Normalize(raw)
		require.NoError(t, err, "shape %q should coerce, not fail", raw)
		require.NotNil(t, res.Scored)
	}
}
