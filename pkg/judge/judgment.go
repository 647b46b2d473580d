package judge

// Schema selects which judge output contract is active. The scored schema is
// the ternary per-element contract; the flat schema is the later per-section
// suggestion contract. A deployment runs exactly one of them.
type Schema string

const (
	SchemaScored Schema = "scored"
	SchemaFlat   Schema = "flat"
)

// sectionKeys are the three press-release sections the judge scores.
var sectionKeys = []string{"title", "lead", "body"}

// elementKeys are the 5W2H+1W element keys as they appear in judge output.
var elementKeys = []string{"who", "what", "where", "when", "why", "how", "howMuch", "toWhom"}

// missingCanon maps lowercased element spellings to the canonical
// capitalized names used in missing arrays.
var missingCanon = map[string]string{
	"who":     "Who",
	"what":    "What",
	"where":   "Where",
	"when":    "When",
	"why":     "Why",
	"how":     "How",
	"howmuch": "HowMuch",
	"towhom":  "ToWhom",
}

// HookCatalog is the fixed set of nine rhetorical hooks the judge is asked to
// detect, using the exact names the prompt requires.
var HookCatalog = []string{
	"新規性/独自性",
	"時流/季節性",
	"地域性",
	"社会性/公益性",
	"最上級/希少性",
	"話題性",
	"画像/映像",
	"意外性",
	"逆説/対立",
}

// SectionAssessment is a normalized per-section 5W2H+1W judgment in the
// scored schema. Scores are ternary (0, 0.5, 1).
type SectionAssessment struct {
	Who      float64  `json:"who"`
	What     float64  `json:"what"`
	Where    float64  `json:"where"`
	When     float64  `json:"when"`
	Why      float64  `json:"why"`
	How      float64  `json:"how"`
	HowMuch  float64  `json:"howMuch"`
	ToWhom   float64  `json:"toWhom"`
	Missing  []string `json:"missing"`
	Evidence []string `json:"evidence"`
}

func (s *SectionAssessment) score(element string) float64 {
	switch element {
	case "who":
		return s.Who
	case "what":
		return s.What
	case "where":
		return s.Where
	case "when":
		return s.When
	case "why":
		return s.Why
	case "how":
		return s.How
	case "howMuch":
		return s.HowMuch
	case "toWhom":
		return s.ToWhom
	}
	return 0
}

// HookDetection is one hook the judge found, with evidence.
type HookDetection struct {
	Name     string   `json:"name"`
	Score    float64  `json:"score"`
	Evidence []string `json:"evidence"`
}

// HookAssessment is the scored-schema hook judgment.
type HookAssessment struct {
	Detected []HookDetection `json:"detected"`
	Missing  []string        `json:"missing"`
	Target   int             `json:"target"`
}

// ContactAssessment reports whether contact information was found.
type ContactAssessment struct {
	Exists     bool     `json:"exists"`
	Confidence float64  `json:"confidence"`
	Evidence   []string `json:"evidence"`
}

// Judgment is the normalized scored-schema judge output.
type Judgment struct {
	FiveW2H map[string]*SectionAssessment `json:"fiveW2H"`
	Hooks   HookAssessment                `json:"hooks"`
	Contact ContactAssessment             `json:"contact"`
}

// FlatSection is a normalized per-section judgment in the flat schema.
type FlatSection struct {
	Missing    []string `json:"missing"`
	Suggestion string   `json:"suggestion"`
}

// HookScore is one catalog hook with a continuous score in [0,1].
type HookScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// FlatHooks is the flat-schema hook judgment.
type FlatHooks struct {
	Scores     []HookScore `json:"scores"`
	Suggestion []string    `json:"suggestion"`
}

// FlatJudgment is the normalized flat-schema judge output.
type FlatJudgment struct {
	FiveW2H map[string]*FlatSection `json:"fiveW2H"`
	Hooks   FlatHooks               `json:"hooks"`
	Contact ContactAssessment       `json:"contact"`
}
