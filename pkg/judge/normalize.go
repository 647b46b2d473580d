package judge

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidJudgment marks judge output that could not be normalized: empty
// content, non-object JSON, or a panic while coercing a hostile shape.
// A partially normalized judgment is never returned.
var ErrInvalidJudgment = errors.New("invalid judgment")

// Normalizer repairs a raw judge response into a guaranteed-shape Result.
// It never trusts absence: every optional field gets an explicit default, and
// per-section missing sets are recomputed from the scores.
type Normalizer struct {
	Schema      Schema
	TargetHooks int
}

// Result holds the normalized judgment for whichever schema was active.
// Exactly one of Scored and Flat is non-nil.
type Result struct {
	Schema Schema
	Scored *Judgment
	Flat   *FlatJudgment
}

// MarshalJSON emits the active variant in its original wire shape.
func (r *Result) MarshalJSON() ([]byte, error) {
	if r.Flat != nil {
		return json.Marshal(r.Flat)
	}
	return json.Marshal(r.Scored)
}

// Normalize parses raw judge output and coerces it into a Result.
func (n *Normalizer) Normalize(raw string) (res *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			res = nil
			err = fmt.Errorf("%w: %v", ErrInvalidJudgment, rec)
		}
	}()

	trimmed := strings.TrimSpace(StripFences(raw))
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty content", ErrInvalidJudgment)
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil || obj == nil {
		return nil, fmt.Errorf("%w: response is not a JSON object", ErrInvalidJudgment)
	}

	if n.Schema == SchemaFlat {
		return &Result{Schema: SchemaFlat, Flat: n.normalizeFlat(obj)}, nil
	}
	return &Result{Schema: SchemaScored, Scored: n.normalizeScored(obj)}, nil
}

func (n *Normalizer) normalizeScored(obj map[string]any) *Judgment {
	j := &Judgment{FiveW2H: make(map[string]*SectionAssessment, len(sectionKeys))}

	five := asMap(obj["fiveW2H"])
	for _, k := range sectionKeys {
		sec := asMap(five[k])
		sa := &SectionAssessment{
			Who:      asFloat(sec["who"]),
			What:     asFloat(sec["what"]),
			Where:    asFloat(sec["where"]),
			When:     asFloat(sec["when"]),
			Why:      asFloat(sec["why"]),
			How:      asFloat(sec["how"]),
			HowMuch:  asFloat(sec["howMuch"]),
			ToWhom:   asFloat(sec["toWhom"]),
			Evidence: asStrings(sec["evidence"]),
		}

		// The judge is not trusted to keep missing consistent with its own
		// scores: missing is the union of the canonicalized supplied names
		// and every element scored below 1.0.
		supplied := canonicalizeMissing(asStrings(sec["missing"]))
		auto := make([]string, 0, len(elementKeys))
		for _, el := range elementKeys {
			if sa.score(el) < 1.0 {
				auto = append(auto, missingCanon[strings.ToLower(el)])
			}
		}
		sa.Missing = uniqueStrings(append(supplied, auto...))
		j.FiveW2H[k] = sa
	}

	hooks := asMap(obj["hooks"])
	j.Hooks = HookAssessment{
		Detected: asDetections(hooks["detected"]),
		Missing:  asStrings(hooks["missing"]),
		Target:   n.TargetHooks,
	}
	if t := asFloat(hooks["target"]); t > 0 {
		j.Hooks.Target = int(t)
	}

	j.Contact = asContact(obj["contact"])
	return j
}

func (n *Normalizer) normalizeFlat(obj map[string]any) *FlatJudgment {
	j := &FlatJudgment{FiveW2H: make(map[string]*FlatSection, len(sectionKeys))}

	five := asMap(obj["fiveW2H"])
	for _, k := range sectionKeys {
		sec := asMap(five[k])
		j.FiveW2H[k] = &FlatSection{
			Missing:    canonicalizeMissing(asStrings(sec["missing"])),
			Suggestion: asString(sec["suggestion"]),
		}
	}

	hooks := asMap(obj["hooks"])
	j.Hooks = FlatHooks{
		Scores:     asHookScores(hooks["scores"]),
		Suggestion: asStrings(hooks["suggestion"]),
	}

	j.Contact = asContact(obj["contact"])
	return j
}

// MissingElements returns the deduplicated union of per-section missing
// element names, in title, lead, body order.
func (r *Result) MissingElements() []string {
	var union []string
	for _, k := range sectionKeys {
		switch {
		case r.Scored != nil:
			if sec := r.Scored.FiveW2H[k]; sec != nil {
				union = append(union, sec.Missing...)
			}
		case r.Flat != nil:
			if sec := r.Flat.FiveW2H[k]; sec != nil {
				union = append(union, sec.Missing...)
			}
		}
	}
	return uniqueStrings(union)
}

// MissingHooks returns the hook names the judge reported missing. When the
// judge supplied only detections (or, in the flat schema, only scores), the
// gap is derived by catalog difference.
func (r *Result) MissingHooks() []string {
	switch {
	case r.Scored != nil:
		if len(r.Scored.Hooks.Missing) > 0 {
			return uniqueStrings(r.Scored.Hooks.Missing)
		}
		if len(r.Scored.Hooks.Detected) == 0 {
			return []string{}
		}
		seen := make(map[string]bool, len(r.Scored.Hooks.Detected))
		for _, d := range r.Scored.Hooks.Detected {
			seen[d.Name] = true
		}
		return catalogDifference(seen)
	case r.Flat != nil:
		if len(r.Flat.Hooks.Scores) == 0 {
			return []string{}
		}
		seen := make(map[string]bool, len(r.Flat.Hooks.Scores))
		for _, s := range r.Flat.Hooks.Scores {
			seen[s.Name] = true
		}
		return catalogDifference(seen)
	}
	return []string{}
}

// ContactExists reports the normalized contact-presence verdict.
func (r *Result) ContactExists() bool {
	switch {
	case r.Scored != nil:
		return r.Scored.Contact.Exists
	case r.Flat != nil:
		return r.Flat.Contact.Exists
	}
	return false
}

func catalogDifference(seen map[string]bool) []string {
	out := []string{}
	for _, name := range HookCatalog {
		if !seen[name] {
			out = append(out, name)
		}
	}
	return out
}

// canonicalizeMissing maps judge-supplied element names onto the canonical
// capitalized spellings; unrecognized names are dropped.
func canonicalizeMissing(names []string) []string {
	out := []string{}
	for _, name := range names {
		if canon, ok := missingCanon[strings.ToLower(name)]; ok {
			out = append(out, canon)
		}
	}
	return uniqueStrings(out)
}

// StripFences removes a leading/trailing markdown code fence from model
// output, which some judges emit despite the JSON-only instruction.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ---- permissive coercion helpers ----

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok && m != nil {
		return m
	}
	return map[string]any{}
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case json.Number:
		f, _ := t.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f
	case bool:
		if t {
			return 1
		}
	}
	return 0
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "true")
	case float64:
		return t != 0
	}
	return false
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

func asStrings(v any) []string {
	out := []string{}
	arr, _ := v.([]any)
	for _, e := range arr {
		if e == nil {
			continue
		}
		out = append(out, asString(e))
	}
	return out
}

func asDetections(v any) []HookDetection {
	out := []HookDetection{}
	arr, _ := v.([]any)
	for _, e := range arr {
		m := asMap(e)
		out = append(out, HookDetection{
			Name:     asString(m["name"]),
			Score:    asFloat(m["score"]),
			Evidence: asStrings(m["evidence"]),
		})
	}
	return out
}

func asHookScores(v any) []HookScore {
	out := []HookScore{}
	arr, _ := v.([]any)
	for _, e := range arr {
		m := asMap(e)
		out = append(out, HookScore{Name: asString(m["name"]), Score: asFloat(m["score"])})
	}
	return out
}

func asContact(v any) ContactAssessment {
	m, ok := v.(map[string]any)
	if !ok || m == nil {
		return ContactAssessment{Exists: false, Confidence: 0, Evidence: []string{}}
	}
	return ContactAssessment{
		Exists:     asBool(m["exists"]),
		Confidence: asFloat(m["confidence"]),
		Evidence:   asStrings(m["evidence"]),
	}
}

func uniqueStrings(in []string) []string {
	out := []string{}
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
