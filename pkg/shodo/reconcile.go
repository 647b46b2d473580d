package shodo

import (
	"strings"
	"unicode/utf8"
)

// Message is a proofreading issue reduced to the canonical field set,
// regardless of which API version produced it.
type Message struct {
	Type        string `json:"type"`
	Before      string `json:"before"`
	After       string `json:"after"`
	Offset      *int   `json:"offset,omitempty"`
	Length      *int   `json:"length,omitempty"`
	Message     string `json:"message"`
	Explanation string `json:"explanation"`
	Section     string `json:"section,omitempty"`
}

// Result is a decorated lint outcome: canonical messages plus a summary.
type Result struct {
	Status   string     `json:"status"`
	Messages []*Message `json:"messages"`
	Summary  *Summary   `json:"summary"`
}

// Counts aggregates message totals for the UI badges.
type Counts struct {
	Total  int `json:"total"`
	Ranuki int `json:"ranuki"`
	Keigo  int `json:"keigo"`
}

// RanukiSample is one contraction-error message reduced for display.
type RanukiSample struct {
	Section string `json:"section"`
	Before  string `json:"before"`
	After   string `json:"after"`
}

// Summary is a pure aggregation over the canonical message list.
type Summary struct {
	Counts        Counts          `json:"counts"`
	BySection     map[string]int  `json:"bySection"`
	RanukiSamples []*RanukiSample `json:"ranukiSamples"`
}

// BuildComposite concatenates the non-empty sections in fixed order, each
// prefixed by its marker line. Empty sections are omitted entirely so the
// marker map can distinguish "absent" from "present at offset 0".
func BuildComposite(title, lead, body, contact string) string {
	var parts []string
	if strings.TrimSpace(title) != "" {
		parts = append(parts, "[TITLE]\n"+title)
	}
	if strings.TrimSpace(lead) != "" {
		parts = append(parts, "[LEAD]\n"+lead)
	}
	if strings.TrimSpace(body) != "" {
		parts = append(parts, "[BODY]\n"+body)
	}
	if strings.TrimSpace(contact) != "" {
		parts = append(parts, "[CONTACT]\n"+contact)
	}
	return strings.Join(parts, "\n\n")
}

// SectionIndexMap locates each section marker within the composite text.
// Offsets are in runes because Shodo reports character positions, and the
// composite is mostly Japanese. Absent sections map to -1.
func SectionIndexMap(composite string) map[string]int {
	idx := make(map[string]int, 4)
	for section, marker := range map[string]string{
		"title":   "[TITLE]",
		"lead":    "[LEAD]",
		"body":    "[BODY]",
		"contact": "[CONTACT]",
	} {
		byteIdx := strings.Index(composite, marker)
		if byteIdx < 0 {
			idx[section] = -1
			continue
		}
		idx[section] = utf8.RuneCountInString(composite[:byteIdx])
	}
	return idx
}

// GuessSection attributes a message offset to the section whose marker is the
// nearest preceding boundary. There is deliberately no end bound: a message
// just past a section transition may be misattributed, which is an accepted
// approximation. When no marker qualifies, the answer is "body".
func GuessSection(offset int, idx map[string]int) string {
	best := ""
	bestIdx := -1
	for section, markerIdx := range idx {
		if markerIdx < 0 || offset < markerIdx {
			continue
		}
		if markerIdx > bestIdx {
			best = section
			bestIdx = markerIdx
		}
	}
	if best == "" {
		return "body"
	}
	return best
}

// aliasString resolves the first present, non-nil value among keys.
// The canonical name is always listed first.
func aliasString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return stringValue(v)
		}
	}
	return ""
}

func aliasInt(m map[string]any, keys ...string) *int {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		if f, ok := v.(float64); ok {
			n := int(f)
			return &n
		}
	}
	return nil
}

// NormalizeMessage maps the field-name variants used across Shodo API
// versions onto the canonical Message shape.
func NormalizeMessage(m map[string]any) *Message {
	msg := &Message{
		Type:        aliasString(m, "type", "category", "code"),
		Before:      aliasString(m, "before", "src"),
		After:       aliasString(m, "after", "dst"),
		Offset:      aliasInt(m, "offset", "pos", "index"),
		Length:      aliasInt(m, "length", "len"),
		Message:     aliasString(m, "message", "title"),
		Explanation: aliasString(m, "explanation", "detail"),
	}
	if msg.Length == nil {
		// Older responses carry both bounds instead of a length.
		from := aliasInt(m, "index")
		to := aliasInt(m, "index_to")
		if from != nil && to != nil {
			length := *to - *from
			msg.Length = &length
		}
	}
	return msg
}

// Decorate converts a raw fetch result into canonical messages with inferred
// sections and a summary. Passing an empty composite skips section inference
// (the status-lookup endpoint does not know the composite).
func Decorate(result map[string]any, composite string) *Result {
	raw, _ := result["messages"].([]any)
	msgs := make([]*Message, 0, len(raw))
	for _, e := range raw {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		msgs = append(msgs, NormalizeMessage(m))
	}

	if composite != "" {
		idx := SectionIndexMap(composite)
		for _, m := range msgs {
			if m.Offset != nil {
				m.Section = GuessSection(*m.Offset, idx)
			}
		}
	}

	return &Result{
		Status:   stringValue(result["status"]),
		Messages: msgs,
		Summary:  Summarize(msgs),
	}
}

// Summarize aggregates canonical messages: total/contraction/honorific
// counts, per-section buckets, and up to five contraction samples.
func Summarize(msgs []*Message) *Summary {
	var ranuki []*Message
	keigo := 0
	bySection := map[string]int{"title": 0, "lead": 0, "body": 0, "contact": 0}

	for _, m := range msgs {
		combined := m.Type + " " + m.Message + " " + m.Explanation
		if strings.Contains(combined, "ら抜き") || strings.Contains(combined, "ら抜き言葉") {
			ranuki = append(ranuki, m)
		}
		if strings.Contains(m.Type, "敬語") {
			keigo++
		}
		if _, ok := bySection[m.Section]; ok {
			bySection[m.Section]++
		}
	}

	samples := make([]*RanukiSample, 0, 5)
	for _, m := range ranuki {
		if len(samples) == 5 {
			break
		}
		samples = append(samples, &RanukiSample{Section: m.Section, Before: m.Before, After: m.After})
	}

	return &Summary{
		Counts: Counts{
			Total:  len(msgs),
			Ranuki: len(ranuki),
			Keigo:  keigo,
		},
		BySection:     bySection,
		RanukiSamples: samples,
	}
}
