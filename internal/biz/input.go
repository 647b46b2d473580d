package biz

import (
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/iWorld-y/press_radar/pkg/markdown"
)

// BodySection is one heading/content pair from the structured editor.
type BodySection struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// DraftInput carries every way a caller can hand us a draft: split fields
// (preferred), raw markdown (fallback), or a published-page URL.
type DraftInput struct {
	Title    string
	Lead     string
	Body     []BodySection
	Contact  string
	Markdown string
	URL      string
}

// sections is the resolved plain-text draft.
type sections struct {
	title   string
	lead    string
	body    string
	contact string
}

func (s sections) empty() bool {
	return strings.TrimSpace(s.title) == "" &&
		strings.TrimSpace(s.lead) == "" &&
		strings.TrimSpace(s.body) == "" &&
		strings.TrimSpace(s.contact) == ""
}

// resolveSections applies the input precedence: split fields win; when title
// and lead are both blank and markdown is present, the markdown is sectioned;
// when everything is blank and a URL is given, the page text becomes the body.
func resolveSections(in DraftInput) (sections, error) {
	s := sections{
		title:   in.Title,
		lead:    in.Lead,
		body:    joinBody(in.Body),
		contact: in.Contact,
	}

	if strings.TrimSpace(s.title) == "" && strings.TrimSpace(s.lead) == "" && strings.TrimSpace(in.Markdown) != "" {
		parts := markdown.ExtractSections(in.Markdown)
		s.title = markdown.Plain(parts["title"])
		s.lead = markdown.Plain(parts["lead"])
		s.body = markdown.Plain(parts["body"])
		s.contact = markdown.Plain(parts["contact"])
	}

	if s.empty() && strings.TrimSpace(in.URL) != "" {
		article, err := readability.FromURL(in.URL, 30*time.Second)
		if err != nil {
			return s, err
		}
		s.body = strings.TrimSpace(article.TextContent)
	}

	return s, nil
}

func joinBody(body []BodySection) string {
	var parts []string
	for _, sec := range body {
		var lines []string
		if strings.TrimSpace(sec.Heading) != "" {
			lines = append(lines, sec.Heading)
		}
		if strings.TrimSpace(sec.Content) != "" {
			lines = append(lines, sec.Content)
		}
		if len(lines) > 0 {
			parts = append(parts, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(parts, "\n\n")
}
