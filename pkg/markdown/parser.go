// Package markdown extracts press-release sections from a markdown draft and
// strips decoration for the analysis pipeline.
package markdown

import (
	"regexp"
	"strings"
)

var (
	h1Re      = regexp.MustCompile(`^#\s+(.+)`)
	leadEndRe = regexp.MustCompile(`^##\s+(概要|リード|はじめに)`)
	contactRe = regexp.MustCompile(`^##\s+(お問い合わせ|連絡先|コンタクト)`)

	headingMarkRe = regexp.MustCompile(`(?m)^#+\s*`)
	listMarkRe    = regexp.MustCompile(`(?m)^\*+\s*`)
	boldRe        = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe      = regexp.MustCompile(`\*([^*]+)\*`)
	codeRe        = regexp.MustCompile("`([^`]+)`")
	linkRe        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	imageRe       = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)`)
	strikeRe      = regexp.MustCompile(`~~([^~]+)~~`)
)

// ExtractSections splits a markdown draft into title, lead, body and contact.
// The first `#` heading is the title, text until a `## 概要`-style heading is
// the lead, a `## お問い合わせ`-style heading starts the contact section, and
// everything else is body.
func ExtractSections(md string) map[string]string {
	sections := map[string]string{
		"title":   "",
		"lead":    "",
		"body":    "",
		"contact": "",
	}
	if strings.TrimSpace(md) == "" {
		return sections
	}

	lines := strings.Split(md, "\n")
	currentSection := "body"
	var currentContent []string

	for _, line := range lines {
		switch {
		case h1Re.MatchString(line):
			if currentSection == "body" && len(currentContent) == 0 {
				sections["title"] = h1Re.FindStringSubmatch(line)[1]
				currentSection = "lead"
			} else {
				currentContent = append(currentContent, line)
			}
		case leadEndRe.MatchString(line) && currentSection == "lead":
			sections["lead"] = strings.Join(currentContent, "\n")
			currentSection = "body"
			currentContent = []string{line}
		case contactRe.MatchString(line):
			sections[currentSection] = strings.Join(currentContent, "\n")
			currentSection = "contact"
			currentContent = []string{line}
		default:
			currentContent = append(currentContent, line)
		}
	}

	switch currentSection {
	case "lead":
		sections["lead"] = strings.Join(currentContent, "\n")
	case "body":
		sections["body"] = strings.Join(currentContent, "\n")
	case "contact":
		sections["contact"] = strings.Join(currentContent, "\n")
	}

	return sections
}

// Plain strips markdown decoration, leaving readable text.
func Plain(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}

	out := md
	out = headingMarkRe.ReplaceAllString(out, "")
	out = listMarkRe.ReplaceAllString(out, "")
	// Images before links: the image syntax embeds the link syntax.
	out = imageRe.ReplaceAllString(out, "$1")
	out = linkRe.ReplaceAllString(out, "$1")
	out = boldRe.ReplaceAllString(out, "$1")
	out = italicRe.ReplaceAllString(out, "$1")
	out = codeRe.ReplaceAllString(out, "$1")
	out = strikeRe.ReplaceAllString(out, "$1")
	return strings.TrimSpace(out)
}
