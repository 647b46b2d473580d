package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSections_FullDraft(t *testing.T) {
	md := strings.Join([]string{
		"# 新サービス「Example」をリリース",
		"株式会社Exampleは本日、新サービスを発表しました。",
		"## 概要",
		"本サービスは中小企業向けの分析ツールです。",
		"## お問い合わせ",
		"広報部 press@example.jp",
	}, "\n")

	s := ExtractSections(md)
	assert.Equal(t, "新サービス「Example」をリリース", s["title"])
	assert.Contains(t, s["lead"], "株式会社Exampleは本日")
	assert.Contains(t, s["body"], "## 概要")
	assert.Contains(t, s["body"], "中小企業向けの分析ツール")
	assert.Contains(t, s["contact"], "press@example.jp")
	assert.NotContains(t, s["body"], "press@example.jp")
}

func TestExtractSections_NoHeadings(t *testing.T) {
	s := ExtractSections("ただの本文です。\n二行目。")
	assert.Equal(t, "", s["title"])
	assert.Equal(t, "", s["lead"])
	assert.Equal(t, "ただの本文です。\n二行目。", s["body"])
	assert.Equal(t, "", s["contact"])
}

func TestExtractSections_TitleOnly(t *testing.T) {
	s := ExtractSections("# タイトルだけ\nその後の文はリード扱い。")
	assert.Equal(t, "タイトルだけ", s["title"])
	assert.Contains(t, s["lead"], "リード扱い")
	assert.Equal(t, "", s["body"])
}

func TestExtractSections_ContactDirectlyAfterLead(t *testing.T) {
	md := "# T\nリード文。\n## 連絡先\n広報部"
	s := ExtractSections(md)
	assert.Contains(t, s["lead"], "リード文")
	assert.Contains(t, s["contact"], "広報部")
}

func TestExtractSections_LaterH1StaysInBody(t *testing.T) {
	md := "# 本物のタイトル\nリード。\n## 概要\n本文。\n# 見出しっぽい行"
	s := ExtractSections(md)
	assert.Equal(t, "本物のタイトル", s["title"])
	assert.Contains(t, s["body"], "# 見出しっぽい行")
}

func TestExtractSections_Empty(t *testing.T) {
	s := ExtractSections("   \n  ")
	for _, k := range []string{"title", "lead", "body", "contact"} {
		assert.Equal(t, "", s[k])
	}
}

func TestPlain(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"heading", "## 見出し", "見出し"},
		{"bold", "**強調**です", "強調です"},
		{"italic", "*斜体*です", "斜体です"},
		{"code", "`code`を含む", "codeを含む"},
		{"link", "[リンク](https://example.com)参照", "リンク参照"},
		{"image", "![代替テキスト](https://example.com/a.png)", "代替テキスト"},
		{"strike", "~~取り消し~~済み", "取り消し済み"},
		{"list", "* 項目", "項目"},
		{"empty", "  ", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Plain(c.in))
		})
	}
}
