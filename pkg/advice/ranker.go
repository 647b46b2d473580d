// Package advice turns a normalized judgment into a short, ordered list of
// human-facing improvement suggestions. Everything here is pure: identical
// input always yields byte-identical output.
package advice

import "sort"

// Gaps is the ranker's view of a judgment: which elements and hooks are
// missing, and whether contact information is absent.
type Gaps struct {
	Elements       []string
	Hooks          []string
	ContactMissing bool
}

// elementPriority orders 5W2H+1W gaps by editorial impact.
var elementPriority = []string{
	"When", "Where", "Why", "HowMuch", "ToWhom", "How", "Who", "What",
}

// elementAdvice maps each canonical element name to one canned suggestion.
var elementAdvice = map[string]string{
	"When":    "開始日・期間など具体的な日付（When）を明記",
	"Where":   "タイトルに地名（Where）を追加",
	"Why":     "読者ベネフィット/背景理由（Why）を1文で明示",
	"HowMuch": "金額・数量・規模（HowMuch）を数値で提示",
	"ToWhom":  "想定読者・利用者（ToWhom）を具体化",
	"How":     "“どのように”（How）を具体化（仕組み・手順）",
	"Who":     "主語となる企業・団体名（Who）を明示",
	"What":    "発表対象のサービス/製品（What）を一言で特定",
}

// hookPriority orders hook gaps.
var hookPriority = []string{
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

// hookAdvice maps each catalog hook name to one canned suggestion.
var hookAdvice = map[string]string{
	"新規性/独自性": "「初」「唯一」など独自性を示す一文を追加",
	"時流/季節性":  "季節・時流・特定日付との結びつきを明示",
	"地域性":     "具体的な県名・市区名などご当地性を盛り込む",
	"社会性/公益性": "社会課題/制度・トレンドとの接続を1文",
	"最上級/希少性": "「世界一」「限定」など希少性の要素を検討",
	"話題性":     "話題の事柄・トレンドとの関連づけを検討",
	"画像/映像":   "インパクトのある画像・映像の添付を計画",
	"意外性":     "常識とのギャップ（意外性）を打ち出す",
	"逆説/対立":   "定説との対比・対立構図の提示を検討",
}

const contactAdvice = "連絡先（会社/部署/担当/メール/電話/プレスキットURL）を本文末尾に追記"

// Build assembles the suggestion list: element gaps first, then hook gaps,
// then the contact reminder; deduplicated and truncated to limit.
func Build(g Gaps, limit int) []string {
	if limit < 0 {
		limit = 0
	}

	out := []string{}
	for _, el := range sortByPriority(g.Elements, elementPriority) {
		if s, ok := elementAdvice[el]; ok {
			out = append(out, s)
		}
	}
	for _, h := range sortByPriority(g.Hooks, hookPriority) {
		if s, ok := hookAdvice[h]; ok {
			out = append(out, s)
		}
	}
	if g.ContactMissing {
		out = append(out, contactAdvice)
	}

	out = dedupe(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// sortByPriority returns a deduplicated copy of names ordered by the given
// priority list; unknown names keep their relative order at the end.
func sortByPriority(names, priority []string) []string {
	rank := make(map[string]int, len(priority))
	for i, p := range priority {
		rank[p] = i
	}

	sorted := dedupe(names)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, ok := rank[sorted[i]]
		if !ok {
			ri = len(priority)
		}
		rj, ok := rank[sorted[j]]
		if !ok {
			rj = len(priority)
		}
		return ri < rj
	})
	return sorted
}

func dedupe(in []string) []string {
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
