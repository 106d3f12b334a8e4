package stub

import (
	"regexp"
	"strings"
)

const defaultQuestion = "تصمیم‌گیری"

// expertRole is prefixed to branch actions when the description is written
// from an expert's point of view.
const expertRole = "کارشناس"

// "اگر <cond> (باشد|است)، <yes> اما اگر <no>." with an optional follow-up
// sentence for the no path.
var (
	ifElse = regexp.MustCompile(`اگر\s+(?P<cond>.+?)\s*(?:باشد|است)?\s*,\s*(?P<yes>.+?)\s*\.?\s*(?:اما|ولی)\s+اگر\s+(?P<no>[^.]+?)(?:\.|\s*$)`)
	mustBe = regexp.MustCompile(`(^|\s)باشد(\s|$)`)
)

// Branch is a two-way decision found in a description.
type Branch struct {
	Question string
	Yes      string
	No       string
	AfterNo  string // Optional follow-up on the no path
}

// DetectBranch looks for a single Persian if/otherwise-if decision. The
// second return is false when the text has none.
func DetectBranch(text string) (Branch, bool) {
	text = whitespace.ReplaceAllString(strings.TrimSpace(text), " ")
	if !strings.Contains(text, "اگر") {
		return Branch{}, false
	}
	norm := strings.NewReplacer("،", ",", "؛", ";").Replace(text)

	m := ifElse.FindStringSubmatchIndex(norm)
	if m == nil {
		return Branch{}, false
	}
	group := func(name string) string {
		i := ifElse.SubexpIndex(name)
		return strings.TrimSpace(norm[m[2*i]:m[2*i+1]])
	}

	b := Branch{
		Question: question(group("cond")),
		Yes:      group("yes"),
		No:       group("no"),
	}
	if clauses := strings.FieldsFunc(norm[m[1]:], isClauseEnd); len(clauses) > 0 {
		b.AfterNo = strings.TrimSpace(clauses[0])
	}

	if strings.Contains(text, expertRole) {
		if !strings.Contains(b.Yes, expertRole) {
			b.Yes = expertRole + " " + b.Yes
		}
		if !strings.Contains(b.No, expertRole) {
			b.No = expertRole + " " + b.No
		}
	}
	return b, true
}

// BeforeBranch is the part of text that precedes the decision.
func BeforeBranch(text string) string {
	before, _, _ := strings.Cut(text, "اگر")
	return before
}

func question(cond string) string {
	q := mustBe.ReplaceAllString(cond, "${1}است${2}")
	q = strings.TrimSpace(q)
	if q == "" {
		return defaultQuestion
	}
	if !strings.HasSuffix(q, "؟") {
		q += "؟"
	}
	return q
}

func isClauseEnd(r rune) bool {
	return r == '.' || r == ';'
}
