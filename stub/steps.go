package stub

import (
	"regexp"
	"strings"
)

// labelWidth is the rune budget of one task label line.
const labelWidth = 24

const trimSet = " -:،,"

var (
	summaryTail = regexp.MustCompile(`(?is)در\s+کل\s*،?\s*فرایند\s+شامل.*`)
	whitespace  = regexp.MustCompile(`\s+`)
	headline    = regexp.MustCompile(`(?i)\b(?:includes|consists of|comprises)\b|شامل|متشکل از`)

	// Longest alternatives first so "and then" wins over "and".
	connector = regexp.MustCompile(`(?i)\b(?:and then|after that|at last|afterwards|finally|ultimately|subsequently|then|next|and)\b|و در نهایت|و سپس|در نهایت|بعد از آن|بعداً|سپس`)

	leadingConnector = regexp.MustCompile(`(?i)^(?:(?:and|then|after|finally|next|ultimately)\b|(?:و سپس|در نهایت|بعد از آن|بعداً|سپس|و)(?:[\s،]|$))[\s،]*`)
	commaConnector   = regexp.MustCompile(`(?i)^(?:(?:and|then|after|finally)\b|(?:در نهایت|سپس|و)(?:[\s،]|$))`)

	preface = regexp.MustCompile(`فرایند.+?به شرح (?:ذیل|زیر)(?: (?:میباشد|است))?:?`)
)

// Roles are matched in order, so more specific titles come first.
var roles = []string{
	"کارشناس ارشد پشتیبانی ستاد",
	"کارشناس ارشد",
	"کارشناس بررسی شکایت",
	"کارشناس پشتیبانی",
	"کارشناس شکایت ستاد",
	"کارشناس ستاد",
	"کارشناس اولیه",
	"کارشناس",
	"کارمند",
	"کاربر",
}

// ExtractSteps splits a free-text description into ordered step phrases.
// Sentences, line breaks, Persian semicolons and sequencing connectors
// ("then", "سپس", "در نهایت", ...) all end a step.
func ExtractSteps(text string) []string {
	if loc := summaryTail.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}

	cleaned := whitespace.ReplaceAllString(strings.TrimSpace(text), " ")
	if cleaned == "" {
		return nil
	}

	if loc := headline.FindStringIndex(cleaned); loc != nil {
		cleaned = strings.Trim(cleaned[loc[1]:], " :،,")
	}

	normalized := connector.ReplaceAllString(cleaned, ".")

	var steps []string
	for _, fragment := range strings.FieldsFunc(normalized, isStepBreak) {
		fragment = strings.Trim(fragment, trimSet)
		if fragment == "" {
			continue
		}
		for _, sub := range splitOnConnectorCommas(fragment) {
			sub = strings.Trim(sub, trimSet)
			sub = leadingConnector.ReplaceAllString(sub, "")
			if sub != "" {
				steps = append(steps, sub)
			}
		}
	}
	return steps
}

func isStepBreak(r rune) bool {
	switch r {
	case '.', '\n', '\r', '؛':
		return true
	}
	return false
}

// splitOnConnectorCommas breaks "a, then b" style clauses but keeps plain
// enumerations ("a, b") together.
func splitOnConnectorCommas(fragment string) []string {
	parts := strings.Split(fragment, ",")
	out := []string{parts[0]}
	for _, p := range parts[1:] {
		if commaConnector.MatchString(strings.TrimLeft(p, " ")) {
			out = append(out, p)
			continue
		}
		out[len(out)-1] += "," + p
	}
	return out
}

// TaskLabel formats a step as a task name. A recognised role moves to its
// own first line above a divider, and the action is word-wrapped.
func TaskLabel(step string) string {
	role := ""
	for _, r := range roles {
		if strings.Contains(step, r) {
			role = r
			step = strings.Replace(step, r, "", 1)
			break
		}
	}
	step = preface.ReplaceAllString(step, "")
	action := strings.Trim(step, " :،,-")

	label := action
	if role != "" {
		label = role + "\n—\n" + action
	}
	return wrapLabel(label, labelWidth)
}

// wrapLabel word-wraps every line of text to width runes. Existing line
// breaks are kept.
func wrapLabel(text string, width int) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{line}
	}

	var (
		lines   []string
		current []string
		n       int
	)
	for _, w := range words {
		wl := len([]rune(w))
		sep := 0
		if len(current) > 0 {
			sep = 1
		}
		if len(current) > 0 && n+sep+wl > width {
			lines = append(lines, strings.Join(current, " "))
			current, n = []string{w}, wl
			continue
		}
		current = append(current, w)
		n += sep + wl
	}
	return append(lines, strings.Join(current, " "))
}
