package model

import (
	"regexp"
	"strings"

	"github.com/titanous/json5"
)

// Repair step names as they appear in a RepairReport.
const (
	StepFixKeywords          = "fix_keywords"
	StepFixNaNInfinity       = "fix_nan_infinity"
	StepStripComments        = "strip_comments"
	StepNormalizeQuotes      = "normalize_quotes"
	StepRemoveTrailingCommas = "remove_trailing_commas"
	StepQuoteKeys            = "quote_keys"
	StepWrapped              = "wrapped"
	StepJSON5                = "json5"
)

// RepairStep is one named text transform of the repair catalog.
type RepairStep struct {
	Name      string
	Transform func(string) string
}

// RepairReport lists the steps that changed the text, in the order they ran.
type RepairReport []string

// String joins the step names with ", ".
func (r RepairReport) String() string {
	return strings.Join(r, ", ")
}

// RepairOptions tunes Repair.
type RepairOptions struct {
	// Lenient enables a final json5 parse of the original text when every
	// catalog step and the wrap fallback have failed. Key order is not kept.
	Lenient bool
}

// stringLiteral matches a double- or single-quoted literal, honouring backslash escapes.
const stringLiteral = `"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'`

// comment matches a line or block comment.
const comment = `//[^\n]*|/\*[\s\S]*?\*/`

var (
	keywordPattern       = literalOrCommentAware(`\b(None|True|False)\b`)
	nanInfinityPattern   = literalOrCommentAware(`-?\b(?:NaN|Infinity)\b`)
	commentPattern       = literalAware(`[ \t]*` + comment)
	quotePattern         = regexp.MustCompile(`("(?:\\.|[^"\\])*")|('(?:\\.|[^'\\])*')`)
	trailingCommaPattern = literalAware(`,\s*([\]}])`)
	bareKeyPattern       = literalAware(`([{,])\s*([A-Za-z_][A-Za-z0-9_\-]*)\s*:`)
)

var keywordReplacements = map[string]string{
	"None":  "null",
	"True":  "true",
	"False": "false",
}

var repairCatalog = []RepairStep{
	{Name: StepFixKeywords, Transform: fixKeywords},
	{Name: StepFixNaNInfinity, Transform: fixNaNInfinity},
	{Name: StepStripComments, Transform: stripComments},
	{Name: StepNormalizeQuotes, Transform: normalizeQuotes},
	{Name: StepRemoveTrailingCommas, Transform: removeTrailingCommas},
	{Name: StepQuoteKeys, Transform: quoteKeys},
}

// Catalog returns the repair steps in the order Repair applies them.
func Catalog() []RepairStep {
	steps := make([]RepairStep, len(repairCatalog))
	copy(steps, repairCatalog)
	return steps
}

// Repair turns JSON-like text into valid JSON.
// Valid input is returned unchanged with an empty report. When no repair
// succeeds it returns ("", nil, false); call TryParse on the original text
// for diagnostics.
func Repair(text string) (string, RepairReport, bool) {
	return RepairWithOptions(text, RepairOptions{})
}

// RepairWithOptions is Repair with tuning options.
func RepairWithOptions(text string, opts RepairOptions) (string, RepairReport, bool) {
	if TryParse(text) == nil {
		return text, RepairReport{}, true
	}

	report := RepairReport{}
	current := text
	for _, step := range repairCatalog {
		candidate := step.Transform(current)
		if candidate == current {
			continue
		}
		report = append(report, step.Name)
		current = candidate
		if TryParse(current) == nil {
			return current, report, true
		}
	}

	if wrapped, ok := wrapBareObject(current); ok {
		return wrapped, append(report, StepWrapped), true
	}

	if opts.Lenient {
		if repaired, ok := repairJSON5(text); ok {
			return repaired, RepairReport{StepJSON5}, true
		}
	}
	return "", nil, false
}

// wrapBareObject encloses text that looks like a run of object members in braces.
func wrapBareObject(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed[0] == '{' || trimmed[0] == '[' {
		return "", false
	}
	if !isBareKeyStart(trimmed[0]) {
		return "", false
	}
	wrapped := quoteKeys("{\n" + trimmed + "\n}")
	if TryParse(wrapped) != nil {
		return "", false
	}
	return wrapped, true
}

func isBareKeyStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func repairJSON5(text string) (string, bool) {
	var v any
	if err := json5.Unmarshal([]byte(text), &v); err != nil {
		return "", false
	}
	out, err := Compact(v)
	if err != nil || TryParse(out) != nil {
		return "", false
	}
	return out, true
}

func fixKeywords(s string) string {
	return replaceOutsideLiterals(keywordPattern, s, func(g []string) string {
		return keywordReplacements[g[2]]
	})
}

func fixNaNInfinity(s string) string {
	return replaceOutsideLiterals(nanInfinityPattern, s, func([]string) string {
		return "null"
	})
}

func stripComments(s string) string {
	return replaceOutsideLiterals(commentPattern, s, func([]string) string {
		return ""
	})
}

// normalizeQuotes rewrites 'single' literals as "double" ones. Double-quoted
// literals are matched by the same pattern and left as they are.
func normalizeQuotes(s string) string {
	return replaceOutsideLiterals(quotePattern, s, func(g []string) string {
		inner := g[2][1 : len(g[2])-1]
		inner = strings.ReplaceAll(inner, `\"`, `"`)
		inner = strings.ReplaceAll(inner, `\'`, `'`)
		inner = strings.ReplaceAll(inner, `"`, `\"`)
		return `"` + inner + `"`
	})
}

func removeTrailingCommas(s string) string {
	return replaceOutsideLiterals(trailingCommaPattern, s, func(g []string) string {
		return g[2]
	})
}

func quoteKeys(s string) string {
	return replaceOutsideLiterals(bareKeyPattern, s, func(g []string) string {
		return g[2] + ` "` + g[3] + `":`
	})
}

// literalAware builds a pattern whose first group swallows string literals
// so that target never matches inside one.
func literalAware(target string) *regexp.Regexp {
	return regexp.MustCompile(`(` + stringLiteral + `)|` + target)
}

// literalOrCommentAware is literalAware for steps that run before comments are
// stripped: comments pass through as well, so an apostrophe inside one never
// opens a literal.
func literalOrCommentAware(target string) *regexp.Regexp {
	return regexp.MustCompile(`(` + stringLiteral + `|` + comment + `)|` + target)
}

// replaceOutsideLiterals replaces every match of re with repl, except matches
// of re's first group, which are copied through untouched. repl receives the
// submatches, index 0 being the whole match.
func replaceOutsideLiterals(re *regexp.Regexp, s string, repl func([]string) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[0]])
		if m[2] >= 0 {
			b.WriteString(s[m[0]:m[1]])
		} else {
			groups := make([]string, len(m)/2)
			for i := range groups {
				if m[2*i] >= 0 {
					groups[i] = s[m[2*i]:m[2*i+1]]
				}
			}
			b.WriteString(repl(groups))
		}
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
