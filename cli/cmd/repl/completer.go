package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/rollkit/lang"
)

// replCommands are the available colon-prefixed session commands.
var replCommands = []string{
	":help", ":explain", ":seed", ":clear", ":quit", ":exit",
}

// isWordBoundary reports whether the rune delimits a completion word.
// The colon is excluded so command names like ":help" complete as one
// word; the dice operators d/kh/kl/dh/dl are letters and therefore
// indistinguishable from identifier prefixes until matched.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t',
		'(', ')', '{', '}', '[', ']',
		'+', '-', '*',
		'<', '>', '=', '!', ',':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor position and its byte
// boundaries within input. The word is empty when the cursor sits on a
// boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidatesFor returns the completion candidates for a word: session
// commands when it begins with a colon, registered function names
// otherwise.
func candidatesFor(word string, funcs *lang.Registry) []string {
	if strings.HasPrefix(word, ":") {
		return replCommands
	}

	return funcs.Names()
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. An empty word yields no matches so hint text stays visible.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, ws, we := wordBounds(input, cursor)
	if word == "" {
		return nil, ws, we
	}

	candidates := candidatesFor(word, m.funcs)
	if len(candidates) == 0 {
		return nil, ws, we
	}

	return fuzzy.Find(word, candidates), ws, we
}

// renderCandidateBar builds the single-line completion bar, ellipsized
// to fit within the given terminal width. The selected candidate (when
// tabbing) uses the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		selected := tabActive && i == suggIdx
		rendered := renderCandidate(match, selected)
		candidateWidth := lipgloss.Width(rendered)

		entryWidth := candidateWidth
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth

		if i == len(matches)-1 {
			break
		}
	}

	return b.String()
}

// renderCandidate renders a single candidate with its fuzzy-matched
// characters highlighted. Function names display with a "()" suffix,
// which is not applied by the completion itself.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	if !strings.HasPrefix(match.Str, ":") {
		b.WriteString(baseStyle.Render("()"))
	}

	return b.String()
}
