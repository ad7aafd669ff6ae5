// Package shellquote formats argument lists as POSIX shell command lines.
package shellquote

import "strings"

// special holds the characters a POSIX shell would interpret.
const special = " \t\n#[]()|&;<>!\"'`$\\*?~{}"

// Quote wraps s in single quotes, escaping any internal single quotes.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// QuoteIfNeeded quotes s when a shell would not read it back verbatim.
func QuoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, special) {
		return Quote(s)
	}
	return s
}

// Join returns words as one command line that a shell splits back into the
// same words.
func Join(words ...string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = QuoteIfNeeded(w)
	}
	return strings.Join(quoted, " ")
}
