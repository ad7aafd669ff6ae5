package paths

import (
	"regexp"
	"strings"
	"sync"
)

// Match reports whether name matches the shell-style glob pattern.
//
// The semantics are those of classic fnmatch rather than path.Match:
//   - '*' matches any run of characters, including '/'
//   - '?' matches any single character
//   - "[seq]" and "[!seq]" match a character class; a ']' right after the
//     opening bracket is a literal member, and an unterminated '[' is literal
//
// Matching is case-sensitive.
func Match(pattern, name string) bool {
	return compileGlob(pattern).MatchString(name)
}

var (
	globCacheMu sync.Mutex
	globCache   = map[string]*regexp.Regexp{}
)

func compileGlob(pattern string) *regexp.Regexp {
	globCacheMu.Lock()
	defer globCacheMu.Unlock()

	if re, ok := globCache[pattern]; ok {
		return re
	}
	re, err := regexp.Compile(`(?s)\A` + globToRegex(pattern) + `\z`)
	if err != nil {
		// Malformed classes such as "[z-a]" degrade to a literal comparison.
		re = regexp.MustCompile(`(?s)\A` + regexp.QuoteMeta(pattern) + `\z`)
	}
	globCache[pattern] = re
	return re
}

func globToRegex(pattern string) string {
	var b strings.Builder
	n := len(pattern)
	for i := 0; i < n; i++ {
		ch := pattern[i]
		switch ch {
		case '*':
			b.WriteString(".*")
			// Collapse runs of '*'; they are equivalent.
			for i+1 < n && pattern[i+1] == '*' {
				i++
			}
		case '?':
			b.WriteString(".")
		case '[':
			j := i + 1
			if j < n && pattern[j] == '!' {
				j++
			}
			if j < n && pattern[j] == ']' {
				j++
			}
			for j < n && pattern[j] != ']' {
				j++
			}
			if j >= n {
				b.WriteString(`\[`)
				continue
			}
			b.WriteString(classToRegex(pattern[i+1 : j]))
			i = j
		default:
			b.WriteString(regexp.QuoteMeta(pattern[i : i+1]))
		}
	}
	return b.String()
}

// classToRegex converts the inside of a bracket expression to a regexp class.
func classToRegex(body string) string {
	negate := false
	if strings.HasPrefix(body, "!") {
		negate = true
		body = body[1:]
	}

	var b strings.Builder
	b.WriteByte('[')
	if negate {
		b.WriteByte('^')
	}
	for i := 0; i < len(body); i++ {
		ch := body[i]
		switch ch {
		case '\\', '[', ']', '^':
			b.WriteByte('\\')
			b.WriteByte(ch)
		case '-':
			// Ranges pass through; a leading or trailing dash is literal.
			if i == 0 || i == len(body)-1 {
				b.WriteString(`\-`)
			} else {
				b.WriteByte('-')
			}
		default:
			b.WriteByte(ch)
		}
	}
	b.WriteByte(']')
	return b.String()
}
