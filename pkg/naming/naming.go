// Package naming produces unique, script-safe node identifiers.
package naming

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/aretw0/nodegraph/pkg/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// pythonKeywords cannot be used as attribute names by the scripting bindings.
var pythonKeywords = map[string]bool{
	"and": true, "as": true, "assert": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "exec": true, "finally": true, "for": true, "from": true,
	"global": true, "if": true, "import": true, "in": true, "is": true,
	"lambda": true, "not": true, "or": true, "pass": true, "print": true,
	"raise": true, "return": true, "try": true, "while": true, "with": true,
	"yield": true,
}

// ScriptFriendly normalises s into an identifier usable from scripts.
// Accents are folded, spaces become underscores and every other
// non-alphanumeric character is dropped. A leading digit is prefixed with an
// underscore and keywords are prefixed with "p" ("from" becomes "pFrom").
func ScriptFriendly(s string) string {
	if pythonKeywords[s] {
		return "p" + cases.Title(language.Und).String(s)
	}

	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var sb strings.Builder
	for _, r := range folded {
		switch {
		case r == ' ' || r == '_':
			sb.WriteByte('_')
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if sb.Len() == 0 && unicode.IsDigit(r) {
				sb.WriteByte('_')
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// BaseFromLabel derives a base name from a plugin label, stripping a
// trailing "OFX" when the label is long enough to keep a meaningful stem.
func BaseFromLabel(label string) string {
	if len(label) > 3 && strings.HasSuffix(label, "OFX") {
		return label[:len(label)-3]
	}
	return label
}

// Resolver decides whether candidate names are available.
type Resolver struct {
	// Taken reports whether a live member other than the one being named uses name.
	Taken func(name string) bool
	// Reserved reports whether name is a parameter of the enclosing group.
	Reserved func(name string) bool
}

// Resolve returns a unique script name derived from baseName.
//
// When appendDigit is true the candidates are base1, base2, ... otherwise the
// only candidate is base itself. A collision fails with ErrNameExists when
// errorIfExists is set or no digit may be appended.
func (r Resolver) Resolve(baseName string, appendDigit, errorIfExists bool) (string, error) {
	if baseName == "" {
		return "", fmt.Errorf("%w: empty name", domain.ErrInvalidName)
	}
	base := ScriptFriendly(baseName)
	if base == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidName, baseName)
	}
	if r.Reserved != nil && r.Reserved(base) {
		return "", fmt.Errorf("%w: %s", domain.ErrNameConflict, base)
	}

	no := 1
	candidate := base
	if appendDigit {
		candidate = base + strconv.Itoa(no)
	}
	for r.Taken != nil && r.Taken(candidate) {
		if errorIfExists || !appendDigit {
			return "", fmt.Errorf("%w: %s", domain.ErrNameExists, candidate)
		}
		no++
		candidate = base + strconv.Itoa(no)
	}
	return candidate, nil
}

// SplitLeftToRight splits "a.b.c" into "a" and "b.c".
func SplitLeftToRight(path string) (name, remainder string) {
	name, remainder, _ = strings.Cut(path, ".")
	return name, remainder
}

// SplitRightToLeft splits "a.b.c" into "c" and "a.b".
func SplitRightToLeft(path string) (name, remainder string) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return path, ""
	}
	return path[i+1:], path[:i]
}
