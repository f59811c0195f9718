package meta

import (
	"fmt"
	"strings"

	"github.com/pxtools/pxkit/pkg/types"
)

// Entry is one `KEYWORD[lang]("name","name")=value;` header line.
type Entry struct {
	Keyword    string
	Language   string   // "" for the default language
	Specifiers []string // unquoted
	Value      string   // raw text between '=' and ';', trimmed
}

// Values splits a list value into its items. Quoted strings separated only by
// whitespace are concatenated (PX wraps long strings across lines); commas
// separate items. Unquoted items such as numbers or YES/NO are kept verbatim.
func (e Entry) Values() []string {
	var (
		out     []string
		cur     strings.Builder
		pending bool
	)
	v := e.Value
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case c == '"':
			end := strings.IndexByte(v[i+1:], '"')
			if end < 0 {
				end = len(v) - i - 1
			}
			cur.WriteString(v[i+1 : i+1+end])
			pending = true
			i += end + 1
		case c == ',':
			out = append(out, cur.String())
			cur.Reset()
			pending = false
		case isSpace(c):
		default:
			// Unquoted run up to the next comma.
			end := strings.IndexByte(v[i:], ',')
			if end < 0 {
				end = len(v) - i
			}
			cur.WriteString(strings.TrimSpace(v[i : i+end]))
			pending = true
			i += end - 1
		}
	}
	if pending || len(out) > 0 {
		out = append(out, cur.String())
	}
	return out
}

// String returns the value as a single item: the unquoted text for a quoted
// value, or the raw value otherwise.
func (e Entry) String() string {
	vals := e.Values()
	if len(vals) == 1 {
		return vals[0]
	}
	return e.Value
}

// Matches reports whether e has the given keyword, language and specifiers.
func (e Entry) Matches(keyword, lang string, specs ...string) bool {
	if e.Keyword != keyword || e.Language != lang || len(e.Specifiers) != len(specs) {
		return false
	}
	for i, s := range specs {
		if e.Specifiers[i] != s {
			return false
		}
	}
	return true
}

// ParseEntries tokenizes decoded header text into entries. Parsing stops at the
// DATA keyword. Only the entry syntax is checked; keyword semantics are not.
func ParseEntries(text string) ([]Entry, error) {
	p := entryParser{s: strings.TrimPrefix(text, "\ufeff")}
	var out []Entry
	for {
		p.skipSpace()
		if p.eof() {
			return out, nil
		}
		e, err := p.entry()
		if err != nil {
			return nil, err
		}
		if e.Keyword == "DATA" {
			return out, nil
		}
		out = append(out, e)
	}
}

type entryParser struct {
	s   string
	pos int
}

func (p *entryParser) eof() bool { return p.pos >= len(p.s) }

func (p *entryParser) skipSpace() {
	for !p.eof() && isSpace(p.s[p.pos]) {
		p.pos++
	}
}

func (p *entryParser) errorf(format string, args ...any) error {
	return types.Wrap(types.ErrKindFormat,
		fmt.Sprintf("meta: at byte %d: ", p.pos)+fmt.Sprintf(format, args...), types.ErrFormat)
}

func (p *entryParser) entry() (Entry, error) {
	var e Entry
	start := p.pos
	for !p.eof() && !strings.ContainsRune("[(=;", rune(p.s[p.pos])) {
		p.pos++
	}
	e.Keyword = strings.TrimSpace(p.s[start:p.pos])
	if e.Keyword == "" {
		return e, p.errorf("missing keyword")
	}
	if !p.eof() && p.s[p.pos] == '[' {
		end := strings.IndexByte(p.s[p.pos:], ']')
		if end < 0 {
			return e, p.errorf("unterminated language for %s", e.Keyword)
		}
		e.Language = strings.TrimSpace(p.s[p.pos+1 : p.pos+end])
		p.pos += end + 1
	}
	if !p.eof() && p.s[p.pos] == '(' {
		specs, err := p.specifiers()
		if err != nil {
			return e, err
		}
		e.Specifiers = specs
	}
	p.skipSpace()
	if p.eof() || p.s[p.pos] != '=' {
		return e, p.errorf("missing '=' after %s", e.Keyword)
	}
	p.pos++
	if e.Keyword == "DATA" {
		return e, nil
	}
	start = p.pos
	inQuote := false
	for ; !p.eof(); p.pos++ {
		c := p.s[p.pos]
		if c == '"' {
			inQuote = !inQuote
		} else if c == ';' && !inQuote {
			e.Value = strings.TrimSpace(p.s[start:p.pos])
			p.pos++
			return e, nil
		}
	}
	if inQuote {
		return e, p.errorf("unterminated string in %s", e.Keyword)
	}
	return e, p.errorf("missing ';' after %s", e.Keyword)
}

// specifiers reads `("a","b")` starting at '('.
func (p *entryParser) specifiers() ([]string, error) {
	p.pos++ // '('
	var specs []string
	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf("unterminated specifier list")
		}
		switch c := p.s[p.pos]; c {
		case ')':
			p.pos++
			return specs, nil
		case ',':
			p.pos++
		case '"':
			end := strings.IndexByte(p.s[p.pos+1:], '"')
			if end < 0 {
				return nil, p.errorf("unterminated specifier")
			}
			specs = append(specs, p.s[p.pos+1:p.pos+1+end])
			p.pos += end + 2
		default:
			return nil, p.errorf("unexpected %q in specifier list", c)
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
