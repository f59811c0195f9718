package meta

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/pxtools/pxkit/pkg/types"
)

// DefaultCodepage applies when a file carries no CODEPAGE entry.
const DefaultCodepage = "iso-8859-1"

// UTF8BOM may precede the first keyword of UTF-8 encoded files.
const UTF8BOM = "\xef\xbb\xbf"

// Codepage names seen in PX files in the wild, including the informal spellings
// that the IANA registry does not know.
var codepages = map[string]encoding.Encoding{
	"utf-8":        unicode.UTF8,
	"utf8":         unicode.UTF8,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso8859-1":    charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"iso8859-15":   charmap.ISO8859_15,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"windows-1251": charmap.Windows1251,
	"cp1251":       charmap.Windows1251,
	"ibm850":       charmap.CodePage850,
	"cp850":        charmap.CodePage850,
	"ibm437":       charmap.CodePage437,
	"cp437":        charmap.CodePage437,
}

// Codepages returns the CODEPAGE spellings recognized without consulting the
// IANA registry, sorted.
func Codepages() []string {
	return slices.Sorted(maps.Keys(codepages))
}

// Encoding resolves a CODEPAGE value to a text encoding. Unknown names fall
// back to the IANA registry; an empty name selects DefaultCodepage.
func Encoding(codepage string) (encoding.Encoding, error) {
	name := strings.ToLower(strings.TrimSpace(codepage))
	if name == "" {
		name = DefaultCodepage
	}
	if enc, ok := codepages[name]; ok {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, types.Wrap(types.ErrKindUnsupported, "meta: unsupported codepage "+codepage, types.ErrUnsupported)
	}
	return enc, nil
}

// decodeText converts raw header bytes to UTF-8 and strips a leading BOM.
func decodeText(raw []byte, enc encoding.Encoding) (string, error) {
	if strings.HasPrefix(string(raw[:min(len(raw), len(UTF8BOM))]), UTF8BOM) {
		raw = raw[len(UTF8BOM):]
	}
	if enc == unicode.UTF8 {
		return string(raw), nil // no copy beyond the string conversion
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", types.Wrap(types.ErrKindFormat, "meta: decode header", err)
	}
	return string(out), nil
}
