package meta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding"

	"github.com/pxtools/pxkit/internal/logger"
	"github.com/pxtools/pxkit/pkg/types"
	"github.com/pxtools/pxkit/px/locate"
)

// Header keywords read by this package.
const (
	KeywordCodepage  = "CODEPAGE"
	KeywordLanguage  = "LANGUAGE"
	KeywordLanguages = "LANGUAGES"
	KeywordStub      = "STUB"
	KeywordHeading   = "HEADING"
	KeywordValues    = "VALUES"
	KeywordDecimals  = "DECIMALS"
	KeywordData      = locate.DataKeyword
)

// maxCodepageLen bounds how far past CODEPAGE= the raw value is read.
const maxCodepageLen = 128

// Dimension is one table axis with its value labels in storage order.
type Dimension struct {
	Name   string
	Values []string
}

// Size returns the number of values along the dimension.
func (d Dimension) Size() int { return len(d.Values) }

// Header is the decoded metadata block of a PX file.
type Header struct {
	Entries    []Entry
	Codepage   string
	Encoding   encoding.Encoding
	DataOffset int64 // first byte of the data section
}

// ParseHeader reads the metadata block of r.
//
// CODEPAGE and DATA are located on raw bytes first; the bytes before the data
// section are then decoded with the declared codepage and tokenized.
func ParseHeader(r io.ReadSeeker) (*Header, error) {
	h := &Header{}

	cpPos, err := locate.Find(r, KeywordCodepage)
	if err != nil {
		return nil, err
	}
	if cpPos != locate.NotFound {
		raw, err := readRawValue(r, cpPos)
		if err != nil {
			return nil, err
		}
		h.Codepage = string(bytes.Trim(bytes.TrimSpace(raw), `"`))
	}
	h.Encoding, err = Encoding(h.Codepage)
	if err != nil {
		return nil, err
	}

	h.DataOffset, err = locate.Find(r, KeywordData)
	if err != nil {
		return nil, err
	}
	if h.DataOffset == locate.NotFound {
		return nil, types.Wrap(types.ErrKindNotFound, "meta: DATA keyword missing or repeated", types.ErrKeywordNotFound)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("meta: seek: %w", err)
	}
	raw := make([]byte, h.DataOffset)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("meta: read header: %w", err)
	}
	text, err := decodeText(raw, h.Encoding)
	if err != nil {
		return nil, err
	}
	h.Entries, err = ParseEntries(text)
	if err != nil {
		return nil, err
	}
	logger.L.Debug("px header parsed",
		"codepage", h.Codepage, "entries", len(h.Entries), "data_offset", h.DataOffset)
	return h, nil
}

// readRawValue returns the bytes from pos up to the next ';'.
func readRawValue(r io.ReadSeeker, pos int64) ([]byte, error) {
	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return nil, fmt.Errorf("meta: seek: %w", err)
	}
	br := bufio.NewReaderSize(io.LimitReader(r, maxCodepageLen), maxCodepageLen)
	raw, err := br.ReadSlice(';')
	if err != nil {
		return nil, types.Wrap(types.ErrKindFormat, "meta: unterminated CODEPAGE value", types.ErrFormat)
	}
	return raw[:len(raw)-1], nil
}

// Get returns the first entry matching keyword, language and specifiers.
// lang "" or the file's default language selects entries without a language tag.
func (h *Header) Get(keyword, lang string, specs ...string) (Entry, bool) {
	lang = h.normalizeLang(lang)
	for _, e := range h.Entries {
		if e.Matches(keyword, lang, specs...) {
			return e, true
		}
	}
	return Entry{}, false
}

// DefaultLanguage returns the LANGUAGE value, or "" when absent.
func (h *Header) DefaultLanguage() string {
	if e, ok := h.Get(KeywordLanguage, ""); ok {
		return e.String()
	}
	return ""
}

// Languages lists the declared languages, default first. A file without
// LANGUAGES has a single unnamed default language.
func (h *Header) Languages() []string {
	def := h.DefaultLanguage()
	e, ok := h.Get(KeywordLanguages, "")
	if !ok {
		return []string{def}
	}
	langs := []string{def}
	for _, l := range e.Values() {
		if l != def {
			langs = append(langs, l)
		}
	}
	return langs
}

// Stub returns the row dimension names.
func (h *Header) Stub(lang string) []string { return h.list(KeywordStub, lang) }

// Heading returns the column dimension names.
func (h *Header) Heading(lang string) []string { return h.list(KeywordHeading, lang) }

func (h *Header) list(keyword, lang string) []string {
	e, ok := h.Get(keyword, lang)
	if !ok {
		return nil
	}
	return e.Values()
}

// Dimensions returns the stub dimensions followed by the heading dimensions,
// which is the storage order of the data section.
func (h *Header) Dimensions(lang string) ([]Dimension, error) {
	names := append(h.Stub(lang), h.Heading(lang)...)
	if len(names) == 0 {
		return nil, types.Wrap(types.ErrKindNotFound, "meta: no STUB or HEADING", types.ErrKeywordNotFound)
	}
	dims := make([]Dimension, len(names))
	for i, name := range names {
		if e, ok := h.Get(KeywordValues, lang, name); ok {
			dims[i] = Dimension{Name: name, Values: e.Values()}
			continue
		}
		// A time dimension may be declared by TIMEVAL alone.
		e, ok := h.Get(KeywordTimeval, lang, name)
		if !ok {
			return nil, types.Wrap(types.ErrKindNotFound,
				fmt.Sprintf("meta: VALUES(%q) missing", name), types.ErrKeywordNotFound)
		}
		vals, err := TimevalValues(e)
		if err != nil {
			return nil, fmt.Errorf("meta: dimension %q: %w", name, err)
		}
		dims[i] = Dimension{Name: name, Values: vals}
	}
	return dims, nil
}

// Sizes returns the cardinality of every dimension in storage order, plus the
// number of stub dimensions so callers can split rows from columns.
func (h *Header) Sizes(lang string) (sizes []int, stubLen int, err error) {
	dims, err := h.Dimensions(lang)
	if err != nil {
		return nil, 0, err
	}
	sizes = make([]int, len(dims))
	for i, d := range dims {
		sizes[i] = d.Size()
	}
	return sizes, len(h.Stub(lang)), nil
}

func (h *Header) normalizeLang(lang string) string {
	if lang == "" {
		return ""
	}
	for _, e := range h.Entries {
		if e.Keyword == KeywordLanguage && e.Language == "" {
			if e.String() == lang {
				return ""
			}
			break
		}
	}
	return lang
}
