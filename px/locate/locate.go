// Package locate finds header keywords in a PX file by scanning raw bytes.
//
// Keyword names are always ASCII, so entries can be located before the file's
// text encoding is known. This matters because the encoding is itself declared
// by a header keyword (CODEPAGE) that has to be found first.
package locate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// NotFound is returned by Find when the keyword is absent or not unique.
const NotFound int64 = -1

const (
	// DataKeyword opens the data section, which is always the last entry.
	DataKeyword = "DATA"

	separator  = '='
	quote      = '"'
	readBuffer = 64 * 1024
	// Longer runs cannot be keywords; they are skipped without buffering.
	maxKeywordLen = 64
)

// Find returns the byte offset just past `keyword=` for the single top-level
// entry named keyword. A match must start on a token boundary (the previous
// byte is not a keyword character) and lie outside any quoted string, so
// substrings of longer keywords and text inside values never match.
//
// When the keyword is absent, or occurs more than once as a top-level entry,
// Find returns NotFound and a nil error; only I/O failures are errors.
// Scanning stops at the DATA entry, so header keywords are located without
// reading the data section. DATA itself is therefore never reported as
// ambiguous: its first top-level occurrence ends the header, and any later
// "DATA=" belongs to the data section.
func Find(r io.ReadSeeker, keyword string) (int64, error) {
	if keyword == "" || len(keyword) > maxKeywordLen {
		return NotFound, nil
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return NotFound, fmt.Errorf("locate: seek: %w", err)
	}
	s := scanner{br: bufio.NewReaderSize(r, readBuffer)}

	found := NotFound
	for {
		name, at, err := s.nextEntry()
		if errors.Is(err, io.EOF) {
			return found, nil
		}
		if err != nil {
			return NotFound, fmt.Errorf("locate: read at %d: %w", s.pos, err)
		}
		if name == keyword {
			if found != NotFound {
				// Keywords are unique in PX metadata; a repeat is ambiguous.
				return NotFound, nil
			}
			found = at
		}
		if name == DataKeyword {
			// Everything past here is data, including a second DATA=.
			return found, nil
		}
	}
}

// scanner walks the byte stream, reporting every unquoted keyword run that is
// immediately followed by '='.
type scanner struct {
	br      *bufio.Reader
	pos     int64 // offset of the next unread byte
	inQuote bool
	run     [maxKeywordLen]byte
}

// nextEntry returns the next `NAME=` match and the offset just past '='.
func (s *scanner) nextEntry() (string, int64, error) {
	n := 0
	overlong := false
	for {
		c, err := s.br.ReadByte()
		if err != nil {
			return "", 0, err
		}
		s.pos++
		if s.inQuote {
			if c == quote {
				s.inQuote = false
			}
			continue
		}
		switch {
		case isKeywordChar(c):
			if n < maxKeywordLen {
				s.run[n] = c
			} else {
				overlong = true
			}
			n++
			continue
		case c == separator && n > 0 && !overlong:
			return string(s.run[:n]), s.pos, nil
		case c == quote:
			s.inQuote = true
		}
		n = 0
		overlong = false
	}
}

func isKeywordChar(c byte) bool {
	return c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c >= '0' && c <= '9' ||
		c == '-' || c == '_'
}
