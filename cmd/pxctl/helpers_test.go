package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

const testHeader = `CHARSET="ANSI";
CODEPAGE="iso-8859-1";
LANGUAGE="sv";
LANGUAGES="sv","en";
STUB="region","kön";
STUB[en]="region","sex";
HEADING="år";
HEADING[en]="year";
VALUES("region")="Norr","Mitt","Söder";
VALUES[en]("region")="North","Middle","South";
VALUES("kön")="män","kvinnor";
VALUES[en]("sex")="men","women";
VALUES("år")="2001","2002","2003","2004","2005";
VALUES[en]("year")="2001","2002","2003","2004","2005";
DATA=
`

// writeTestPX writes a 3x2x5 table whose cell at offset i holds i, with
// offset 18 set to ".." and offset 23 to "-". Tokens in bad replace the
// cell at their offset.
func writeTestPX(t *testing.T, bad map[int]string) string {
	t.Helper()
	toks := make([]string, 30)
	for i := range toks {
		toks[i] = strconv.Itoa(i)
	}
	toks[18] = `".."`
	toks[23] = `"-"`
	for i, tok := range bad {
		toks[i] = tok
	}
	raw, err := charmap.ISO8859_1.NewEncoder().String(testHeader + strings.Join(toks, " ") + ";\n")
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "test.px")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// resetFlags restores global flag state after a test changes it.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		verbose, quiet, jsonOut, noColor = false, false, false, false
		configPath = ""
		cfg = defaultConfig()
		readSel, readOrder, readMode = nil, "", ""
		infoLang = ""
	})
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

// decodeJSON unmarshals captured output into v, failing the test on error
func decodeJSON(t *testing.T, output string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(output), v); err != nil {
		t.Fatalf("output is not valid JSON: %v\nOutput: %s", err, output)
	}
}
