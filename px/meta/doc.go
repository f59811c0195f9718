// Package meta decodes the header of a PX file: the KEYWORD[lang]("name")=value;
// entries before the data section.
//
// CODEPAGE and DATA are found on raw bytes with the locate package before any
// decoding, since the codepage itself decides how the rest of the header is
// read. Only entry syntax is checked; keyword semantics are left to callers.
package meta
