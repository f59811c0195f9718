// Package mmfile provides platform-specific helpers for memory-mapping PX files.
//
// On unix the file is mapped read-only with golang.org/x/sys/unix; elsewhere the
// whole file is read into memory. Either way callers get a []byte and a cleanup
// func that is safe to call more than once.
package mmfile
