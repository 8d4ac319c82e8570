// Package carve implements a forensic decoder for PostgreSQL heap pages.
//
// It has no notion of files, directories, flags, or output formats: given
// a byte source it locates candidate 8 KiB heap pages, decodes the live
// tuples inside them, and infers a schema for each tuple heuristically,
// since no catalog is available to describe it. Everything outside that
// core decoding loop (argument parsing, file enumeration, CSV/XLSX
// writers, logging) lives in sibling packages that depend on carve, never
// the other way around.
package carve
