// Package parse builds ir.Module values from the textual IR format.
//
// Usage
//
// There are two ways of supplying input:
//
// Build from a file
//
// This is the normal usage, where the path comes from the command
// line:
//
//	m, err := parse.FromFile("input.mir").Build()
//
// Build from a Reader
//
// This is mostly used for testing or demo, where the input is read
// from a given io.Reader:
//
//	m, err := parse.FromReader(strings.NewReader(src)).Build()
package parse
