// Package opt holds the simple scalar passes run around loop-invariant
// code motion: restricted memory-to-register promotion, block-local
// common-subexpression elimination and dead-code elimination. All
// three rewrite a function in place and report how much they removed
// or promoted; none of them is required for licm to be correct.
package opt
