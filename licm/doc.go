// Package licm implements loop-invariant code motion over the mirop
// IR.
//
// For every loop that has a preheader, instructions proven to compute
// the same value on every iteration are relocated to the preheader so
// they execute once instead of once per iteration. Ordinary pure
// instructions are hoisted when all their operands are invariant; a
// load is hoisted only when it reads a global address that no store in
// the loop can write. The pass is conservative: it never relocates an
// instruction unless the move is known to preserve observable
// behavior, and it resolves every undecidable aliasing question by
// leaving the instruction in place.
//
// Loops are processed innermost first, so code hoisted out of an inner
// loop becomes a candidate for the enclosing loop in the same run.
package licm
