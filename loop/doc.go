// Package loop provides natural-loop discovery and the loop-nest
// forest consumed by the optimization passes.
//
// Loop detection works from the dominator tree: an edge u→h where h
// dominates u is a back edge closing a natural loop with header h, and
// the loop body is collected by walking predecessors backwards from u
// until h. Loops sharing a header are merged into one.
//
// Discovered loops form a forest. Nesting is derived from block
// containment, so a block may belong to several loops along one
// nesting chain but never to two unrelated loops.
package loop
