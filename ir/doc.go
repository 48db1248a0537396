// Package ir defines the mirop intermediate representation.
//
// A Module holds global storage locations and functions; a Func is a
// list of basic blocks; a Block is an ordered list of instructions
// ending in exactly one terminator. Every value is a single machine
// word: a constant, a global address, a function parameter, or an
// instruction result. Values are compared by identity.
//
// An instruction is owned by exactly one block at a time. MoveBefore
// relocates an instruction to a new position, possibly in another
// block, without changing its identity, operands or result; this is
// the only structural mutation the optimization passes perform.
package ir
