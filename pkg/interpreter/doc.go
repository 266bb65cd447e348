// Package interpreter executes resolved Lox programs by walking the AST.
// Variable references recorded in the resolver's binding table are read at a
// fixed environment distance; everything else falls back to the globals.
package interpreter
