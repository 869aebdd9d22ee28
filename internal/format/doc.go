// Package format turns a declaration tree into Java source for one
// compilation unit.
//
// Emission runs three passes over the same tree: Collect records every
// short name the tree would print, Decide picks the imports that cause no
// ambiguity, and Print writes the text using short names where the import
// set allows and qualified names elsewhere. ContainsErrorTypes is a cheap
// pre-flight pass that reports unresolved types without printing.
//
// Dependencies: internal/types, go.uber.org/zap, internal/trace.
package format
