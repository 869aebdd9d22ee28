// Package fuzztests houses Go fuzz harnesses for the text the generator
// accepts from users: type expressions and descriptor files. They guard
// against panics and runaway inputs; no files are written.
package fuzztests
