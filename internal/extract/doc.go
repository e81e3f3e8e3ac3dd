// Package extract recovers a single JSON object from free-text language model
// output. Model responses are never trusted to be JSON directly: they are
// passed through a short pipeline of pure string stages (fence stripping,
// brace-span selection, trailing-comma repair) before being parsed.
//
// The brace-span stage takes the text between the first '{' and the last '}'
// without tracking nesting depth. Stray braces outside the real object, or
// unbalanced braces inside string values, can therefore produce a wrong
// candidate. This is a known limitation of the heuristic.
package extract
