// Package schema validates extracted documents against the two shapes the
// service returns: a summary with key points, and a list of action items.
//
// Validation runs in two steps. The untyped document is first checked
// against an embedded JSON Schema (required fields, JSON types, nullability),
// then decoded into its typed struct and checked with validator tags for
// value constraints such as the allowed priorities.
package schema
