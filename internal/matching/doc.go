// Package matching implements the request matching primitives consumed by
// the dispatcher: path templates with ":name" parameters and "*" wildcards,
// plus optional header, query, and body predicates.
//
// All matchers return a specificity score. A score of 0 means no match;
// higher scores indicate more specific matches, so an exact path always
// beats a parameterized one and a parameterized one always beats a
// wildcard. The dispatcher uses these scores to pick a single deterministic
// winner when several routes match the same request.
//
// Matchers operate on the request path only. Callers pass URL.Path, never
// the raw URL, so query strings can never influence route selection.
package matching
