// Package validation performs the structural and referential checks
// spec.md names explicitly: self-reference, missing, inaccurate, and
// duplicate link endpoints. It runs after pkg/loader has hydrated the
// tree and never aborts loading -- it only accumulates a list of errors
// alongside the tree, the way the teacher's own validation package
// accumulates constraint results into a report without failing the
// pipeline.
package validation
