// Package loader hydrates a raw specfile.Spec into a model.Tree: it
// assigns index/parent/canonicalId to every subsystem, resolves link and
// flow endpoints by canonicalId, normalises flow keyframes, discovers the
// link path connecting each flow step's endpoints, and assigns default
// positions to subsystems that did not declare one.
//
// Loading never aborts on a bad reference. Unresolved endpoints are left
// nil on the hydrated tree and are reported, separately, by
// pkg/validation.
package loader
