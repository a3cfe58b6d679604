// Package specfile defines the raw, author-facing specification document
// for a system architecture diagram and knows how to load it from YAML or
// JSON. It performs no graph resolution: that is pkg/loader's job.
package specfile
