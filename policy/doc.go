// Package policy provides optional declarative rules deciding which field
// resolutions are instrumented – for example to silence high-cardinality
// list children or noisy scalar fields.
package policy
