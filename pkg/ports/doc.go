// Package ports defines the driven-side interfaces of the voxflow core:
// the flow store read boundary and the call log. Adapters under
// pkg/adapters implement them; the interpreter depends only on these
// interfaces so it can be tested with in-memory fakes and zero network.
package ports
