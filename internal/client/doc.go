// Package client implements the consumer side of the document API: a
// thin HTTP client, an owned document store, a pure view projection and
// a keyed reconciler that patches a rendering surface with minimal
// structural change.
package client
