// Package buffer implements a reusable, copy-on-write byte buffer engine
// for high-throughput pipelines: frames read off a socket, partially
// parsed protocol units, outbound payloads, and the slices passed between
// pipeline stages.
//
// A Buffer is a small value — a Storage reference, a slice window, and a
// reader/writer index pair — that can be passed, cloned, and sliced by
// value without copying bytes until a write forces divergence from a
// shared Storage. Storage is reference-counted; a Buffer mutation first
// checks whether it is the sole owner of its Storage and, if not, copies
// its window into a fresh Storage before writing (copy-on-write).
//
// Buffer values are not safe for concurrent mutation from more than one
// goroutine. Cloning is safe from any goroutine; the resulting clones may
// then be mutated independently from their own goroutines.
package buffer
