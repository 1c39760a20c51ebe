// Package imaging provides the pixel-level operations of the analysis
// pipeline: decoding raw bytes into typed buffers, gradient-threshold
// edge detection with hysteresis, and viewport-fit scaling.
//
// All operations work on the Buffer type, an explicit width/height/
// channels/stride container of row-major 8-bit samples, using a
// coordinate system where (0,0) is the top-left corner, X increases
// rightward and Y increases downward. Buffers are treated as immutable:
// every transformation allocates and returns a new Buffer.
//
// # Shape Invariant
//
// DetectEdges always returns an EdgeMap with exactly the dimensions of
// its source Buffer, so downstream stages may index the two
// interchangeably.
//
// # Determinism
//
// Edge detection is a pure function of its inputs. Identical buffers and
// parameters produce bit-identical edge maps across calls, which keeps
// interactive re-tuning reproducible.
//
// # Error Handling
//
// The only failure in this package is Decode on malformed bytes, which
// wraps ErrDecode. Degenerate scaling bounds and out-of-order thresholds
// are normalized, not rejected: the scaler returns its input unscaled and
// the edge detector swaps a low threshold above the high one.
//
// # Performance Considerations
//
// Edge detection visits every pixel a small constant number of times, so
// a recompute is O(pixels). At interactive scale (one image at a time)
// that cost is acceptable; there is no cancellation, and a large image
// blocks the caller until its pass completes. BufferCache avoids paying
// the decode cost again when renavigating to an image.
package imaging
