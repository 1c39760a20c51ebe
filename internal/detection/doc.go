// Package detection finds line segments in binary edge maps.
//
// The detector is a progressive probabilistic Hough transform: instead of
// exhaustively testing pixel subsets, it samples edge pixels in random
// order, accumulates votes in a rho/theta parameter space (1 pixel by 1
// degree resolution), and traces the maximal pixel run whenever a bin
// reaches the vote threshold. Pixels consumed by a traced run are removed
// from further voting, so strong lines do not spawn duplicate detections.
//
// Sampling uses a deterministically seeded generator: repeated calls over
// the same edge map and parameters return bit-identical results.
//
// # Results
//
// The returned segments are an unordered set. No segment is privileged
// over another; consumers must treat the whole set as the result. Every
// endpoint lies within the source image bounds. An empty edge map, or
// parameters no run can satisfy, yields an empty set rather than an
// error.
package detection
