package detection

import (
	"math"
	"math/rand"

	"linescope/internal/imaging"
)

// Fixed Hough resolutions: 1 pixel in rho, 1 degree in theta.
const (
	numAngles = 180
	thetaRes  = math.Pi / numAngles
)

// houghSeed seeds the sampling RNG. A fixed seed keeps the transform
// deterministic: identical edge maps and parameters always yield
// identical segments.
const houghSeed = 0x0a1b2c3d

// Segment is a detected line segment. Both endpoints lie within the
// bounds of the source image.
type Segment struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	dx := float64(s.X2 - s.X1)
	dy := float64(s.Y2 - s.Y1)
	return math.Sqrt(dx*dx + dy*dy)
}

// DetectSegments finds line segments in an edge map using a progressive
// probabilistic Hough transform.
//
// Parameters:
//   - edges: Binary edge map, typically from imaging.DetectEdges.
//   - threshold: Minimum accumulator votes before a candidate line is traced.
//   - minLineLength: Segments shorter than this are discarded.
//   - maxLineGap: Maximum run of non-edge pixels bridged while tracing.
//
// Edge pixels are consumed in random (but deterministically seeded) order.
// Each sampled pixel votes across all theta bins; once a bin reaches
// threshold, the maximal pixel run along that bin's line is traced through
// gaps no larger than maxLineGap, and the run's pixels are removed from
// further consideration. Runs shorter than minLineLength are dropped.
//
// The returned slice is an unordered set: no segment is privileged over
// another. An empty edge map, or parameters that admit no qualifying run,
// yields an empty result.
func DetectSegments(edges *imaging.EdgeMap, threshold, minLineLength, maxLineGap int) []Segment {
	width := edges.Width
	height := edges.Height

	type point struct{ x, y int }
	var points []point
	mask := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges.At(x, y) {
				points = append(points, point{x, y})
				mask[y*width+x] = true
			}
		}
	}

	segments := make([]Segment, 0)
	if len(points) == 0 {
		return segments
	}

	cosT := make([]float64, numAngles)
	sinT := make([]float64, numAngles)
	for t := 0; t < numAngles; t++ {
		cosT[t] = math.Cos(float64(t) * thetaRes)
		sinT[t] = math.Sin(float64(t) * thetaRes)
	}

	// rho spans [-maxDist, maxDist] at 1-pixel resolution.
	maxDist := int(math.Hypot(float64(width), float64(height))) + 1
	accum := make([][]int, numAngles)
	for t := range accum {
		accum[t] = make([]int, 2*maxDist+1)
	}

	rng := rand.New(rand.NewSource(houghSeed))

	for count := len(points); count > 0; count-- {
		idx := rng.Intn(count)
		p := points[idx]
		points[idx] = points[count-1]
		points = points[:count-1]

		// The pixel may already belong to a traced line.
		if !mask[p.y*width+p.x] {
			continue
		}

		bestVotes := 0
		bestTheta := 0
		for t := 0; t < numAngles; t++ {
			rho := int(math.Round(float64(p.x)*cosT[t]+float64(p.y)*sinT[t])) + maxDist
			accum[t][rho]++
			if accum[t][rho] > bestVotes {
				bestVotes = accum[t][rho]
				bestTheta = t
			}
		}
		if bestVotes < threshold {
			continue
		}

		// Direction along the line whose normal is bestTheta.
		dirX := -sinT[bestTheta]
		dirY := cosT[bestTheta]

		end1 := traceRun(mask, width, height, p.x, p.y, dirX, dirY, maxLineGap)
		end2 := traceRun(mask, width, height, p.x, p.y, -dirX, -dirY, maxLineGap)

		seg := Segment{X1: end1[0], Y1: end1[1], X2: end2[0], Y2: end2[1]}

		// Consume the run so its pixels cannot seed further candidates.
		clearRun(mask, width, height, p.x, p.y, dirX, dirY, end1)
		clearRun(mask, width, height, p.x, p.y, -dirX, -dirY, end2)

		if seg.Length() >= float64(minLineLength) {
			segments = append(segments, seg)
		}
	}

	return segments
}

// traceRun walks from (x0, y0) along (dirX, dirY) in unit pixel steps,
// following mask pixels and bridging gaps of at most maxGap, and returns
// the last edge pixel reached.
func traceRun(mask []bool, width, height, x0, y0 int, dirX, dirY float64, maxGap int) [2]int {
	sx, sy := pixelStep(dirX, dirY)
	fx, fy := float64(x0), float64(y0)
	last := [2]int{x0, y0}
	gap := 0
	for {
		fx += sx
		fy += sy
		x := int(math.Round(fx))
		y := int(math.Round(fy))
		if x < 0 || x >= width || y < 0 || y >= height {
			break
		}
		if mask[y*width+x] {
			last = [2]int{x, y}
			gap = 0
		} else {
			gap++
			if gap > maxGap {
				break
			}
		}
	}
	return last
}

// clearRun removes from the mask every edge pixel on the walk from
// (x0, y0) to the previously traced endpoint.
func clearRun(mask []bool, width, height, x0, y0 int, dirX, dirY float64, end [2]int) {
	sx, sy := pixelStep(dirX, dirY)
	fx, fy := float64(x0), float64(y0)
	for {
		x := int(math.Round(fx))
		y := int(math.Round(fy))
		if x < 0 || x >= width || y < 0 || y >= height {
			return
		}
		if mask[y*width+x] {
			mask[y*width+x] = false
		}
		if x == end[0] && y == end[1] {
			return
		}
		fx += sx
		fy += sy
	}
}

// pixelStep scales a direction vector so the dominant axis advances one
// pixel per step.
func pixelStep(dirX, dirY float64) (float64, float64) {
	ax := math.Abs(dirX)
	ay := math.Abs(dirY)
	if ax == 0 && ay == 0 {
		return 0, 0
	}
	if ax >= ay {
		return dirX / ax, dirY / ax
	}
	return dirX / ay, dirY / ay
}
