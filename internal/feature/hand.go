package feature

import (
	"math"

	"github.com/ayusman/abhinaya/internal/landmark"
)

// Geometry margins in normalized image units.
const (
	// FingerExtendMargin is how far above its PIP joint a fingertip must sit
	// to count as extended. Filters out half-curled fingers.
	FingerExtendMargin = 0.02
	// ThumbWristMargin is how far above (or below) the wrist the thumb tip
	// must sit for a thumbs-up (or thumbs-down) reading.
	ThumbWristMargin = 0.1
)

// Hand bundles the per-digit measurements the gesture rules combine.
type Hand struct {
	ThumbExtended  bool
	IndexExtended  bool
	MiddleExtended bool
	RingExtended   bool
	PinkyExtended  bool

	ThumbAboveWrist bool
	ThumbBelowWrist bool

	// ThumbIndexGap is the distance between thumb tip and index tip,
	// used for the OK-sign pinch test.
	ThumbIndexGap float64
}

// ExtractHand measures a hand landmark set.
func ExtractHand(s landmark.Set) Hand {
	h := Hand{
		IndexExtended:  fingerExtended(s, landmark.IndexTip, landmark.IndexPIP),
		MiddleExtended: fingerExtended(s, landmark.MiddleTip, landmark.MiddlePIP),
		RingExtended:   fingerExtended(s, landmark.RingTip, landmark.RingPIP),
		PinkyExtended:  fingerExtended(s, landmark.PinkyTip, landmark.PinkyPIP),
		ThumbIndexGap:  s.Distance(landmark.ThumbTip, landmark.IndexTip),
	}

	// The thumb points sideways, not up, so extension is judged by how far
	// the tip strays horizontally from the palm center rather than by the
	// tip-above-PIP test used for the other four digits.
	tip, okTip := s.At(landmark.ThumbTip)
	mcp, okMCP := s.At(landmark.ThumbMCP)
	if okTip && okMCP {
		palmX := palmCenterX(s)
		h.ThumbExtended = math.Abs(tip.X-palmX) > math.Abs(mcp.X-palmX)+FingerExtendMargin
	}

	wrist, okW := s.At(landmark.Wrist)
	if okTip && okW {
		h.ThumbAboveWrist = tip.Y < wrist.Y-ThumbWristMargin
		h.ThumbBelowWrist = tip.Y > wrist.Y+ThumbWristMargin
	}

	return h
}

// ExtendedCount returns how many of the five digits are extended.
func (h Hand) ExtendedCount() int {
	n := 0
	for _, ext := range []bool{h.ThumbExtended, h.IndexExtended, h.MiddleExtended, h.RingExtended, h.PinkyExtended} {
		if ext {
			n++
		}
	}
	return n
}

// fingerExtended reports whether a fingertip sits meaningfully above its PIP
// joint. Y grows downward, so "above" means a smaller y.
func fingerExtended(s landmark.Set, tip, pip int) bool {
	t, okT := s.At(tip)
	p, okP := s.At(pip)
	if !okT || !okP {
		return false
	}
	return t.Y < p.Y-FingerExtendMargin
}

// palmCenterX averages the x of the wrist and the four finger knuckles.
func palmCenterX(s landmark.Set) float64 {
	idx := []int{landmark.Wrist, landmark.IndexMCP, landmark.MiddleMCP, landmark.RingMCP, landmark.PinkyMCP}
	var sum float64
	var n int
	for _, i := range idx {
		if p, ok := s.At(i); ok {
			sum += p.X
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
