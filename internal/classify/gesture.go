package classify

import (
	"github.com/ayusman/abhinaya/internal/feature"
	"github.com/ayusman/abhinaya/internal/landmark"
)

// Gesture is one of the closed set of hand gesture categories.
type Gesture string

const (
	GestureNone         Gesture = "none"
	GestureMiddleFinger Gesture = "middle-finger"
	GestureThumbsUp     Gesture = "thumbs-up"
	GestureThumbsDown   Gesture = "thumbs-down"
	GesturePeace        Gesture = "peace"
	GestureOKSign       Gesture = "ok"
	GestureRockOn       Gesture = "rock-on"
	GesturePointing     Gesture = "pointing"
	GestureWave         Gesture = "wave"
	GestureFist         Gesture = "fist"
)

// OKPinchMax is the maximum thumb-tip to index-tip distance for the
// OK-sign pinch, in normalized image units.
const OKPinchMax = 0.05

type gestureRule struct {
	category Gesture
	match    func(h feature.Hand) (bool, float64)
}

// GestureClassifier evaluates its rule bank in a fixed priority order.
// Rude or unambiguous shapes are checked before loose ones (middle-finger
// before peace before generic pointing) so overlapping matches resolve
// predictably.
type GestureClassifier struct {
	rules []gestureRule
}

// NewGestureClassifier builds a classifier with the stock rule bank.
func NewGestureClassifier() *GestureClassifier {
	return &GestureClassifier{
		rules: []gestureRule{
			{GestureMiddleFinger, matchMiddleFinger},
			{GestureThumbsUp, matchThumbsUp},
			{GestureThumbsDown, matchThumbsDown},
			{GesturePeace, matchPeace},
			{GestureOKSign, matchOKSign},
			{GestureRockOn, matchRockOn},
			{GesturePointing, matchPointing},
			{GestureWave, matchWave},
			{GestureFist, matchFist},
		},
	}
}

// Classify returns the highest-priority matching gesture and its confidence.
// A set shorter than a full hand is "no usable signal": none at 0.
func (c *GestureClassifier) Classify(s landmark.Set) (Gesture, float64) {
	if !s.IsHand() {
		return GestureNone, 0
	}
	h := feature.ExtractHand(s)
	for _, r := range c.rules {
		if ok, conf := r.match(h); ok {
			return r.category, conf
		}
	}
	return GestureNone, 0
}

// Categories returns the rule bank's categories in priority order,
// excluding the none default.
func (c *GestureClassifier) Categories() []Gesture {
	out := make([]Gesture, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.category
	}
	return out
}

func matchMiddleFinger(h feature.Hand) (bool, float64) {
	if h.MiddleExtended && !h.IndexExtended && !h.RingExtended && !h.PinkyExtended {
		return true, 0.8
	}
	return false, 0
}

func matchThumbsUp(h feature.Hand) (bool, float64) {
	if h.ThumbExtended && !h.IndexExtended && !h.MiddleExtended && !h.RingExtended && !h.PinkyExtended && h.ThumbAboveWrist {
		return true, 0.8
	}
	return false, 0
}

func matchThumbsDown(h feature.Hand) (bool, float64) {
	if h.ThumbExtended && !h.IndexExtended && !h.MiddleExtended && !h.RingExtended && !h.PinkyExtended && h.ThumbBelowWrist {
		return true, 0.8
	}
	return false, 0
}

func matchPeace(h feature.Hand) (bool, float64) {
	if h.IndexExtended && h.MiddleExtended && !h.RingExtended && !h.PinkyExtended {
		return true, 0.8
	}
	return false, 0
}

func matchOKSign(h feature.Hand) (bool, float64) {
	if h.ThumbIndexGap > 0 && h.ThumbIndexGap < OKPinchMax && h.MiddleExtended && h.RingExtended && h.PinkyExtended {
		return true, clamp01(1 - h.ThumbIndexGap/OKPinchMax)
	}
	return false, 0
}

func matchRockOn(h feature.Hand) (bool, float64) {
	if h.IndexExtended && h.PinkyExtended && !h.MiddleExtended && !h.RingExtended {
		return true, 0.8
	}
	return false, 0
}

func matchPointing(h feature.Hand) (bool, float64) {
	if h.IndexExtended && !h.MiddleExtended && !h.RingExtended && !h.PinkyExtended {
		return true, 0.7
	}
	return false, 0
}

func matchWave(h feature.Hand) (bool, float64) {
	if h.ThumbExtended && h.IndexExtended && h.MiddleExtended && h.RingExtended && h.PinkyExtended {
		return true, 0.8
	}
	return false, 0
}

func matchFist(h feature.Hand) (bool, float64) {
	if h.ExtendedCount() == 0 {
		return true, 0.7
	}
	return false, 0
}
