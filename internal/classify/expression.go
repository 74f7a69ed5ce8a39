package classify

import (
	"math"

	"github.com/ayusman/abhinaya/internal/feature"
	"github.com/ayusman/abhinaya/internal/landmark"
)

// Expression is one of the closed set of facial expression categories.
type Expression string

const (
	ExpressionNeutral    Expression = "neutral"
	ExpressionScream     Expression = "scream"
	ExpressionShock      Expression = "shock"
	ExpressionTongue     Expression = "tongue"
	ExpressionKissy      Expression = "kissy"
	ExpressionHappy      Expression = "happy"
	ExpressionWink       Expression = "wink"
	ExpressionSad        Expression = "sad"
	ExpressionGlare      Expression = "glare"
	ExpressionSuspicious Expression = "suspicious"
	ExpressionSleepy     Expression = "sleepy"
	ExpressionBrowRaise  Expression = "eyebrow-raise"
	ExpressionPout       Expression = "pout"
	ExpressionDisgust    Expression = "disgust"
	ExpressionConfused   Expression = "confused"
)

// expressionRule pairs a category with its geometric predicate. The predicate
// reports whether the rule fires and, if so, the confidence to attach.
type expressionRule struct {
	category Expression
	match    func(f feature.Face, t Thresholds) (bool, float64)
}

// ExpressionClassifier evaluates its rule bank in a fixed priority order and
// returns the first matching category. The ordering is a deliberate
// tie-break: the most distinctive expressions are checked first so a frame
// that satisfies several loose thresholds resolves predictably.
type ExpressionClassifier struct {
	thresholds Thresholds
	rules      []expressionRule
}

// NewExpressionClassifier builds a classifier with the given thresholds.
func NewExpressionClassifier(t Thresholds) *ExpressionClassifier {
	return &ExpressionClassifier{
		thresholds: t,
		rules: []expressionRule{
			{ExpressionScream, matchScream},
			{ExpressionShock, matchShock},
			{ExpressionTongue, matchTongue},
			{ExpressionKissy, matchKissy},
			{ExpressionHappy, matchHappy},
			{ExpressionWink, matchWink},
			{ExpressionSad, matchSad},
			{ExpressionGlare, matchGlare},
			{ExpressionSuspicious, matchSuspicious},
			{ExpressionSleepy, matchSleepy},
			{ExpressionBrowRaise, matchBrowRaise},
			{ExpressionPout, matchPout},
			{ExpressionDisgust, matchDisgust},
			{ExpressionConfused, matchConfused},
		},
	}
}

// Classify returns the highest-priority matching expression and its
// confidence. A set without the refined mesh is "no usable signal": neutral
// at confidence 0, no rule evaluated.
func (c *ExpressionClassifier) Classify(s landmark.Set) (Expression, float64) {
	if !s.IsRefinedFace() {
		return ExpressionNeutral, 0
	}
	f := feature.ExtractFace(s)
	for _, r := range c.rules {
		if ok, conf := r.match(f, c.thresholds); ok {
			return r.category, conf
		}
	}
	return ExpressionNeutral, 0
}

// Categories returns the rule bank's categories in priority order,
// excluding the neutral default.
func (c *ExpressionClassifier) Categories() []Expression {
	out := make([]Expression, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.category
	}
	return out
}

func matchScream(f feature.Face, t Thresholds) (bool, float64) {
	if f.MouthOpening > t.MouthOpen*2.5 && f.EyeOpening > t.EyeOpening {
		return true, clamp01(f.MouthOpening / (t.MouthOpen * 2.5))
	}
	return false, 0
}

func matchShock(f feature.Face, t Thresholds) (bool, float64) {
	if f.MouthOpening > t.MouthOpen && f.MouthOpening < t.MouthOpen*2 && f.BrowHeight > t.BrowRaise {
		return true, clamp01(f.BrowHeight / t.BrowRaise)
	}
	return false, 0
}

func matchTongue(f feature.Face, t Thresholds) (bool, float64) {
	// Wide-open mouth with dropped corners and no brow raise reads as a
	// stuck-out tongue at this landmark granularity.
	if f.MouthOpening > t.MouthOpen*1.5 && f.SmileRatio < t.Smile && f.BrowHeight <= t.BrowRaise {
		return true, 0.6
	}
	return false, 0
}

func matchKissy(f feature.Face, t Thresholds) (bool, float64) {
	if f.PuckerRatio > t.PuckerRatio && f.MouthOpening < t.MouthOpen {
		return true, 0.8
	}
	return false, 0
}

func matchHappy(f feature.Face, t Thresholds) (bool, float64) {
	if f.SmileRatio > t.Smile && f.MouthOpening < t.MouthOpen*2 {
		return true, clamp01(f.SmileRatio / (t.Smile * 2))
	}
	return false, 0
}

func matchWink(f feature.Face, t Thresholds) (bool, float64) {
	lo := math.Min(f.LeftEyeOpening, f.RightEyeOpening)
	hi := math.Max(f.LeftEyeOpening, f.RightEyeOpening)
	if hi > t.EyeOpening && lo < hi*t.WinkRatio {
		return true, 0.8
	}
	return false, 0
}

func matchSad(f feature.Face, t Thresholds) (bool, float64) {
	if f.SmileRatio < -t.Smile && f.MouthOpening < t.MouthOpen {
		return true, clamp01(-f.SmileRatio / (t.Smile * 2))
	}
	return false, 0
}

func matchGlare(f feature.Face, t Thresholds) (bool, float64) {
	if f.EyeOpening < t.Squint && f.EyeOpening > t.Sleepy && f.BrowHeight < t.BrowRaise*0.6 {
		return true, 0.6
	}
	return false, 0
}

func matchSuspicious(f feature.Face, t Thresholds) (bool, float64) {
	lo := math.Min(f.LeftEyeOpening, f.RightEyeOpening)
	hi := math.Max(f.LeftEyeOpening, f.RightEyeOpening)
	if hi > 0 && lo < hi*0.75 && f.BrowHeight < t.BrowRaise {
		return true, 0.6
	}
	return false, 0
}

func matchSleepy(f feature.Face, t Thresholds) (bool, float64) {
	if f.EyeOpening < t.Sleepy {
		return true, clamp01(1 - f.EyeOpening/t.Sleepy)
	}
	return false, 0
}

func matchBrowRaise(f feature.Face, t Thresholds) (bool, float64) {
	if f.BrowHeight > t.BrowRaise && f.MouthOpening < t.MouthOpen {
		return true, clamp01(f.BrowHeight / (t.BrowRaise * 1.5))
	}
	return false, 0
}

func matchPout(f feature.Face, t Thresholds) (bool, float64) {
	if f.SmileRatio < -t.Smile*0.5 && f.MouthOpening < t.MouthOpen*0.5 {
		return true, 0.6
	}
	return false, 0
}

func matchDisgust(f feature.Face, t Thresholds) (bool, float64) {
	if f.EyeOpening < t.Squint*1.5 && f.SmileRatio < 0 {
		return true, 0.6
	}
	return false, 0
}

func matchConfused(f feature.Face, t Thresholds) (bool, float64) {
	if math.Abs(f.LeftBrowHeight-f.RightBrowHeight) > t.BrowRaise*0.3 {
		return true, 0.6
	}
	return false, 0
}
