// Package classify maps landmark sets to discrete expression and gesture
// categories using fixed banks of geometric rules.
package classify

// Thresholds holds the geometric cutoffs the rule banks compare features
// against. All values are unitless ratios in normalized landmark space.
// They are static for a session; hosts override them through configuration,
// never at runtime.
type Thresholds struct {
	EyeOpening  float64 `mapstructure:"eye_opening"`
	MouthOpen   float64 `mapstructure:"mouth_open"`
	Squint      float64 `mapstructure:"squint"`
	Smile       float64 `mapstructure:"smile"`
	BrowRaise   float64 `mapstructure:"brow_raise"`
	WinkRatio   float64 `mapstructure:"wink_ratio"`
	PuckerRatio float64 `mapstructure:"pucker_ratio"`
	Sleepy      float64 `mapstructure:"sleepy"`
}

// DefaultThresholds returns the stock cutoffs, tuned against the refined
// 478-point face mesh at typical webcam framing.
func DefaultThresholds() Thresholds {
	return Thresholds{
		EyeOpening:  0.018,
		MouthOpen:   0.05,
		Squint:      0.012,
		Smile:       0.01,
		BrowRaise:   0.07,
		WinkRatio:   0.45,
		PuckerRatio: 0.9,
		Sleepy:      0.01,
	}
}

// clamp01 clamps a rule's observed/threshold ratio into [0,1] so it can be
// reported as a confidence.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
