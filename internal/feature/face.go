// Package feature computes scalar geometric features from landmark sets.
// Everything here is a pure function of its input; the classifiers own all
// thresholding decisions.
package feature

import "github.com/ayusman/abhinaya/internal/landmark"

// Face bundles the scalar measurements the expression rules compare against
// thresholds. All values are in normalized image units.
type Face struct {
	LeftEyeOpening  float64
	RightEyeOpening float64
	EyeOpening      float64
	MouthOpening    float64
	MouthWidth      float64
	SmileRatio      float64
	PuckerRatio     float64
	LeftBrowHeight  float64
	RightBrowHeight float64
	BrowHeight      float64
}

// ExtractFace measures a face landmark set. Missing landmarks contribute 0
// to the affected features (see landmark.Set.Distance).
func ExtractFace(s landmark.Set) Face {
	f := Face{
		LeftEyeOpening:  s.Distance(landmark.FaceLeftEyeTop, landmark.FaceLeftEyeBottom),
		RightEyeOpening: s.Distance(landmark.FaceRightEyeTop, landmark.FaceRightEyeBottom),
		MouthOpening:    s.Distance(landmark.FaceUpperLipTop, landmark.FaceLowerLipBottom),
		MouthWidth:      s.Distance(landmark.FaceMouthLeft, landmark.FaceMouthRight),
	}
	f.EyeOpening = (f.LeftEyeOpening + f.RightEyeOpening) / 2

	// Smile ratio: upper-lip y minus the average mouth-corner y. Y grows
	// downward, so lifted corners sit at smaller y and the ratio goes
	// positive. The sign is the decisive signal for happy vs sad/pout and
	// must not be "fixed" to the intuitive reading.
	lip, okLip := s.At(landmark.FaceUpperLipTop)
	left, okL := s.At(landmark.FaceMouthLeft)
	right, okR := s.At(landmark.FaceMouthRight)
	if okLip && okL && okR {
		f.SmileRatio = lip.Y - (left.Y+right.Y)/2
	}

	if f.MouthWidth > 0 {
		f.PuckerRatio = f.MouthOpening / f.MouthWidth
	}

	f.LeftBrowHeight = browHeight(s, landmark.FaceLeftEyeTop, landmark.FaceLeftBrow)
	f.RightBrowHeight = browHeight(s, landmark.FaceRightEyeTop, landmark.FaceRightBrow)
	f.BrowHeight = (f.LeftBrowHeight + f.RightBrowHeight) / 2

	return f
}

// browHeight is the vertical gap between an eye top and the brow above it.
// A raised brow moves up (smaller y), so the gap grows.
func browHeight(s landmark.Set, eyeTop, brow int) float64 {
	e, okE := s.At(eyeTop)
	b, okB := s.At(brow)
	if !okE || !okB {
		return 0
	}
	return e.Y - b.Y
}
