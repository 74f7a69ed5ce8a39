package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayusman/abhinaya/internal/landmark"
)

func TestExtractFaceNeutral(t *testing.T) {
	f := ExtractFace(landmark.NeutralFace())

	assert.InDelta(t, 0.025, f.LeftEyeOpening, 1e-9)
	assert.InDelta(t, 0.025, f.RightEyeOpening, 1e-9)
	assert.InDelta(t, 0.025, f.EyeOpening, 1e-9)
	assert.InDelta(t, 0.01, f.MouthOpening, 1e-9)
	assert.InDelta(t, 0.12, f.MouthWidth, 1e-9)
	assert.InDelta(t, 0.0, f.SmileRatio, 1e-9)
	assert.InDelta(t, 0.01/0.12, f.PuckerRatio, 1e-9)
	assert.InDelta(t, 0.05, f.LeftBrowHeight, 1e-9)
	assert.InDelta(t, 0.05, f.RightBrowHeight, 1e-9)
	assert.InDelta(t, 0.05, f.BrowHeight, 1e-9)
}

func TestSmileRatioSign(t *testing.T) {
	// Y grows downward: lifted corners sit at smaller y than the upper lip,
	// so a smile reads positive and drooped corners read negative.
	happy := ExtractFace(landmark.HappyFace())
	assert.InDelta(t, 0.03, happy.SmileRatio, 1e-9)

	s := landmark.NeutralFace()
	s[landmark.FaceMouthLeft].Y = 0.73
	s[landmark.FaceMouthRight].Y = 0.73
	sad := ExtractFace(s)
	assert.InDelta(t, -0.03, sad.SmileRatio, 1e-9)
}

func TestExtractFaceEmptySet(t *testing.T) {
	// Missing landmarks degrade every feature to zero.
	assert.Equal(t, Face{}, ExtractFace(nil))
}

func TestPuckerRatioZeroWidth(t *testing.T) {
	// All landmarks coincident: zero mouth width must not divide by zero.
	s := make(landmark.Set, landmark.FaceRefinedSize)
	for i := range s {
		s[i] = landmark.Point{X: 0.5, Y: 0.5}
	}
	f := ExtractFace(s)
	assert.Zero(t, f.MouthWidth)
	assert.Zero(t, f.PuckerRatio)
}

func TestBrowHeightGrowsWhenRaised(t *testing.T) {
	s := landmark.NeutralFace()
	s[landmark.FaceLeftBrow].Y = 0.30
	s[landmark.FaceRightBrow].Y = 0.30

	f := ExtractFace(s)
	assert.InDelta(t, 0.10, f.BrowHeight, 1e-9)
	assert.Greater(t, f.BrowHeight, ExtractFace(landmark.NeutralFace()).BrowHeight)
}
