package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayusman/abhinaya/internal/landmark"
)

func TestClassifyShortFaceSet(t *testing.T) {
	c := NewExpressionClassifier(DefaultThresholds())

	// Anything below the refined mesh size carries no usable signal.
	for _, s := range []landmark.Set{
		nil,
		make(landmark.Set, 10),
		landmark.NeutralFace()[:landmark.FaceMeshSize],
	} {
		expr, conf := c.Classify(s)
		assert.Equal(t, ExpressionNeutral, expr)
		assert.Zero(t, conf)
	}
}

func TestClassifyNeutralFace(t *testing.T) {
	c := NewExpressionClassifier(DefaultThresholds())

	expr, conf := c.Classify(landmark.NeutralFace())
	assert.Equal(t, ExpressionNeutral, expr)
	assert.Zero(t, conf)
}

func TestClassifyExpressions(t *testing.T) {
	c := NewExpressionClassifier(DefaultThresholds())

	tests := []struct {
		name   string
		mutate func(s landmark.Set)
		want   Expression
	}{
		{
			name: "scream",
			mutate: func(s landmark.Set) {
				s[landmark.FaceUpperLipTop].Y = 0.60
				s[landmark.FaceLowerLipBottom].Y = 0.74
			},
			want: ExpressionScream,
		},
		{
			name: "shock",
			mutate: func(s landmark.Set) {
				s[landmark.FaceUpperLipTop].Y = 0.66
				s[landmark.FaceLowerLipBottom].Y = 0.73
				s[landmark.FaceLeftBrow].Y = 0.32
				s[landmark.FaceRightBrow].Y = 0.32
			},
			want: ExpressionShock,
		},
		{
			name: "tongue",
			mutate: func(s landmark.Set) {
				s[landmark.FaceUpperLipTop].Y = 0.64
				s[landmark.FaceLowerLipBottom].Y = 0.73
			},
			want: ExpressionTongue,
		},
		{
			name: "kissy",
			mutate: func(s landmark.Set) {
				s[landmark.FaceMouthLeft] = landmark.Point{X: 0.48, Y: 0.70}
				s[landmark.FaceMouthRight] = landmark.Point{X: 0.52, Y: 0.70}
				s[landmark.FaceLowerLipBottom].Y = 0.7388
			},
			want: ExpressionKissy,
		},
		{
			name: "happy",
			mutate: func(s landmark.Set) {
				s[landmark.FaceMouthLeft].Y = 0.67
				s[landmark.FaceMouthRight].Y = 0.67
			},
			want: ExpressionHappy,
		},
		{
			name: "wink",
			mutate: func(s landmark.Set) {
				s[landmark.FaceLeftEyeBottom].Y = 0.402
			},
			want: ExpressionWink,
		},
		{
			name: "sad",
			mutate: func(s landmark.Set) {
				s[landmark.FaceMouthLeft].Y = 0.73
				s[landmark.FaceMouthRight].Y = 0.73
			},
			want: ExpressionSad,
		},
		{
			name: "glare",
			mutate: func(s landmark.Set) {
				s[landmark.FaceLeftEyeBottom].Y = 0.411
				s[landmark.FaceRightEyeBottom].Y = 0.411
				s[landmark.FaceLeftBrow].Y = 0.37
				s[landmark.FaceRightBrow].Y = 0.37
			},
			want: ExpressionGlare,
		},
		{
			name: "suspicious",
			mutate: func(s landmark.Set) {
				s[landmark.FaceLeftEyeBottom].Y = 0.412
			},
			want: ExpressionSuspicious,
		},
		{
			name: "sleepy",
			mutate: func(s landmark.Set) {
				s[landmark.FaceLeftEyeBottom].Y = 0.405
				s[landmark.FaceRightEyeBottom].Y = 0.405
			},
			want: ExpressionSleepy,
		},
		{
			name: "eyebrow raise",
			mutate: func(s landmark.Set) {
				s[landmark.FaceLeftBrow].Y = 0.30
				s[landmark.FaceRightBrow].Y = 0.30
			},
			want: ExpressionBrowRaise,
		},
		{
			name: "pout",
			mutate: func(s landmark.Set) {
				s[landmark.FaceMouthLeft].Y = 0.706
				s[landmark.FaceMouthRight].Y = 0.706
			},
			want: ExpressionPout,
		},
		{
			name: "disgust",
			mutate: func(s landmark.Set) {
				s[landmark.FaceLeftEyeBottom].Y = 0.415
				s[landmark.FaceRightEyeBottom].Y = 0.415
				s[landmark.FaceMouthLeft].Y = 0.706
				s[landmark.FaceMouthRight].Y = 0.706
				s[landmark.FaceLowerLipBottom].Y = 0.73
			},
			want: ExpressionDisgust,
		},
		{
			name: "confused",
			mutate: func(s landmark.Set) {
				s[landmark.FaceLeftBrow].Y = 0.32
				s[landmark.FaceRightBrow].Y = 0.36
			},
			want: ExpressionConfused,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := landmark.NeutralFace()
			tt.mutate(s)

			expr, conf := c.Classify(s)
			assert.Equal(t, tt.want, expr)
			assert.Greater(t, conf, 0.0)
			assert.LessOrEqual(t, conf, 1.0)
		})
	}
}

func TestScreamOutranksTongue(t *testing.T) {
	c := NewExpressionClassifier(DefaultThresholds())

	// A wide-open mouth with drooped corners satisfies both the scream and
	// tongue rules; priority order resolves it to scream.
	s := landmark.NeutralFace()
	s[landmark.FaceUpperLipTop].Y = 0.60
	s[landmark.FaceLowerLipBottom].Y = 0.74

	expr, conf := c.Classify(s)
	assert.Equal(t, ExpressionScream, expr)
	assert.InDelta(t, 1.0, conf, 1e-9)
}

func TestExpressionConfidences(t *testing.T) {
	c := NewExpressionClassifier(DefaultThresholds())

	happy, conf := c.Classify(landmark.HappyFace())
	assert.Equal(t, ExpressionHappy, happy)
	assert.InDelta(t, 1.0, conf, 1e-9)

	s := landmark.NeutralFace()
	s[landmark.FaceLeftEyeBottom].Y = 0.405
	s[landmark.FaceRightEyeBottom].Y = 0.405
	sleepy, conf := c.Classify(s)
	assert.Equal(t, ExpressionSleepy, sleepy)
	assert.InDelta(t, 0.5, conf, 1e-9)
}

func TestExpressionCategoriesOrder(t *testing.T) {
	c := NewExpressionClassifier(DefaultThresholds())

	cats := c.Categories()
	assert.Len(t, cats, 14)
	assert.Equal(t, ExpressionScream, cats[0])
	assert.Equal(t, ExpressionConfused, cats[len(cats)-1])
	assert.NotContains(t, cats, ExpressionNeutral)
}
