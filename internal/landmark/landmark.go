// Package landmark defines the landmark types shared by the tracker and the
// classifiers, along with the MediaPipe index conventions for both meshes.
package landmark

import "math"

// Point is a single tracked landmark in normalized [0,1] image space.
// Y grows downward, matching the image coordinate convention of the tracker.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Set is an ordered sequence of landmarks for one detected face or hand.
// A nil or too-short set means "nothing usable this frame", never an error.
type Set []Point

// Face mesh landmark indices following the MediaPipe FaceMesh convention.
// Only the indices the feature extractor reads are named; the mesh itself
// carries 468 points, or 478 when iris refinement is enabled.
const (
	FaceUpperLipTop    = 13
	FaceLowerLipBottom = 14
	FaceMouthLeft      = 61
	FaceMouthRight     = 291
	FaceLeftEyeTop     = 159
	FaceLeftEyeBottom  = 145
	FaceRightEyeTop    = 386
	FaceRightEyeBottom = 374
	FaceLeftBrow       = 105
	FaceRightBrow      = 334

	// FaceMeshSize is the size of the base face mesh.
	FaceMeshSize = 468
	// FaceRefinedSize is the mesh size with iris refinement landmarks.
	FaceRefinedSize = 478
)

// Hand landmark indices following the MediaPipe hand landmarker convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist     = 0
	ThumbCMC  = 1
	ThumbMCP  = 2
	ThumbIP   = 3
	ThumbTip  = 4
	IndexMCP  = 5
	IndexPIP  = 6
	IndexDIP  = 7
	IndexTip  = 8
	MiddleMCP = 9
	MiddlePIP = 10
	MiddleDIP = 11
	MiddleTip = 12
	RingMCP   = 13
	RingPIP   = 14
	RingDIP   = 15
	RingTip   = 16
	PinkyMCP  = 17
	PinkyPIP  = 18
	PinkyDIP  = 19
	PinkyTip  = 20

	// HandSize is the number of landmarks in a hand set.
	HandSize = 21
)

// At returns the landmark at index i and whether it exists.
func (s Set) At(i int) (Point, bool) {
	if i < 0 || i >= len(s) {
		return Point{}, false
	}
	return s[i], true
}

// Distance returns the Euclidean distance between the landmarks at indices
// a and b. A missing index yields 0: per-frame holes are routine tracker
// noise and must degrade quietly rather than fail.
func (s Set) Distance(a, b int) float64 {
	pa, ok := s.At(a)
	if !ok {
		return 0
	}
	pb, ok := s.At(b)
	if !ok {
		return 0
	}
	dx := pa.X - pb.X
	dy := pa.Y - pb.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// IsFace reports whether the set is a well-formed base face mesh.
func (s Set) IsFace() bool {
	return len(s) >= FaceMeshSize
}

// IsRefinedFace reports whether the set carries the iris refinement
// landmarks the expression rules depend on.
func (s Set) IsRefinedFace() bool {
	return len(s) >= FaceRefinedSize
}

// IsHand reports whether the set is a well-formed hand.
func (s Set) IsHand() bool {
	return len(s) >= HandSize
}
