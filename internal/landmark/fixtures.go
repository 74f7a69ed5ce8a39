package landmark

// Synthetic landmark sets for tests and for the mock tracker. Coordinates
// are normalized with y growing downward, hand at the lower center of the
// frame, face centered.

// NeutralFace returns a refined face mesh with open eyes, a closed level
// mouth and resting brows. Unnamed mesh points sit at the face center.
func NeutralFace() Set {
	s := make(Set, FaceRefinedSize)
	for i := range s {
		s[i] = Point{X: 0.5, Y: 0.5}
	}
	s[FaceLeftEyeTop] = Point{X: 0.40, Y: 0.400}
	s[FaceLeftEyeBottom] = Point{X: 0.40, Y: 0.425}
	s[FaceRightEyeTop] = Point{X: 0.60, Y: 0.400}
	s[FaceRightEyeBottom] = Point{X: 0.60, Y: 0.425}
	s[FaceUpperLipTop] = Point{X: 0.50, Y: 0.70}
	s[FaceLowerLipBottom] = Point{X: 0.50, Y: 0.71}
	s[FaceMouthLeft] = Point{X: 0.44, Y: 0.70}
	s[FaceMouthRight] = Point{X: 0.56, Y: 0.70}
	s[FaceLeftBrow] = Point{X: 0.40, Y: 0.35}
	s[FaceRightBrow] = Point{X: 0.60, Y: 0.35}
	return s
}

// HappyFace returns a face with lifted mouth corners.
func HappyFace() Set {
	s := NeutralFace()
	s[FaceMouthLeft].Y = 0.67
	s[FaceMouthRight].Y = 0.67
	return s
}

// baseHand lays out wrist, knuckles and a curled pose for all five digits.
func baseHand() Set {
	s := make(Set, HandSize)
	s[Wrist] = Point{X: 0.50, Y: 0.80}

	s[ThumbCMC] = Point{X: 0.58, Y: 0.75}
	s[ThumbMCP] = Point{X: 0.60, Y: 0.70}
	s[ThumbIP] = Point{X: 0.55, Y: 0.68}
	s[ThumbTip] = Point{X: 0.52, Y: 0.66}

	s[IndexMCP] = Point{X: 0.44, Y: 0.62}
	s[MiddleMCP] = Point{X: 0.48, Y: 0.60}
	s[RingMCP] = Point{X: 0.52, Y: 0.62}
	s[PinkyMCP] = Point{X: 0.56, Y: 0.64}

	curlFinger(s, IndexPIP, 0.43, 0.52)
	curlFinger(s, MiddlePIP, 0.48, 0.50)
	curlFinger(s, RingPIP, 0.53, 0.52)
	curlFinger(s, PinkyPIP, 0.57, 0.55)
	return s
}

// curlFinger places PIP/DIP/tip so the tip rests below the PIP joint.
func curlFinger(s Set, pip int, x, y float64) {
	s[pip] = Point{X: x, Y: y}
	s[pip+1] = Point{X: x - 0.01, Y: y + 0.03}
	s[pip+2] = Point{X: x - 0.02, Y: y + 0.05}
}

// extendFinger places PIP/DIP/tip so the tip sits well above the PIP joint.
func extendFinger(s Set, pip int, x, y float64) {
	s[pip] = Point{X: x, Y: y}
	s[pip+1] = Point{X: x, Y: y - 0.07}
	s[pip+2] = Point{X: x, Y: y - 0.12}
}

// extendThumb swings the thumb well out from the palm center.
func extendThumb(s Set) {
	s[ThumbIP] = Point{X: 0.66, Y: 0.66}
	s[ThumbTip] = Point{X: 0.70, Y: 0.63}
}

// OpenPalmHand returns a hand with all five digits extended (a wave).
func OpenPalmHand() Set {
	s := baseHand()
	extendThumb(s)
	extendFinger(s, IndexPIP, 0.43, 0.52)
	extendFinger(s, MiddlePIP, 0.48, 0.50)
	extendFinger(s, RingPIP, 0.53, 0.52)
	extendFinger(s, PinkyPIP, 0.57, 0.55)
	return s
}

// FistHand returns a hand with every digit curled.
func FistHand() Set {
	return baseHand()
}

// ThumbsUpHand returns a fist with the thumb extended above the wrist.
func ThumbsUpHand() Set {
	s := baseHand()
	extendThumb(s)
	return s
}

// ThumbsDownHand returns a fist with the thumb extended below the wrist.
func ThumbsDownHand() Set {
	s := baseHand()
	s[ThumbIP] = Point{X: 0.66, Y: 0.88}
	s[ThumbTip] = Point{X: 0.70, Y: 0.93}
	return s
}

// PeaceHand returns a hand with index and middle fingers extended.
func PeaceHand() Set {
	s := baseHand()
	extendFinger(s, IndexPIP, 0.43, 0.52)
	extendFinger(s, MiddlePIP, 0.48, 0.50)
	return s
}

// PointingHand returns a hand with only the index finger extended.
func PointingHand() Set {
	s := baseHand()
	extendFinger(s, IndexPIP, 0.43, 0.52)
	return s
}

// MiddleFingerHand returns a hand with only the middle finger extended.
func MiddleFingerHand() Set {
	s := baseHand()
	extendFinger(s, MiddlePIP, 0.48, 0.50)
	return s
}

// RockOnHand returns a hand with index and pinky extended.
func RockOnHand() Set {
	s := baseHand()
	extendFinger(s, IndexPIP, 0.43, 0.52)
	extendFinger(s, PinkyPIP, 0.57, 0.55)
	return s
}

// OKSignHand returns a hand with thumb and index tips pinched together and
// the remaining three fingers extended.
func OKSignHand() Set {
	s := baseHand()
	extendFinger(s, MiddlePIP, 0.48, 0.50)
	extendFinger(s, RingPIP, 0.53, 0.52)
	extendFinger(s, PinkyPIP, 0.57, 0.55)
	s[ThumbTip] = Point{X: 0.44, Y: 0.54}
	s[IndexTip] = Point{X: 0.45, Y: 0.56}
	return s
}
