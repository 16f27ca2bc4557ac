package spiral

// Params holds the values derived from the text length that drive the
// integrator. They are computed once per layout and never mutated.
type Params struct {
	FontSize        float64 `json:"fontSize"`
	StartRadius     float64 `json:"startRadius"`
	PitchMultiplier float64 `json:"pitchMultiplier"`
}

// Length bands of the tuning table.
const (
	shortLen    = 100
	smallLen    = 300
	mediumLen   = 600
	longLen     = 1500
	extendedLen = 2200
	ultraLen    = 4500
)

// Select derives the layout parameters for a text of length n.
//
// The table was tuned by eye against real lyrics; the constants are kept
// literal. The start radius for very long texts grows on screen (95) but
// shrinks in print (70), which is intended.
func Select(n int, printMode bool) Params {
	return Params{
		FontSize:        fontSize(n, printMode),
		StartRadius:     startRadius(n, printMode),
		PitchMultiplier: pitchMultiplier(n),
	}
}

func startRadius(n int, printMode bool) float64 {
	switch {
	case n > ultraLen:
		return pick(printMode, 70, 95)
	case n > extendedLen:
		return pick(printMode, 80, 75)
	default:
		return pick(printMode, 90, 85)
	}
}

// fontSize applies the rules in order; later rules win when they match.
func fontSize(n int, printMode bool) float64 {
	size := baseFontSize(float64(n))

	if n > ultraLen {
		size = pick(printMode, 7, 6)
	}
	if n > extendedLen && n <= ultraLen {
		size = max(9, size)
	}
	if n < shortLen {
		size = 34
	}
	return size
}

// baseFontSize interpolates linearly between the anchor points
// 28 @ 300, 18 @ 600, 12 @ 1500 and shrinks by 4 every 3000 characters
// after that, never below 8.
func baseFontSize(n float64) float64 {
	switch {
	case n < smallLen:
		return 28
	case n < mediumLen:
		return 28 - ((n-smallLen)/(mediumLen-smallLen))*(28-18)
	case n < longLen:
		return 18 - ((n-mediumLen)/(longLen-mediumLen))*(18-12)
	default:
		return max(8, 12-((n-longLen)/3000)*4)
	}
}

func pitchMultiplier(n int) float64 {
	switch {
	case n > extendedLen && n <= ultraLen:
		return 1.55
	case n > ultraLen:
		return 1.35
	case n < mediumLen:
		return 2.4
	default:
		return 1.9
	}
}

func pick(printMode bool, inPrint, onScreen float64) float64 {
	if printMode {
		return inPrint
	}
	return onScreen
}
