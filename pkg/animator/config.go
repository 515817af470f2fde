package animator

import "math"

// Config holds the animator's tunable parameters. The numbers are tuned by
// eye; treat them as defaults, not as derived constants.
//
// Smoothing factors are per-frame blend amounts at ReferenceRate. At other
// frame rates the factor is rescaled by the frame delta so motion keeps the
// same speed.
type Config struct {
	ReferenceRate float64 // Hz the smoothing factors are tuned for
	SnapEpsilon   float64 // Smoothed values within this of target snap onto it

	// Placement
	Bands         Bands
	RootSmoothing float64 // Root position blend per frame
	YawSmoothing  float64 // Root yaw blend per frame
	PointerLean   float64 // Extra root yaw per unit pointer x

	// Gaze
	ViewWidth     float64 // Scene units spanned by pointer x ∈ [-1, 1]
	ViewHeight    float64 // Scene units spanned by pointer y ∈ [-1, 1]
	LookDistance  float64 // Z of the look-at plane
	LookSmoothing float64 // Look-at point blend per frame

	// Gaze activity and iris micro-tracking
	SpeedSmoothing  float64 // Pointer speed blend per frame
	ActiveThreshold float64 // Smoothed speed (units/s) that engages the gaze
	QuietPeriod     float64 // Seconds without qualifying movement before disengaging
	IrisActiveRange float64 // Iris offset per unit pointer while engaged
	IrisActiveBlend float64 // Iris blend per frame while engaged
	IrisRestBlend   float64 // Iris blend toward center while at rest

	// Idle
	BreathRate    float64 // Radians per second
	BreathDepth   float64 // Torso scale amplitude
	BobScale      float64 // Root bob relative to breath
	LegSwayRate   float64 // Radians per second
	LegSwayAmount float64 // Leg pitch amplitude

	// Arms
	ArmSwayRate   float64 // Radians per second
	ArmSwayAmount float64 // Upper arm idle pitch amplitude
	ArmPhase      float64 // Phase offset of the right arm
	ArmRestRoll   float64 // Outward rest roll of the upper arms
	ArmReach      float64 // Upper arm roll per unit pointer x
	ArmReachLimit float64 // Clamp of the reactive reach term
	ElbowRest     float64 // Rest flexion of the lower arm
	ElbowIdle     float64 // Idle flexion amplitude
	ElbowFlex     float64 // Flexion added per unit reach
	HandIdle      float64 // Hand idle rotation amplitude
	HandReach     float64 // Hand pitch per unit reach
	HandForward   float64 // Forward hand offset at full reach
	ArmSmoothing  float64 // Reach/hand blend per frame

	// Blink
	FirstBlink       float64 // Seconds before the first blink
	BlinkMin         float64 // Shortest closed time (s)
	BlinkMax         float64 // Longest closed time (s)
	BlinkIntervalMin float64 // Shortest time between blink starts (s)
	BlinkIntervalMax float64 // Longest time between blink starts (s)
	EyelidClosed     float64 // Openness target while closed
	EyelidSmoothing  float64 // Eyelid blend per frame
}

// DefaultConfig returns the tuning used on the site.
func DefaultConfig() Config {
	// Camera at z=5 with a 45° vertical FOV sees ~4.14 units at z=0.
	viewH := 2 * 5 * math.Tan(22.5*math.Pi/180)

	return Config{
		ReferenceRate: 60,
		SnapEpsilon:   1e-6,

		Bands:         DefaultBands(),
		RootSmoothing: 0.05,
		YawSmoothing:  0.05,
		PointerLean:   0.1,

		ViewWidth:     viewH * 16 / 9,
		ViewHeight:    viewH,
		LookDistance:  5,
		LookSmoothing: 0.1,

		SpeedSmoothing:  0.3,
		ActiveThreshold: 0.6,
		QuietPeriod:     0.3,
		IrisActiveRange: 0.045,
		IrisActiveBlend: 0.35,
		IrisRestBlend:   0.06,

		BreathRate:    2,
		BreathDepth:   0.02,
		BobScale:      0.1,
		LegSwayRate:   1.6,
		LegSwayAmount: 0.06,

		ArmSwayRate:   1.2,
		ArmSwayAmount: 0.08,
		ArmPhase:      0.9,
		ArmRestRoll:   0.15,
		ArmReach:      0.5,
		ArmReachLimit: 0.35,
		ElbowRest:     0.15,
		ElbowIdle:     0.05,
		ElbowFlex:     0.6,
		HandIdle:      0.1,
		HandReach:     0.3,
		HandForward:   0.08,
		ArmSmoothing:  0.12,

		FirstBlink:       3,
		BlinkMin:         0.12,
		BlinkMax:         0.15,
		BlinkIntervalMin: 2,
		BlinkIntervalMax: 5,
		EyelidClosed:     0.1,
		EyelidSmoothing:  0.3,
	}
}

// CalmConfig returns slower, smaller motion.
func CalmConfig() Config {
	cfg := DefaultConfig()
	cfg.RootSmoothing = 0.03
	cfg.YawSmoothing = 0.03
	cfg.LookSmoothing = 0.06
	cfg.BreathDepth = 0.012
	cfg.LegSwayAmount = 0.03
	cfg.ArmSwayAmount = 0.04
	cfg.IrisActiveBlend = 0.2
	return cfg
}

// LivelyConfig returns faster, larger motion.
func LivelyConfig() Config {
	cfg := DefaultConfig()
	cfg.RootSmoothing = 0.08
	cfg.YawSmoothing = 0.08
	cfg.LookSmoothing = 0.18
	cfg.BreathDepth = 0.03
	cfg.LegSwayAmount = 0.1
	cfg.ArmSwayAmount = 0.14
	cfg.ArmReach = 0.7
	cfg.IrisActiveBlend = 0.5
	return cfg
}

// ConfigPreset returns a configuration by name ("default", "calm", "lively").
func ConfigPreset(name string) (Config, bool) {
	switch name {
	case "", "default":
		return DefaultConfig(), true
	case "calm":
		return CalmConfig(), true
	case "lively":
		return LivelyConfig(), true
	default:
		return Config{}, false
	}
}
