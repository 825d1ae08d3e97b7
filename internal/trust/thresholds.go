package trust

// ThresholdsVersion identifies the numeric contract in effect. Bump it
// whenever any value in DefaultThresholds changes so persisted results
// can be told apart from results computed under older tunings.
const ThresholdsVersion = "v1"

// Thresholds holds every numeric contract of the scoring pipeline in one
// place. Both call paths (interactive and batch) receive the same value,
// so no threshold can drift between them.
type Thresholds struct {
	// Pipeline gate
	MinLogEntries int // Below this the pipeline short-circuits to neutral
	WindowDays    int // Rolling analysis window

	// Volatility / flatline CV% breakpoints
	CVTooFlat    float64 // CV below this scores 10
	CVVeryLow    float64 // CV below this scores 30
	CVLow        float64 // CV below this scores 60
	CVExtreme    float64 // CV above this scores 50
	FlatlineMinN int     // Samples required before flatline is judged

	// Micro-variance
	RepeatRatioHigh float64 // Most frequent value share scoring 20
	RepeatRatioMid  float64 // Most frequent value share scoring 50
	UniqueRatioLow  float64 // Unique-value ratio below this scores 40

	// Sudden drops
	DropHighFactor float64 // Previous value must exceed mean by this factor
	DropLowFactor  float64 // Current value must fall below mean by this factor
	DropCountBad   int     // More drops than this scores 30

	// Weekend/weekday split
	WeekendMinN        int
	WeekendDiffUniform float64 // Relative difference below this scores 70
	WeekendDiffNatural float64 // Relative difference below this scores 100
	WeekendDiffExtreme float64 // Relative difference above this scores 60

	// Moving-average deviation (7-day trailing)
	MovingAvgWindow     int
	MovingAvgMinN       int
	MovingAvgTooFlat    float64 // Average deviation below this scores 50
	MovingAvgConsistent float64 // Average deviation below this scores 70
	MovingAvgErratic    float64 // Average deviation above this scores 60

	// Household-normalized fit (milliliters per person per day)
	PerPersonMin   float64
	PerPersonMax   float64
	PerPersonIdeal float64

	// Cross-source contradiction
	ContradictionLowLogged float64 // Logged mean below this is suspicious...
	ContradictionHighScan  float64 // ...when scan-derived average exceeds this
	ContradictionScanFloor float64 // Scan average must exceed this for the half rule

	// Logging cadence (entries per week)
	CadenceIdealMin float64
	CadenceIdealMax float64
	CadenceSparse   float64 // Below this scores 60
	CadenceBulk     float64 // Above this scores 50 (possible bulk fabrication)

	// Bulk edits
	BulkEditEntriesPerDay int     // More entries than this on one day marks the day
	BulkEditFlagCount     int     // More marked days than this raises the flag
	BulkEditPenalty       float64 // Points subtracted per marked day
	BulkEditPenaltyCap    float64

	// Classification
	HighScoreMin     int
	MediumScoreMin   int
	MultiplierHigh   float64
	MultiplierMedium float64
	MultiplierLow    float64

	// Flag thresholds (signal value below these raises the flag)
	FlagMicroVariance float64
	FlagHousehold     float64
	FlagContradiction float64
	FlagFlatline      float64

	// Governance
	BaseDailyPoints  int
	BaseWeeklyPoints int
	NudgeScoreBelow  int // Medium-level nudge cutoff

	// Staleness
	StalenessHours int
}

// DefaultThresholds returns the contracted v1 tuning.
// The flatline and sudden-drop values are provisional pending calibration
// against labeled data; see DESIGN.md.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinLogEntries: 5,
		WindowDays:    30,

		CVTooFlat:    5,
		CVVeryLow:    10,
		CVLow:        15,
		CVExtreme:    150,
		FlatlineMinN: 7,

		RepeatRatioHigh: 0.7,
		RepeatRatioMid:  0.5,
		UniqueRatioLow:  0.3,

		DropHighFactor: 1.5,
		DropLowFactor:  0.2,
		DropCountBad:   2,

		WeekendMinN:        7,
		WeekendDiffUniform: 0.05,
		WeekendDiffNatural: 0.30,
		WeekendDiffExtreme: 0.80,

		MovingAvgWindow:     7,
		MovingAvgMinN:       8,
		MovingAvgTooFlat:    0.05,
		MovingAvgConsistent: 0.10,
		MovingAvgErratic:    0.80,

		PerPersonMin:   5,
		PerPersonMax:   40,
		PerPersonIdeal: 20,

		ContradictionLowLogged: 15,
		ContradictionHighScan:  30,
		ContradictionScanFloor: 20,

		CadenceIdealMin: 5,
		CadenceIdealMax: 14,
		CadenceSparse:   2,
		CadenceBulk:     21,

		BulkEditEntriesPerDay: 5,
		BulkEditFlagCount:     2,
		BulkEditPenalty:       5,
		BulkEditPenaltyCap:    20,

		HighScoreMin:     75,
		MediumScoreMin:   45,
		MultiplierHigh:   1.2,
		MultiplierMedium: 1.0,
		MultiplierLow:    0.5,

		FlagMicroVariance: 30,
		FlagHousehold:     30,
		FlagContradiction: 40,
		FlagFlatline:      30,

		BaseDailyPoints:  100,
		BaseWeeklyPoints: 500,
		NudgeScoreBelow:  55,

		StalenessHours: 24,
	}
}
