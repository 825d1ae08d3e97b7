package trust

import (
	"math"
	"sort"
	"time"

	"hydropoints/internal/model"
)

// Feature vector keys. The set is a stable contract: a future learned
// aggregator consumes exactly these names.
const (
	FeatVolatility      = "volatility"
	FeatMicroVariance   = "micro_variance"
	FeatFlatline        = "flatline"
	FeatSuddenDrop      = "sudden_drop"
	FeatSuddenDropCount = "sudden_drop_count"
	FeatWeekendWeekday  = "weekend_weekday"
	FeatMovingAvgDev    = "moving_avg_deviation"
	FeatHouseholdFit    = "household_fit"
	FeatCrossSource     = "cross_source"
	FeatLoggingCadence  = "logging_cadence"
	FeatBulkEditCount   = "bulk_edit_count"
)

// FeatureNames lists every key ExtractFeatures emits, in emission order
var FeatureNames = []string{
	FeatVolatility,
	FeatMicroVariance,
	FeatFlatline,
	FeatSuddenDrop,
	FeatSuddenDropCount,
	FeatWeekendWeekday,
	FeatMovingAvgDev,
	FeatHouseholdFit,
	FeatCrossSource,
	FeatLoggingCadence,
	FeatBulkEditCount,
}

// neutralScore is used when a feature has too few samples to judge either way
const neutralScore = 70

// dayTotal is one calendar day collapsed from raw entries
type dayTotal struct {
	Day     time.Time
	Total   float64
	Entries int
}

// ExtractFeatures turns the raw window into the fixed feature vector.
// Callers must have applied the insufficient-data gate already; sequences
// shorter than Thresholds.MinLogEntries are never passed in.
func ExtractFeatures(t Thresholds, logs []model.DailyLogEntry, scans []model.ExternalScan, household model.HouseholdContext) model.FeatureVector {
	days := dailyTotals(logs)
	amounts := make([]float64, len(days))
	for i, d := range days {
		amounts[i] = d.Total
	}

	dropCount := suddenDropCount(t, amounts)
	bulkDays := bulkEditDayCount(t, days)

	fv := model.FeatureVector{
		FeatVolatility:      volatilityScore(t, amounts),
		FeatMicroVariance:   microVarianceScore(t, amounts),
		FeatFlatline:        flatlineScore(t, amounts),
		FeatSuddenDrop:      suddenDropScore(t, dropCount),
		FeatSuddenDropCount: float64(dropCount),
		FeatWeekendWeekday:  weekendWeekdayScore(t, days),
		FeatMovingAvgDev:    movingAvgDeviationScore(t, amounts),
		FeatHouseholdFit:    householdFitScore(t, mean(amounts), household),
		FeatCrossSource:     crossSourceScore(t, mean(amounts), scans),
		FeatLoggingCadence:  cadenceScore(t, len(logs)),
		FeatBulkEditCount:   float64(bulkDays),
	}
	return fv
}

// dailyTotals collapses raw entries into ascending per-day totals.
// Statistical features run over these; cadence and bulk-edit detection
// still see the raw entry counts.
func dailyTotals(logs []model.DailyLogEntry) []dayTotal {
	byDay := make(map[time.Time]*dayTotal)
	for _, entry := range logs {
		day := entry.Date.Truncate(24 * time.Hour)
		if cur, ok := byDay[day]; ok {
			cur.Total += entry.Amount
			cur.Entries++
		} else {
			byDay[day] = &dayTotal{Day: day, Total: entry.Amount, Entries: 1}
		}
	}

	days := make([]dayTotal, 0, len(byDay))
	for _, d := range byDay {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day.Before(days[j].Day) })
	return days
}

// volatilityScore penalizes both too little and too much day-to-day variation
func volatilityScore(t Thresholds, amounts []float64) float64 {
	return scoreCV(t, cvPercent(amounts))
}

// flatlineScore reuses the CV breakpoints but is judged only once enough
// samples exist to call sustained near-zero variation a pattern.
func flatlineScore(t Thresholds, amounts []float64) float64 {
	if len(amounts) < t.FlatlineMinN {
		return neutralScore
	}
	return scoreCV(t, cvPercent(amounts))
}

func scoreCV(t Thresholds, cv float64) float64 {
	switch {
	case cv < t.CVTooFlat:
		return 10
	case cv < t.CVVeryLow:
		return 30
	case cv < t.CVLow:
		return 60
	case cv > t.CVExtreme:
		return 50
	default:
		return 100
	}
}

// microVarianceScore penalizes exact-value repetition
func microVarianceScore(t Thresholds, amounts []float64) float64 {
	if len(amounts) == 0 {
		return neutralScore
	}

	counts := make(map[float64]int)
	for _, a := range amounts {
		counts[a]++
	}
	top := 0
	for _, c := range counts {
		if c > top {
			top = c
		}
	}
	topShare := float64(top) / float64(len(amounts))
	uniqueRatio := float64(len(counts)) / float64(len(amounts))

	switch {
	case topShare > t.RepeatRatioHigh:
		return 20
	case topShare > t.RepeatRatioMid:
		return 50
	case uniqueRatio < t.UniqueRatioLow:
		return 40
	default:
		return math.Min(100, 50+uniqueRatio*50)
	}
}

// suddenDropCount counts transitions from a spike (above mean by
// DropHighFactor) straight into a near-zero value (below mean by
// DropLowFactor) — the signature of deleting entries after a reward.
func suddenDropCount(t Thresholds, amounts []float64) int {
	if len(amounts) < 2 {
		return 0
	}
	m := mean(amounts)
	if m == 0 {
		return 0
	}
	count := 0
	for i := 1; i < len(amounts); i++ {
		if amounts[i-1] > t.DropHighFactor*m && amounts[i] < t.DropLowFactor*m {
			count++
		}
	}
	return count
}

func suddenDropScore(t Thresholds, count int) float64 {
	switch {
	case count > t.DropCountBad:
		return 30
	case count >= 1:
		return 70
	default:
		return 100
	}
}

// weekendWeekdayScore compares average intake on weekend vs weekday days.
// Real habits differ a little between the two; identical averages are
// mildly suspicious, extreme gaps more so.
func weekendWeekdayScore(t Thresholds, days []dayTotal) float64 {
	if len(days) < t.WeekendMinN {
		return neutralScore
	}

	var weekendSum, weekdaySum float64
	var weekendN, weekdayN int
	for _, d := range days {
		wd := d.Day.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			weekendSum += d.Total
			weekendN++
		} else {
			weekdaySum += d.Total
			weekdayN++
		}
	}
	if weekendN == 0 || weekdayN == 0 {
		return neutralScore
	}

	weekendAvg := weekendSum / float64(weekendN)
	weekdayAvg := weekdaySum / float64(weekdayN)
	if weekdayAvg == 0 {
		return 60
	}

	diff := math.Abs(weekendAvg-weekdayAvg) / weekdayAvg
	switch {
	case diff < t.WeekendDiffUniform:
		return 70
	case diff < t.WeekendDiffNatural:
		return 100
	case diff > t.WeekendDiffExtreme:
		return 60
	default:
		return 80
	}
}

// movingAvgDeviationScore measures how far each day strays from its 7-day
// trailing average. Staying glued to the moving average is a generator
// artifact, not a habit.
func movingAvgDeviationScore(t Thresholds, amounts []float64) float64 {
	if len(amounts) < t.MovingAvgMinN {
		return neutralScore
	}

	var devSum float64
	var devN int
	for i := 1; i < len(amounts); i++ {
		start := i - t.MovingAvgWindow
		if start < 0 {
			start = 0
		}
		ma := mean(amounts[start:i])
		if ma == 0 {
			continue
		}
		devSum += math.Abs(amounts[i]-ma) / ma
		devN++
	}
	if devN == 0 {
		return neutralScore
	}

	avgDev := devSum / float64(devN)
	switch {
	case avgDev < t.MovingAvgTooFlat:
		return 50
	case avgDev < t.MovingAvgConsistent:
		return 70
	case avgDev > t.MovingAvgErratic:
		return 60
	default:
		return 100
	}
}

// householdFitScore compares average daily intake against the expected
// per-person range scaled by household size.
func householdFitScore(t Thresholds, avgDaily float64, household model.HouseholdContext) float64 {
	size := household.Size
	if size < 1 {
		size = 1
	}
	min := t.PerPersonMin * float64(size)
	max := t.PerPersonMax * float64(size)
	ideal := t.PerPersonIdeal * float64(size)

	if avgDaily < min {
		ratio := avgDaily / min
		switch {
		case ratio < 0.25:
			return 10
		case ratio < 0.5:
			return 30
		default:
			return 50
		}
	}
	if avgDaily > max {
		if avgDaily > 1.5*max {
			return 60
		}
		return 80
	}

	// Within range: 70 at the edges, 100 at the ideal
	span := ideal - min
	if avgDaily > ideal {
		span = max - ideal
	}
	if span == 0 {
		return 100
	}
	return 100 - 30*math.Abs(avgDaily-ideal)/span
}

// crossSourceScore checks the logged mean against the scan-derived daily
// average. Logging a trickle while scanning bottles all week is the
// strongest single fabrication tell we have.
func crossSourceScore(t Thresholds, loggedMean float64, scans []model.ExternalScan) float64 {
	if len(scans) == 0 {
		return 100
	}

	scanDays := make(map[time.Time]bool)
	var scanTotal float64
	for _, s := range scans {
		scanDays[s.ScannedAt.Truncate(24*time.Hour)] = true
		scanTotal += s.DeclaredAmount
	}
	scanAvg := scanTotal / float64(len(scanDays))

	switch {
	case loggedMean < t.ContradictionLowLogged && scanAvg > t.ContradictionHighScan:
		return 30
	case scanAvg > t.ContradictionScanFloor && loggedMean < scanAvg/2:
		return 50
	default:
		return 100
	}
}

// cadenceScore rates raw entries per week over the window
func cadenceScore(t Thresholds, entryCount int) float64 {
	weeks := float64(t.WindowDays) / 7.0
	if weeks == 0 {
		return neutralScore
	}
	perWeek := float64(entryCount) / weeks

	switch {
	case perWeek >= t.CadenceIdealMin && perWeek <= t.CadenceIdealMax:
		return 100
	case perWeek < t.CadenceSparse:
		return 60
	case perWeek < t.CadenceIdealMin:
		return 80
	case perWeek > t.CadenceBulk:
		return 50
	default:
		return 70
	}
}

// bulkEditDayCount counts distinct days with more raw entries than a person
// plausibly records by hand in one day.
func bulkEditDayCount(t Thresholds, days []dayTotal) int {
	count := 0
	for _, d := range days {
		if d.Entries > t.BulkEditEntriesPerDay {
			count++
		}
	}
	return count
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// cvPercent is the coefficient of variation as a percentage
func cvPercent(values []float64) float64 {
	m := mean(values)
	if m == 0 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	sd := math.Sqrt(sq / float64(len(values)))
	return sd / m * 100
}
