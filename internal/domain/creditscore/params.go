package creditscore

// Params holds every constant of the scoring heuristic. This is a simple
// non-regulatory model; values are tuned to the portal's historic output.
type Params struct {
	Base    float64
	Min     int
	Max     int
	Default int

	Nudge       int
	LatePenalty int

	// payment history
	RecentMonths  int
	RecentWeight  float64
	MidMonths     int
	MidWeight     float64
	OldWeight     float64
	OnTimeWeight  float64
	LateWeight    float64
	HistoryScale  float64
	HistoryCenter float64

	// utilization
	UtilizationScale  float64
	UtilizationCenter float64

	// history length
	LengthMonthsCap int
	LengthScale     float64
	LengthTxPoints  float64
	LengthTxCap     float64
	LengthCenter    float64

	// credit mix
	MixTypeCount     int
	MixScale         float64
	MixPaidThreshold float64
	MixPaidPoints    float64
	MixPaidCap       float64
	MixCenter        float64
}

func DefaultParams() Params {
	return Params{
		Base:    700,
		Min:     300,
		Max:     900,
		Default: 750,

		Nudge:       5,
		LatePenalty: 20,

		RecentMonths:  3,
		RecentWeight:  2,
		MidMonths:     6,
		MidWeight:     1.5,
		OldWeight:     1,
		OnTimeWeight:  1,
		LateWeight:    -0.5,
		HistoryScale:  350,
		HistoryCenter: 175,

		UtilizationScale:  300,
		UtilizationCenter: 150,

		LengthMonthsCap: 24,
		LengthScale:     100,
		LengthTxPoints:  5,
		LengthTxCap:     50,
		LengthCenter:    75,

		MixTypeCount:     4,
		MixScale:         100,
		MixPaidThreshold: 0.15,
		MixPaidPoints:    50,
		MixPaidCap:       100,
		MixCenter:        100,
	}
}

// Clamp bounds s to [Min, Max].
func (p Params) Clamp(s int) int {
	if s < p.Min {
		return p.Min
	}
	if s > p.Max {
		return p.Max
	}
	return s
}
