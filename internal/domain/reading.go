package domain

import "time"

// Sample is one observed quota measurement. UsedPercent is canonical
// "percent consumed": parsers for tools that report percent-left convert at
// their boundary so the projection engine only ever sees consumed percent.
// Observed is false until a percentage has actually been seen; a reset text
// alone does not count as a usage observation.
type Sample struct {
	UsedPercent float64
	Observed    bool
	ResetText   string
}

// LeftPercent derives the remaining-budget view used for display.
func (s Sample) LeftPercent() float64 {
	left := 100 - s.UsedPercent
	if left < 0 {
		return 0
	}
	return left
}

// Reading is the structured result of one fetch cycle for one tool. A kind
// with no observed sample means "not observed this cycle", not "zero usage".
type Reading struct {
	Tool              Tool
	Samples           map[QuotaKind]Sample
	ExtraUsageEnabled bool
	CapturedAt        time.Time
}

func NewReading(tool Tool) Reading {
	return Reading{Tool: tool, Samples: make(map[QuotaKind]Sample)}
}

// Empty reports whether no quota percentage was observed. An empty reading is
// a valid parse result; callers log it for diagnosability rather than failing.
func (r Reading) Empty() bool {
	for _, sample := range r.Samples {
		if sample.Observed {
			return false
		}
	}
	return true
}

// Sample returns the sample for kind and whether a percentage was observed.
func (r Reading) Sample(kind QuotaKind) (Sample, bool) {
	sample, ok := r.Samples[kind]
	return sample, ok && sample.Observed
}

func (r *Reading) SetPercent(kind QuotaKind, usedPercent float64) {
	sample := r.Samples[kind]
	sample.UsedPercent = usedPercent
	sample.Observed = true
	r.Samples[kind] = sample
}

func (r *Reading) SetResetText(kind QuotaKind, text string) {
	sample := r.Samples[kind]
	sample.ResetText = text
	r.Samples[kind] = sample
}
