package model

// ScoreContext is the already-computed numeric view of one student's answers
// for one tool. It is built by the scoring layer and never mutated by the
// insight pipeline.
type ScoreContext struct {
	// ItemScores are raw per-item scores in [-2, 2]
	ItemScores map[string]float64 `json:"itemScores" bson:"itemScores"`

	// GroupQuotients are normalized 0-100 rollups per group
	GroupQuotients map[string]float64 `json:"groupQuotients" bson:"groupQuotients"`

	// OverallQuotient is the normalized 0-100 whole-tool rollup
	OverallQuotient float64 `json:"overallQuotient" bson:"overallQuotient"`

	// FreeText holds the student's free-text answer per item, if any
	FreeText map[string]string `json:"freeText,omitempty" bson:"freeText,omitempty"`
}

// ScoreBand buckets a score into a severity band for fallback copy selection
type ScoreBand string

const (
	BandProblematic ScoreBand = "problematic"
	BandModerate    ScoreBand = "moderate"
	BandHealthy     ScoreBand = "healthy"
)

// BandForScore bands a raw item score in [-2, 2]
func BandForScore(score float64) ScoreBand {
	switch {
	case score <= -0.5:
		return BandProblematic
	case score < 1:
		return BandModerate
	default:
		return BandHealthy
	}
}

// BandForQuotient bands a normalized 0-100 quotient
func BandForQuotient(q float64) ScoreBand {
	switch {
	case q < 40:
		return BandProblematic
	case q < 70:
		return BandModerate
	default:
		return BandHealthy
	}
}

// ItemBand bands one item of the context. Items absent from the context band
// as moderate so a partial score set never skews fallback copy to an extreme.
func (sc *ScoreContext) ItemBand(itemKey string) ScoreBand {
	if sc == nil || sc.ItemScores == nil {
		return BandModerate
	}
	score, ok := sc.ItemScores[itemKey]
	if !ok {
		return BandModerate
	}
	return BandForScore(score)
}

// AverageItemScore averages the raw scores of the given items, skipping any
// not present in the context. The second return reports how many were found.
func (sc *ScoreContext) AverageItemScore(itemKeys []string) (float64, int) {
	if sc == nil || sc.ItemScores == nil {
		return 0, 0
	}
	sum := 0.0
	n := 0
	for _, k := range itemKeys {
		if v, ok := sc.ItemScores[k]; ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}

// GroupBand bands a group quotient, falling back to the items' average raw
// score when the quotient was not computed yet.
func (sc *ScoreContext) GroupBand(groupKey string, itemKeys []string) ScoreBand {
	if sc != nil && sc.GroupQuotients != nil {
		if q, ok := sc.GroupQuotients[groupKey]; ok {
			return BandForQuotient(q)
		}
	}
	avg, n := sc.AverageItemScore(itemKeys)
	if n == 0 {
		return BandModerate
	}
	return BandForScore(avg)
}
