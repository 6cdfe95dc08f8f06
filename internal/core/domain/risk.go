package domain

// RiskCategory is one of five ordered collectibility bands derived from a
// final score. The numeric score is the source of truth; the label is always
// re-derivable and never persisted on its own.
type RiskCategory string

const (
	RiskCurrent        RiskCategory = "Tier 1 - Current (Low Risk)"
	RiskSpecialMention RiskCategory = "Tier 2 - Special Mention"
	RiskSubstandard    RiskCategory = "Tier 3 - Substandard"
	RiskDoubtful       RiskCategory = "Tier 4 - Doubtful"
	RiskLoss           RiskCategory = "Tier 5 - Loss (High Risk)"
)

// Tier returns the 1-5 band number, 1 being the lowest risk.
func (r RiskCategory) Tier() int {
	switch r {
	case RiskCurrent:
		return 1
	case RiskSpecialMention:
		return 2
	case RiskSubstandard:
		return 3
	case RiskDoubtful:
		return 4
	default:
		return 5
	}
}

// ClassifyScore maps a final score to its risk category. The chain is total:
// every real input lands in exactly one band, with anything below 450 or
// above 1000 falling through to Tier 5.
func ClassifyScore(score float64) RiskCategory {
	switch {
	case score >= 750 && score <= 1000:
		return RiskCurrent
	case score >= 650 && score < 750:
		return RiskSpecialMention
	case score >= 550 && score < 650:
		return RiskSubstandard
	case score >= 450 && score < 550:
		return RiskDoubtful
	default:
		return RiskLoss
	}
}
