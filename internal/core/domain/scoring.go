package domain

import (
	"sort"
	"time"
)

// Calibration parameters for the behavioral activity score.
const (
	// MaxExpectedTransactions is the history size at which the frequency
	// term saturates: a fully active client.
	MaxExpectedTransactions = 200
	// MaxAverageAmount is the mean transaction value (in currency units)
	// at which the value term saturates.
	MaxAverageAmount = 5_000_000
	// TargetCadenceDays is the average gap between transactions that earns
	// the full consistency term. A faster cadence is capped, a slower one
	// scales down proportionally.
	TargetCadenceDays = 30.0

	frequencyCap   = 400.0
	valueCap       = 400.0
	consistencyCap = 200.0
)

// Weights combining the two sub-scores into the final creditworthiness score.
const (
	WeightActivity = 0.6
	WeightIncome   = 0.4
)

// ActivityScore reduces a client's transaction history to a behavioral score
// in [0, 1000]: frequency (0-400) + average value (0-400) + temporal
// consistency (0-200). An empty history scores 0.
func ActivityScore(transactions []Transaction) float64 {
	if len(transactions) == 0 {
		return 0
	}
	return frequencyTerm(len(transactions)) +
		valueTerm(transactions) +
		consistencyTerm(transactions)
}

func frequencyTerm(count int) float64 {
	score := float64(count) / MaxExpectedTransactions * frequencyCap
	return min(frequencyCap, score)
}

func valueTerm(transactions []Transaction) float64 {
	var total int64
	for _, t := range transactions {
		total += t.Amount
	}
	mean := float64(total) / float64(len(transactions))
	return min(valueCap, mean/MaxAverageAmount*valueCap)
}

// consistencyTerm scores the mean absolute gap, in fractional days, between
// consecutive timestamps sorted ascending. A single transaction has no gap
// observations and is treated as maximally consistent (200). The same policy
// applies when all timestamps coincide (mean gap zero), which would otherwise
// divide by zero.
func consistencyTerm(transactions []Transaction) float64 {
	if len(transactions) < 2 {
		return consistencyCap
	}

	stamps := make([]time.Time, len(transactions))
	for i, t := range transactions {
		stamps[i] = t.CreatedAt
	}
	sort.Slice(stamps, func(i, j int) bool { return stamps[i].Before(stamps[j]) })

	var totalDays float64
	for i := 1; i < len(stamps); i++ {
		totalDays += stamps[i].Sub(stamps[i-1]).Hours() / 24
	}
	avgGap := totalDays / float64(len(stamps)-1)
	if avgGap <= 0 {
		return consistencyCap
	}
	return min(consistencyCap, TargetCadenceDays/avgGap*consistencyCap)
}

// IncomeScore maps monthly income to a discrete bracket score. The brackets
// are a step function with inclusive lower bounds; zero or negative income
// falls into the lowest bracket.
func IncomeScore(income int64) int {
	switch {
	case income >= 40_000_000:
		return 1000
	case income >= 30_000_000:
		return 800
	case income >= 20_000_000:
		return 600
	case income >= 10_000_000:
		return 400
	default:
		return 200
	}
}

// FinalScore combines the activity and income sub-scores with fixed weights.
// Both inputs are bounded by 1000, so the result stays within [0, 1000].
func FinalScore(activityScore, incomeScore float64) float64 {
	return WeightActivity*activityScore + WeightIncome*incomeScore
}
