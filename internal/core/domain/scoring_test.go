package domain

import (
	"math"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var baseTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// evenHistory builds count transactions of the given amount, spaced gapDays
// apart, newest first (the order the store returns them in).
func evenHistory(count int, amount int64, gapDays float64) []Transaction {
	txns := make([]Transaction, count)
	for i := 0; i < count; i++ {
		offset := time.Duration(float64(i) * gapDays * 24 * float64(time.Hour))
		txns[i] = Transaction{
			ID:        "txn",
			ClientID:  "client_1",
			Amount:    amount,
			Category:  CategoryAccount,
			CreatedAt: baseTime.Add(-offset),
		}
	}
	return txns
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// ---------------------------------------------------------------------------
// ActivityScore
// ---------------------------------------------------------------------------

func TestActivityScore_EmptyHistory(t *testing.T) {
	if got := ActivityScore(nil); got != 0 {
		t.Fatalf("expected 0 for empty history, got %v", got)
	}
	if got := ActivityScore([]Transaction{}); got != 0 {
		t.Fatalf("expected 0 for empty slice, got %v", got)
	}
}

func TestActivityScore_SaturatesAt1000(t *testing.T) {
	// 200+ transactions, mean amount at the value cap, cadence faster than
	// 30 days: every term saturates but none exceeds its own cap.
	txns := evenHistory(250, 6_000_000, 7)

	got := ActivityScore(txns)
	if got != 1000 {
		t.Fatalf("expected saturated score 1000, got %v", got)
	}
}

func TestActivityScore_ExactCaps(t *testing.T) {
	// Exactly 200 transactions with mean 5,000,000 spaced exactly 30 days:
	// 400 + 400 + 200.
	txns := evenHistory(200, 5_000_000, 30)

	got := ActivityScore(txns)
	if !almostEqual(got, 1000) {
		t.Fatalf("expected 1000, got %v", got)
	}
}

func TestActivityScore_MidRangeScenario(t *testing.T) {
	// 100 transactions averaging 2,500,000 spaced exactly 30 days:
	// frequency 100/200*400 = 200, value 2.5M/5M*400 = 200, consistency 200.
	txns := evenHistory(100, 2_500_000, 30)

	got := ActivityScore(txns)
	if !almostEqual(got, 600) {
		t.Fatalf("expected 600, got %v", got)
	}
}

func TestActivityScore_SingleTransaction(t *testing.T) {
	// One transaction: frequency 1/200*400 = 2, value scales on the single
	// amount, and with no gap observations consistency is treated as maximal.
	txns := evenHistory(1, 1_000_000, 0)

	want := 2.0 + 1_000_000.0/5_000_000.0*400 + 200
	if got := ActivityScore(txns); !almostEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestActivityScore_DuplicateTimestamps(t *testing.T) {
	// All timestamps identical: mean gap is zero, which the policy treats as
	// maximal consistency instead of dividing by zero.
	txns := evenHistory(10, 1_000_000, 0)

	freq := 10.0 / 200.0 * 400
	value := 1_000_000.0 / 5_000_000.0 * 400
	want := freq + value + 200
	if got := ActivityScore(txns); !almostEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestActivityScore_SlowCadenceScalesDown(t *testing.T) {
	// A 60-day average cadence earns half the consistency cap.
	txns := evenHistory(10, 1_000_000, 60)

	freq := 10.0 / 200.0 * 400
	value := 1_000_000.0 / 5_000_000.0 * 400
	want := freq + value + 100
	if got := ActivityScore(txns); !almostEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestActivityScore_OrderIndependent(t *testing.T) {
	// The consistency term sorts internally; ascending and descending inputs
	// must agree.
	desc := evenHistory(20, 2_000_000, 15)
	asc := make([]Transaction, len(desc))
	for i := range desc {
		asc[i] = desc[len(desc)-1-i]
	}

	if a, d := ActivityScore(asc), ActivityScore(desc); !almostEqual(a, d) {
		t.Fatalf("order dependence: asc=%v desc=%v", a, d)
	}
}

// ---------------------------------------------------------------------------
// IncomeScore
// ---------------------------------------------------------------------------

func TestIncomeScore_Brackets(t *testing.T) {
	cases := []struct {
		income int64
		want   int
	}{
		{-5_000_000, 200},
		{0, 200},
		{9_999_999, 200},
		{10_000_000, 400},
		{19_999_999, 400},
		{20_000_000, 600},
		{25_000_000, 600},
		{30_000_000, 800},
		{39_999_999, 800},
		{40_000_000, 1000},
		{500_000_000, 1000},
	}
	for _, tc := range cases {
		if got := IncomeScore(tc.income); got != tc.want {
			t.Errorf("IncomeScore(%d) = %d, want %d", tc.income, got, tc.want)
		}
	}
}

// ---------------------------------------------------------------------------
// FinalScore
// ---------------------------------------------------------------------------

func TestFinalScore_Weights(t *testing.T) {
	if got := FinalScore(600, 600); !almostEqual(got, 600) {
		t.Fatalf("expected 600, got %v", got)
	}
	// High income, no activity: 0.6*0 + 0.4*1000 = 400, which lands in the
	// highest-risk band despite the income.
	if got := FinalScore(0, 1000); !almostEqual(got, 400) {
		t.Fatalf("expected 400, got %v", got)
	}
	if ClassifyScore(FinalScore(0, 1000)) != RiskLoss {
		t.Fatal("aggregate 400 must classify as Tier 5")
	}
}

func TestEndToEnd_MidRangeClient(t *testing.T) {
	// Income 25,000,000 (bracket 600) + 100 transactions averaging 2,500,000
	// spaced 30 days apart (activity 600): aggregate 600, Tier 3.
	txns := evenHistory(100, 2_500_000, 30)

	activity := ActivityScore(txns)
	income := float64(IncomeScore(25_000_000))
	final := FinalScore(activity, income)

	if !almostEqual(final, 600) {
		t.Fatalf("expected final score 600, got %v", final)
	}
	if got := ClassifyScore(final); got != RiskSubstandard {
		t.Fatalf("expected %q, got %q", RiskSubstandard, got)
	}
}
