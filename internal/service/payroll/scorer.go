package payroll

import (
	"github.com/paycore-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Score derives the performance rating for one aggregated period. The
// score starts from the presence ratio (present, late and leave days all
// count as presence) scaled to 100, then subtracts the weighted late and
// absence percentages, floored at zero. Bands map the score to a rating.
//
// A period with zero working days scores zero and rates poor; there is no
// attendance to reward.
func Score(summary payroll.PayrollSummary, weights payroll.ScoreWeights) (payroll.PerformanceScore, error) {
	if err := weights.Validate(); err != nil {
		return payroll.PerformanceScore{}, err
	}

	if summary.TotalWorkingDays == 0 {
		return payroll.PerformanceScore{Score: decimal.Zero, Rating: payroll.RatingPoor}, nil
	}

	total := decimal.NewFromInt(int64(summary.TotalWorkingDays))
	presence := decimal.NewFromInt(int64(summary.PresentDays + summary.LateDays + summary.LeaveDays))
	latePct := decimal.NewFromInt(int64(summary.LateDays)).Div(total).Mul(hundred)
	absentPct := decimal.NewFromInt(int64(summary.AbsentDays)).Div(total).Mul(hundred)

	score := presence.Div(total).Mul(hundred).
		Sub(weights.LatePenalty.Mul(latePct)).
		Sub(weights.AbsencePenalty.Mul(absentPct))
	if score.IsNegative() {
		score = decimal.Zero
	}

	rating := payroll.RatingPoor
	switch {
	case score.GreaterThanOrEqual(weights.ExcellentMin):
		rating = payroll.RatingExcellent
	case score.GreaterThanOrEqual(weights.GoodMin):
		rating = payroll.RatingGood
	case score.GreaterThanOrEqual(weights.AverageMin):
		rating = payroll.RatingAverage
	}

	return payroll.PerformanceScore{Score: score, Rating: rating}, nil
}
