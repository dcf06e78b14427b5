package scoring

import "math"

// Credit grade bands. Boundaries are inclusive on the lower bound.
type Grade string

const (
	GradeExcellent Grade = "excellent" // score >= 720
	GradeGood      Grade = "good"      // score >= 660
	GradeFair      Grade = "fair"      // score >= 600
	GradeHighRisk  Grade = "high_risk" // score < 600
)

type Decision string

const (
	DecisionApprove         Decision = "Approve"
	DecisionApproveCoSigner Decision = "Approve With Co-Signer"
	DecisionReject          Decision = "Reject"
)

const (
	// DefaultScore is the starting score for a borrower with no history.
	DefaultScore = 650

	scoreFloor   = 300
	scoreCeiling = 850

	// FICO-style log-odds parameters: center and range multiplier.
	scoreCenter = 600
	scoreRange  = 50

	// Probability clip to keep the log-odds finite.
	pdEpsilon = 1e-6
)

// ScoreCredit maps a default probability onto the 300-850 score scale via
// a log-odds transform: score = 600 - 50*ln(p/(1-p)). The transform gives
// diminishing movement near the extremes of the probability range.
// currentScore <= 0 means "unset" and falls back to DefaultScore.
func ScoreCredit(defaultProbability float64, currentScore float64) float64 {
	if currentScore <= 0 {
		currentScore = DefaultScore
	}
	_ = currentScore // recalibrated absolutely from the probability

	pd := math.Min(math.Max(defaultProbability, pdEpsilon), 1-pdEpsilon)
	logOdds := math.Log(pd / (1 - pd))
	newScore := scoreCenter - scoreRange*logOdds

	return math.Max(scoreFloor, math.Min(scoreCeiling, newScore))
}

// GradeFor buckets a credit score into its risk band.
func GradeFor(creditScore float64) Grade {
	switch {
	case creditScore >= 720:
		return GradeExcellent
	case creditScore >= 660:
		return GradeGood
	case creditScore >= 600:
		return GradeFair
	default:
		return GradeHighRisk
	}
}

// Result is the outcome of a loan decision.
type Result struct {
	DefaultProbability float64  `json:"default_probability"`
	CreditScore        float64  `json:"credit_score"`
	CreditGrade        Grade    `json:"credit_grade"`
	Decision           Decision `json:"decision"`
	Recommendation     string   `json:"recommendation"`
	Confidence         float64  `json:"confidence"`
}

// Decide renders the approve / co-signer / reject decision.
//
//	p < 0.3                    -> Approve         (confidence 1-p)
//	0.3 <= p < 0.5             -> Approve         (confidence 0.8-p)
//	0.5 <= p < 0.7, not high_risk -> Co-Signer    (confidence 0.6-p)
//	otherwise                  -> Reject          (confidence p)
//
// Confidence is clamped to [0,1] after the branch formula.
func Decide(defaultProbability float64, currentCreditScore float64) Result {
	grade := GradeFor(currentCreditScore)

	var (
		decision       Decision
		recommendation string
		confidence     float64
	)

	switch {
	case defaultProbability < 0.3:
		decision = DecisionApprove
		recommendation = "Low risk - favorable terms"
		confidence = 1 - defaultProbability
	case defaultProbability < 0.5:
		decision = DecisionApprove
		recommendation = "Medium risk - standard terms"
		confidence = 0.8 - defaultProbability
	case defaultProbability < 0.7 && grade != GradeHighRisk:
		decision = DecisionApproveCoSigner
		recommendation = "Higher risk detected - co-signer recommended"
		confidence = 0.6 - defaultProbability
	default:
		decision = DecisionReject
		recommendation = "High default risk"
		confidence = defaultProbability
	}

	return Result{
		DefaultProbability: defaultProbability,
		CreditScore:        currentCreditScore,
		CreditGrade:        grade,
		Decision:           decision,
		Recommendation:     recommendation,
		Confidence:         math.Max(0, math.Min(1, confidence)),
	}
}
