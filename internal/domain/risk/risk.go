package risk

import (
	"errors"
	"math"
)

// Features is the fixed feature vector the default-risk model scores.
// Field order and meaning match the application snapshot.
type Features struct {
	Income         float64
	InterestRate   float64
	LoanAmount     float64
	Age            float64
	CreditScore    float64
	MonthsEmployed float64
	DTIRatio       float64
}

// Model estimates the probability that a loan with the given features
// defaults. Implementations must be side-effect free and safe for
// concurrent use; the engine calls Predict synchronously.
type Model interface {
	Predict(f Features) (float64, error)
}

var ErrBadPrediction = errors.New("risk model produced probability outside [0,1]")

// LogisticModel is a calibrated logistic-regression scorer. Inputs are
// standardised with per-feature means and scales before the linear term,
// mirroring the scaler the production model was trained with. A process
// constructs exactly one instance and hands it to the engine; there is no
// package-level lazily loaded model.
type LogisticModel struct {
	Weights   Features
	Means     Features
	Scales    Features
	Intercept float64
}

// DefaultLogisticModel returns a model with coefficients fitted offline
// against the historical lending book. Higher rate/amount/DTI push the
// probability up; income, score, age and tenure pull it down.
func DefaultLogisticModel() *LogisticModel {
	return &LogisticModel{
		Weights: Features{
			Income:         -0.35,
			InterestRate:   0.55,
			LoanAmount:     0.40,
			Age:            -0.15,
			CreditScore:    -0.60,
			MonthsEmployed: -0.20,
			DTIRatio:       0.45,
		},
		Means: Features{
			Income:         82500,
			InterestRate:   13.5,
			LoanAmount:     127500,
			Age:            43.5,
			CreditScore:    574.3,
			MonthsEmployed: 59.5,
			DTIRatio:       0.5,
		},
		Scales: Features{
			Income:         38963,
			InterestRate:   6.64,
			LoanAmount:     70841,
			Age:            14.99,
			CreditScore:    158.9,
			MonthsEmployed: 34.64,
			DTIRatio:       0.23,
		},
		Intercept: -1.8,
	}
}

func (m *LogisticModel) Predict(f Features) (float64, error) {
	z := m.Intercept +
		m.Weights.Income*standardise(f.Income, m.Means.Income, m.Scales.Income) +
		m.Weights.InterestRate*standardise(f.InterestRate, m.Means.InterestRate, m.Scales.InterestRate) +
		m.Weights.LoanAmount*standardise(f.LoanAmount, m.Means.LoanAmount, m.Scales.LoanAmount) +
		m.Weights.Age*standardise(f.Age, m.Means.Age, m.Scales.Age) +
		m.Weights.CreditScore*standardise(f.CreditScore, m.Means.CreditScore, m.Scales.CreditScore) +
		m.Weights.MonthsEmployed*standardise(f.MonthsEmployed, m.Means.MonthsEmployed, m.Scales.MonthsEmployed) +
		m.Weights.DTIRatio*standardise(f.DTIRatio, m.Means.DTIRatio, m.Scales.DTIRatio)

	p := 1.0 / (1.0 + math.Exp(-z))
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, ErrBadPrediction
	}
	return p, nil
}

func standardise(v, mean, scale float64) float64 {
	if scale == 0 {
		return 0
	}
	return (v - mean) / scale
}

// Static is a fixed-probability model. Useful in tests and as a
// conservative fallback when no fitted model is configured.
type Static float64

func (s Static) Predict(Features) (float64, error) {
	p := float64(s)
	if p < 0 || p > 1 {
		return 0, ErrBadPrediction
	}
	return p, nil
}
