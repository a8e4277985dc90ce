// Package fitness reduces a batch of InteractionRecords to the six
// weighted scores the evolution controller selects on (spec §4.6).
package fitness

import (
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"
)

// Weights configures the relative contribution of each dimension to
// totalFitness. Defaults follow spec §4.6.
type Weights struct {
	Detection     float64
	FalsePositive float64
	Privacy       float64
	Revocation    float64
	Explanation   float64
	Policy        float64
}

// DefaultWeights returns the spec-default six-weight configuration.
func DefaultWeights() Weights {
	return Weights{
		Detection:     0.35,
		FalsePositive: 0.20,
		Privacy:       0.15,
		Revocation:    0.10,
		Explanation:   0.10,
		Policy:        0.10,
	}
}

// Result is the reduction of one batch of records to its fitness
// dimensions (spec §4.6). Empty input yields all zeros.
type Result struct {
	ScenariosEvaluated int
	DetectionRate      float64
	FalsePositiveRate  float64
	Precision          float64
	Recall             float64
	F1                 float64
	PrivacyScore       float64
	RevocationScore    float64
	ExplanationScore   float64
	PolicyScore        float64
	TotalFitness       float64
}

// Evaluate reduces records to a Result under the given weights.
func Evaluate(records []domain.InteractionRecord, weights Weights) Result {
	if len(records) == 0 {
		return Result{}
	}

	var tp, fp, tn, fn int
	var explanationSum float64
	var privacyCompliant, policyCompliant int

	for _, rec := range records {
		switch {
		case rec.TruePositive:
			tp++
		case rec.FalsePositive:
			fp++
		case rec.TrueNegative:
			tn++
		case rec.FalseNegative:
			fn++
		}
		explanationSum += rec.ExplanationQuality
		if rec.PrivacyCompliant {
			privacyCompliant++
		}
		if rec.PolicyCompliant {
			policyCompliant++
		}
	}

	result := Result{
		ScenariosEvaluated: len(records),
		DetectionRate:      rate(tp, fn, 1.0),
		FalsePositiveRate:  rate(fp, tn, 0.0),
		Precision:          rate(tp, fp, 1.0),
		RevocationScore:    1.0,
		PrivacyScore:       float64(privacyCompliant) / float64(len(records)),
		PolicyScore:        float64(policyCompliant) / float64(len(records)),
		ExplanationScore:   explanationSum / float64(len(records)),
	}
	result.Recall = result.DetectionRate
	result.F1 = f1(result.Precision, result.Recall)

	result.TotalFitness = weights.Detection*result.DetectionRate +
		weights.FalsePositive*(1-result.FalsePositiveRate) +
		weights.Privacy*result.PrivacyScore +
		weights.Revocation*result.RevocationScore +
		weights.Explanation*result.ExplanationScore +
		weights.Policy*result.PolicyScore

	return result
}

// rate computes hit/(hit+miss), returning defaultIfZero when the
// denominator is zero.
func rate(hit, miss int, defaultIfZero float64) float64 {
	denom := hit + miss
	if denom == 0 {
		return defaultIfZero
	}
	return float64(hit) / float64(denom)
}

func f1(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}
