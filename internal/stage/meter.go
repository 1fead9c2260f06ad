package stage

import "studyflow/internal/segmenter"

// Pricing holds per-1K-token prices for estimating call cost. Token
// counts come from the segmenter's deterministic estimator, so the
// figures are approximations for reporting, not billing.
type Pricing struct {
	InputPer1K  float64
	OutputPer1K float64
}

// Meter accumulates estimated cost and call count across the external
// calls of one file's processing. A nil Meter is a no-op.
type Meter struct {
	Pricing Pricing
	Calls   int
	Cost    float64
}

func (m *Meter) record(prompt, output string) {
	if m == nil {
		return
	}
	m.Calls++
	in := float64(segmenter.EstimateTokens(prompt))
	out := float64(segmenter.EstimateTokens(output))
	m.Cost += in/1000*m.Pricing.InputPer1K + out/1000*m.Pricing.OutputPer1K
}
