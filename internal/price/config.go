package price

// LayerConfig holds the immutable constants that shape the layered price
// engine's behaviour. It is fixed for a session and never mutated after
// construction.
type LayerConfig struct {
	SignBias            float64
	BaseMagnitudeMin     float64
	BaseMagnitudeMax     float64
	VolatilityBase       float64
	SpikeProbability     float64
	SpikeMin             float64
	SpikeMax             float64
	MomentumStrength     float64
	MomentumDecay        float64
	ReversionStrength    float64
	ReversionHalfLife    float64
	DriftCorrection      float64
}

// DefaultLayerConfig returns the reference constants every verifier
// implementation must agree on; deviating from these breaks replay.
func DefaultLayerConfig() LayerConfig {
	return LayerConfig{
		SignBias:          0.5,
		BaseMagnitudeMin:  0.0005,
		BaseMagnitudeMax:  0.0025,
		VolatilityBase:    1.0,
		SpikeProbability:  0.02,
		SpikeMin:          2.0,
		SpikeMax:          4.0,
		MomentumStrength:  0.15,
		MomentumDecay:     0.92,
		ReversionStrength: 0.03,
		ReversionHalfLife: 500,
		DriftCorrection:   -0.000008,
	}
}
