package price

// State is the entire RNG-derived state of price generation. It is small
// enough to copy by value; Engine.NextTick and Engine.StartTurbo take and
// return it by value, so the Engine itself holds none of it.
type State struct {
	Price               float64
	Tick                int
	MeanPrice           float64
	Momentum            float64
	LastSign            int // -1, 0, or +1
	InVolatilitySpike   bool
	TurboActive         bool
	TurboTicksRemaining int
	TurboDirection      int // -1 or +1
}

// NewState returns the initial price-layer state for a session starting at
// initialPrice. LastSign starts at 0 (neither direction yet observed).
func NewState(initialPrice float64) State {
	return State{
		Price:     initialPrice,
		Tick:      0,
		MeanPrice: initialPrice,
		Momentum:  0,
		LastSign:  0,
	}
}
