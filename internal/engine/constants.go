package engine

// House-edge and game-economy constants. These are verbatim protocol
// constants: any deviation changes the session's numerical trajectory and
// breaks replay against a real operator's revealed session.
const (
	SpreadRate = 0.005

	FundingRatePerHour  = 0.10
	TicksPerHour        = 36000
	FundingRatePerTick  = FundingRatePerHour / TicksPerHour

	TicksPerSecond = 10

	SimpleTurboCostRate = 0.01

	ShieldFlatRate    = 0.0066
	ShieldTicksPerBuy = 10

	TurboLossPremium = 0.02

	OptionEdgeRate = 0.02

	EdgeEarnRate = 0.20
	LossEarnRate = 0.02
)

// strikeTable maps duration (seconds) -> option multiplier -> strike
// distance, expressed as a percentage of the current price.
var strikeTable = map[int]map[int]float64{
	1:   {2: 0.020, 5: 0.694, 10: 1.052, 25: 1.422, 100: 1.880},
	5:   {2: 0.059, 5: 2.338, 10: 3.535, 25: 4.791, 100: 6.351},
	30:  {2: 0.213, 5: 6.446, 10: 9.705, 25: 13.243, 100: 17.644},
	60:  {2: 0.253, 5: 9.191, 10: 13.828, 25: 18.823, 100: 25.346},
	300: {2: 0.587, 5: 20.263, 10: 30.162, 25: 41.016, 100: 59.495},
}

// strikeDistance returns the strike distance percentage for a given
// duration/multiplier pair, and whether that pair exists in the table.
func strikeDistance(durationSeconds, multiplier int) (float64, bool) {
	byMultiplier, ok := strikeTable[durationSeconds]
	if !ok {
		return 0, false
	}
	distance, ok := byMultiplier[multiplier]
	return distance, ok
}
