package allocator

// TaiwanFees is the usual schedule of a Taiwanese broker: 0.1425% of the
// trade value, at least 1 dollar for odd lots and 20 dollars from 1000
// shares on.
func TaiwanFees() FeeConfig {
	return FeeConfig{
		Rate:              0.001425,
		OddLotMinFee:      1,
		RoundLotMinFee:    20,
		RoundLotThreshold: 1000,
		Rounding:          HalfUp,
	}
}

// DefaultWeights is the ETF mix the calculator starts with.
func DefaultWeights() []AssetWeight {
	return []AssetWeight{
		AW("009813", 0.50),
		AW("0050", 0.30),
		AW("00878", 0.20),
	}
}
