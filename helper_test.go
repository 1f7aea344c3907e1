package allocator

// TWD is a helper for test to create New Taiwan dollars from const
func TWD(v float64) Money { return M(v, "TWD") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// twFees is the usual Taiwan brokerage schedule with the given rounding.
func twFees(r RoundingMode) FeeConfig {
	f := TaiwanFees()
	f.Rounding = r
	return f
}
