package domain

import "math/big"

// Rat returns n as an exact rational.
func Rat(n int64) *big.Rat {
	return new(big.Rat).SetInt64(n)
}

// Floor rounds r down to the nearest integer. The denominator of a big.Rat
// is always positive, so Euclidean division gives the floor.
func Floor(r *big.Rat) *big.Rat {
	q := new(big.Int).Div(r.Num(), r.Denom())
	return new(big.Rat).SetInt(q)
}

// Sum adds up values without modifying them. Nil entries count as zero.
func Sum(values ...*big.Rat) *big.Rat {
	total := new(big.Rat)
	for _, v := range values {
		if v != nil {
			total.Add(total, v)
		}
	}
	return total
}
