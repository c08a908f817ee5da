package workload

import (
	"math"
	"math/rand/v2"
)

// zipf draws ranks in [0, keySpace) with skew theta, rank 0 being the most
// frequent (Gray et al., "Quickly generating billion-record synthetic
// databases").
type zipf struct {
	rng          *rand.Rand
	keySpace     int
	spread       float64
	zetaN        float64
	alpha        float64
	eta          float64
	halfPowTheta float64
}

func newZipf(keySpace int, theta float64, rng *rand.Rand) *zipf {
	spread := keySpace + 1
	zeta2 := computeZeta(2, theta)
	zetaN := computeZeta(uint64(spread), theta)
	return &zipf{
		rng:          rng,
		keySpace:     keySpace,
		spread:       float64(spread),
		zetaN:        zetaN,
		alpha:        1.0 / (1.0 - theta),
		eta:          (1 - math.Pow(2.0/float64(spread), 1.0-theta)) / (1.0 - zeta2/zetaN),
		halfPowTheta: 1.0 + math.Pow(0.5, theta),
	}
}

func (z *zipf) next() int {
	u := z.rng.Float64()
	uz := u * z.zetaN
	var result int
	switch {
	case uz < 1.0:
		result = 0
	case uz < z.halfPowTheta:
		result = 1
	default:
		result = int(z.spread * math.Pow(z.eta*u-z.eta+1.0, z.alpha))
	}
	if result >= z.keySpace {
		result = z.keySpace - 1
	}
	return result
}

func computeZeta(n uint64, theta float64) float64 {
	sum := 0.0
	for i := uint64(1); i <= n; i++ {
		sum += 1.0 / math.Pow(float64(i), theta)
	}
	return sum
}
