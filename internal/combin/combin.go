// Package combin holds the exact integer combinatorics used to turn Taylor
// coefficients into derivatives and back.
package combin

import (
	"math/big"
	"sync"

	"gonum.org/v1/gonum/stat/combin"
)

var (
	mu         sync.Mutex
	factorials = []*big.Int{big.NewInt(1)}
)

// Factorial returns n! as a new big.Int. It panics if n is negative.
func Factorial(n int) *big.Int {
	if n < 0 {
		panic("combin: negative factorial")
	}
	mu.Lock()
	defer mu.Unlock()
	for i := len(factorials); i <= n; i++ {
		f := new(big.Int).Mul(factorials[i-1], big.NewInt(int64(i)))
		factorials = append(factorials, f)
	}
	return new(big.Int).Set(factorials[n])
}

// FactorialProduct returns the product of idx[i]! over all entries.
func FactorialProduct(idx []int) *big.Int {
	p := big.NewInt(1)
	for _, n := range idx {
		if n > 1 {
			p.Mul(p, Factorial(n))
		}
	}
	return p
}

// Binomial returns n choose k for small arguments.
func Binomial(n, k int) int {
	return combin.Binomial(n, k)
}

// BinomialBig returns n choose k exactly.
func BinomialBig(n, k int) *big.Int {
	return new(big.Int).Binomial(int64(n), int64(k))
}

// Indices lists every index tuple with 0 <= t[i] <= orders[i] in row-major
// order, last index fastest.
func Indices(orders []int) [][]int {
	if len(orders) == 0 {
		return [][]int{{}}
	}
	lens := make([]int, len(orders))
	for i, o := range orders {
		lens[i] = o + 1
	}
	return combin.Cartesian(lens)
}
