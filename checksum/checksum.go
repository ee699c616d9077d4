// ════════════════════════════════════════════════════════════════════════════════════════════════
// MODULAR CHECKSUM
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Foundational Data Structures
// Component: O(sqrt(n)) Block-Decomposition Checksum over (i%j)+(j%i)
//
// Description:
//   Computes sum_{1<=i,j<=n} (i%j + j%i) mod (1e9+7) without iterating all
//   n^2 pairs, by decomposing the inner sum over j into O(sqrt(n)) blocks
//   where floor(n/j) is constant.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package checksum

import "math/bits"

const (
	mod  = 1_000_000_007
	inv2 = 500_000_004 // modular inverse of 2 mod (1e9+7)
	inv6 = 166_666_668 // modular inverse of 6 mod (1e9+7)
)

// mulMod computes a*b mod p for values already reduced below p, using
// bits.Mul64 as the stdlib equivalent of a 128-bit product (Go has no
// unsigned __int128; the high/low word pair from Mul64 combined with
// bits.Div64 reproduces the same reduction).
func mulMod(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, mod)
	return rem
}

func addMod(a, b uint64) uint64 {
	s := a + b
	if s >= mod {
		s -= mod
	}
	return s
}

func subMod(a, b uint64) uint64 {
	if a >= b {
		return a - b
	}
	return a + mod - b
}

func normalize(v int64) uint64 {
	r := v % mod
	if r < 0 {
		r += mod
	}
	return uint64(r)
}

// sum1ToN computes 1 + 2 + ... + x (mod p) via x(x+1)/2.
func sum1ToN(x int64) uint64 {
	if x <= 0 {
		return 0
	}
	xMod := normalize(x)
	xPlus1 := addMod(xMod, 1)
	return mulMod(mulMod(xMod, xPlus1), inv2)
}

// sumSquares1ToN computes 1^2 + 2^2 + ... + x^2 (mod p) via x(x+1)(2x+1)/6.
func sumSquares1ToN(x int64) uint64 {
	if x <= 0 {
		return 0
	}
	xMod := normalize(x)
	xPlus1 := addMod(xMod, 1)
	twoXPlus1 := addMod(mulMod(2, xMod), 1)
	return mulMod(mulMod(mulMod(xMod, xPlus1), twoXPlus1), inv6)
}

func sumRange(left, right int64) uint64 {
	return subMod(sum1ToN(right), sum1ToN(left-1))
}

func sumSquaresRange(left, right int64) uint64 {
	return subMod(sumSquares1ToN(right), sumSquares1ToN(left-1))
}

// Compute returns sum_{1<=i,j<=n} ((i%j)+(j%i)) mod (1e9+7), in O(sqrt(n))
// time via block decomposition over ranges of j with constant floor(n/j).
func Compute(n int64) int64 {
	if n <= 0 {
		return 0
	}

	var total uint64
	nMod := normalize(n)
	nSquaredPlusN := addMod(mulMod(nMod, nMod), nMod)
	nPlus1 := addMod(nMod, 1)

	for j := int64(1); j <= n; {
		quotient := n / j
		blockEnd := n / quotient
		blockSize := blockEnd - j + 1

		sumJ := sumRange(j, blockEnd)
		sumJSquared := sumSquaresRange(j, blockEnd)

		qMod := uint64(quotient % mod)
		qPlus1 := addMod(qMod, 1)

		qTimesQPlus1 := mulMod(qMod, qPlus1)
		term1 := mulMod(qTimesQPlus1, sumJSquared)

		twoQTimesNPlus1 := mulMod(mulMod(2, qMod), nPlus1)
		term2 := mulMod(twoQTimesNPlus1, sumJ)

		term3 := mulMod(nSquaredPlusN, uint64(blockSize%mod))

		bracket := addMod(subMod(term1, term2), term3)
		blockContribution := mulMod(inv2, bracket)

		total = addMod(total, blockContribution)
		j = blockEnd + 1
	}

	return int64(mulMod(2, total))
}
