// Package params holds the size parameters shared by the three ZK
// proofs (Π_enc, Π_aff-g, Π_log*), exactly as listed in spec.md §4.4.
package params

// L is the range proof exponent ℓ: secrets live in ±2^L.
const L = 256

// LPrime is ℓ', the wider range used for the affine-operation's second
// secret (the y value in Π_aff-g).
const LPrime = 1280

// Epsilon is the statistical-hiding slack ε added to every commitment
// range.
const Epsilon = 512

// LPlusEpsilon is ℓ+ε, the range every "z1"-style response must satisfy.
const LPlusEpsilon = L + Epsilon

// LPrimePlusEpsilon is ℓ'+ε, the range every "z2"-style response bound
// to the wider secret must satisfy.
const LPrimePlusEpsilon = LPrime + Epsilon

// BitsIntModN is the bit length of the Paillier/Pedersen modulus N used
// throughout the proofs (spec.md §6).
const BitsIntModN = 2048
