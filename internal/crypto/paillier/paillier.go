// Package paillier implements the additively homomorphic Paillier
// cryptosystem with the Blum-safe-prime key generation and the fixed
// base N+1 required by the ZK proofs in this module (spec.md §4.2).
package paillier

import (
	"math/big"

	"github.com/mpc-tss/cggmp21/internal/crypto/sampling"
	"github.com/mpc-tss/cggmp21/pkg/tss"
)

// BitsBlumPrime is the bit length of each of the two safe Blum primes
// that make up a Paillier modulus, per spec.md §3/§6.
const BitsBlumPrime = 1024

var one = big.NewInt(1)

// PublicKey is (N, N^2, N+1).
type PublicKey struct {
	N       *big.Int
	N2      *big.Int
	NPlus1  *big.Int
}

// PrivateKey is (p, q, phi, phi^-1 mod N, PublicKey).
type PrivateKey struct {
	PublicKey
	P, Q    *big.Int
	Phi     *big.Int
	PhiInv  *big.Int
}

// GenerateKeyPair samples two independent BitsBlumPrime-bit safe Blum
// primes and derives the Paillier key pair, redrawing q until it differs
// from p. It returns the sampler's error if the random source fails, and
// tss.ErrPrimeInvalid if φ has no inverse modulo N.
func GenerateKeyPair() (*PrivateKey, error) {
	p, err := sampling.BlumSafePrime(BitsBlumPrime)
	if err != nil {
		return nil, err
	}
	q, err := sampling.BlumSafePrime(BitsBlumPrime)
	if err != nil {
		return nil, err
	}
	for q.Cmp(p) == 0 {
		q, err = sampling.BlumSafePrime(BitsBlumPrime)
		if err != nil {
			return nil, err
		}
	}
	return newPrivateKey(p, q)
}

// FromPrimes builds a key pair from caller-supplied primes, validating
// the Blum-safe-prime contract. Safe-prime generation itself is
// specified only at the interface level (spec.md §1); this is the
// interface.
func FromPrimes(p, q *big.Int) (*PrivateKey, error) {
	if !isBlumSafe(p) || !isBlumSafe(q) {
		return nil, tss.ErrPrimeInvalid
	}
	return newPrivateKey(p, q)
}

func isBlumSafe(p *big.Int) bool {
	if p.BitLen() != BitsBlumPrime {
		return false
	}
	if !p.ProbablyPrime(40) {
		return false
	}
	mod4 := new(big.Int).Mod(p, big.NewInt(4))
	if mod4.Cmp(big.NewInt(3)) != 0 {
		return false
	}
	sophieGermain := new(big.Int).Sub(p, one)
	sophieGermain.Div(sophieGermain, big.NewInt(2))
	return sophieGermain.ProbablyPrime(40)
}

func newPrivateKey(p, q *big.Int) (*PrivateKey, error) {
	n := new(big.Int).Mul(p, q)
	n2 := new(big.Int).Mul(n, n)
	nPlus1 := new(big.Int).Add(n, one)

	pMinus1 := new(big.Int).Sub(p, one)
	qMinus1 := new(big.Int).Sub(q, one)
	phi := new(big.Int).Mul(pMinus1, qMinus1)

	phiInv := new(big.Int).ModInverse(phi, n)
	if phiInv == nil {
		return nil, tss.ErrPrimeInvalid
	}

	return &PrivateKey{
		PublicKey: PublicKey{N: n, N2: n2, NPlus1: nPlus1},
		P:         new(big.Int).Set(p),
		Q:         new(big.Int).Set(q),
		Phi:       phi,
		PhiInv:    phiInv,
	}, nil
}

// symmetricBound returns (N-1)/2, the plaintext range bound.
func (pk *PublicKey) symmetricBound() *big.Int {
	bound := new(big.Int).Sub(pk.N, one)
	return bound.Rsh(bound, 1)
}

// Encrypt samples fresh randomness rho in Z_N* and encrypts m, which
// must satisfy |m| <= (N-1)/2.
func (pk *PublicKey) Encrypt(m *big.Int) (c, rho *big.Int, err error) {
	rho, err = sampling.UnitModN(pk.N)
	if err != nil {
		return nil, nil, err
	}
	c, err = pk.EncryptWithNonce(m, rho)
	return c, rho, err
}

// EncryptWithNonce encrypts m using the supplied randomness rho, needed
// by the ZK proofs which must fix rho ahead of time. c = (N+1)^m * rho^N
// mod N^2.
func (pk *PublicKey) EncryptWithNonce(m, rho *big.Int) (*big.Int, error) {
	bound := pk.symmetricBound()
	if new(big.Int).Abs(m).Cmp(bound) == 1 {
		return nil, tss.ErrOutOfRange
	}
	mModN := new(big.Int).Mod(m, pk.N)

	gm := new(big.Int).Exp(pk.NPlus1, mModN, pk.N2)
	rn := new(big.Int).Exp(rho, pk.N, pk.N2)

	c := new(big.Int).Mul(gm, rn)
	c.Mod(c, pk.N2)
	return c, nil
}

// ValidateCiphertext checks that c lies in [1, N^2) and is coprime to
// N^2, the precondition every verifier must enforce before using an
// incoming ciphertext (spec.md §3 invariant, §7 ErrInvalidCiphertext).
func (pk *PublicKey) ValidateCiphertext(c *big.Int) error {
	if c == nil || c.Sign() <= 0 || c.Cmp(pk.N2) >= 0 {
		return tss.ErrInvalidCiphertext
	}
	if new(big.Int).GCD(nil, nil, c, pk.N2).Cmp(one) != 0 {
		return tss.ErrInvalidCiphertext
	}
	return nil
}

// Add returns a ciphertext encrypting the sum of c1 and c2's plaintexts.
func (pk *PublicKey) Add(c1, c2 *big.Int) *big.Int {
	c := new(big.Int).Mul(c1, c2)
	return c.Mod(c, pk.N2)
}

// MulConst returns a ciphertext encrypting k times c's plaintext.
func (pk *PublicKey) MulConst(c, k *big.Int) *big.Int {
	return new(big.Int).Exp(c, k, pk.N2)
}

// Decrypt recovers the plaintext of c, requiring gcd(c, N^2) = 1, and
// returns the representative in the symmetric range [-(N-1)/2, (N-1)/2].
func (priv *PrivateKey) Decrypt(c *big.Int) (*big.Int, error) {
	if err := priv.ValidateCiphertext(c); err != nil {
		return nil, err
	}

	u := new(big.Int).Exp(c, priv.Phi, priv.N2)
	l := new(big.Int).Sub(u, one)
	l.Div(l, priv.N)

	m := new(big.Int).Mul(l, priv.PhiInv)
	m.Mod(m, priv.N)

	bound := priv.symmetricBound()
	if m.Cmp(bound) == 1 {
		m.Sub(m, priv.N)
	}
	return m, nil
}
