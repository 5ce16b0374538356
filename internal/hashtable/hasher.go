package hashtable

import (
	"math"

	"github.com/bifrost-labs/bifrost/internal/relation"
)

// Hasher maps a cell value to a 64-bit hash. Implementations must be
// deterministic within a process run, and two values that compare equal
// must hash equal. The null cell hashes to a fixed sentinel (0).
//
// The set of hashers is closed: ValueHasher is the default and
// Murmur3Hasher is the seeded alternative used for strategy comparisons.
type Hasher interface {
	Hash(v relation.Value) uint64
	Name() string
}

// fnv-1a over a byte string.
const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

func fnv1a(s string) uint64 {
	h := uint64(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime
	}
	return h
}

// mix64 is the splitmix64 finalizer, applied to scalar payloads so that
// nearly-sequential keys still spread across buckets.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// floatBits returns the hashable bit pattern of f with negative zero
// canonicalised to positive zero.
func floatBits(f float64) uint64 {
	if f == 0 {
		f = 0
	}
	return math.Float64bits(f)
}

// ValueHasher is the default hasher: a per-variant hash over the value
// model. Null hashes to 0, scalars through a 64-bit mixer, text through
// FNV-1a.
type ValueHasher struct{}

// Hash implements Hasher.
func (ValueHasher) Hash(v relation.Value) uint64 {
	switch v.Kind() {
	case relation.KindNull:
		return 0
	case relation.KindInt:
		return mix64(uint64(v.Int()))
	case relation.KindFloat:
		return mix64(floatBits(v.Float()))
	case relation.KindText:
		return fnv1a(v.Text())
	default:
		return 0
	}
}

// Name implements Hasher.
func (ValueHasher) Name() string {
	return "ValueHasher"
}

// Murmur3Hasher is the alternative hasher: MurmurHash3's 64-bit
// finalisation over the payload, with a caller-chosen seed. Useful for
// checking that bucket statistics are not an artifact of one hash
// function.
type Murmur3Hasher struct {
	Seed uint64
}

const (
	murmurC1 = 0x87c37b91114253d5
	murmurC2 = 0x4cf5ad432745937f
)

func murmurFmix(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afc6ce793a85
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33
	return k
}

func murmurBlock(h, k uint64) uint64 {
	k *= murmurC1
	k = k<<31 | k>>33
	k *= murmurC2
	h ^= k
	h = h<<27 | h>>37
	return h*5 + 0x52dce729
}

func (m Murmur3Hasher) hashBytes(data string) uint64 {
	h := m.Seed
	i := 0
	for ; i+8 <= len(data); i += 8 {
		var k uint64
		for j := 7; j >= 0; j-- {
			k = k<<8 | uint64(data[i+j])
		}
		h = murmurBlock(h, k)
	}
	var tail uint64
	for j := len(data) - 1; j >= i; j-- {
		tail = tail<<8 | uint64(data[j])
	}
	if len(data) > i {
		tail *= murmurC1
		tail = tail<<31 | tail>>33
		tail *= murmurC2
		h ^= tail
	}
	h ^= uint64(len(data))
	return murmurFmix(h)
}

func (m Murmur3Hasher) hashScalar(bits uint64) uint64 {
	h := murmurBlock(m.Seed, bits)
	h ^= 8
	return murmurFmix(h)
}

// Hash implements Hasher.
func (m Murmur3Hasher) Hash(v relation.Value) uint64 {
	switch v.Kind() {
	case relation.KindNull:
		return 0
	case relation.KindInt:
		return m.hashScalar(uint64(v.Int()))
	case relation.KindFloat:
		return m.hashScalar(floatBits(v.Float()))
	case relation.KindText:
		return m.hashBytes(v.Text())
	default:
		return 0
	}
}

// Name implements Hasher.
func (m Murmur3Hasher) Name() string {
	return "MurmurHash3"
}

// HasherByName resolves a configured hasher name. Unknown names fall
// back to the default ValueHasher.
func HasherByName(name string) Hasher {
	switch name {
	case "murmur", "murmur3":
		return Murmur3Hasher{Seed: 42}
	default:
		return ValueHasher{}
	}
}
