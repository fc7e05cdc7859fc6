package kernel

import "symmetrica/internal/rational"

// Digest is a 64-bit structural hash. Two nodes with identical
// (op, payload, children) always yield identical digests; the combiner
// below is a pure function of its inputs (FNV-1a derived, fixed offset
// basis) rather than a process-seeded hash, so digests are stable across
// runs — useful for golden tests and for the cycle guard in
// internal/simplify, which tracks digests across fixpoint iterations.
type Digest uint64

const (
	fnvOffset Digest = 14695981039346656037
	fnvPrime  Digest = 1099511628211
)

func hashByte(h Digest, b byte) Digest {
	h ^= Digest(b)
	h *= fnvPrime
	return h
}

func hashBytes(h Digest, bs []byte) Digest {
	for _, b := range bs {
		h = hashByte(h, b)
	}
	return h
}

func hashString(h Digest, s string) Digest {
	return hashBytes(h, []byte(s))
}

func hashUint64(h Digest, v uint64) Digest {
	for i := 0; i < 8; i++ {
		h = hashByte(h, byte(v))
		v >>= 8
	}
	return h
}

func hashInt64(h Digest, v int64) Digest { return hashUint64(h, uint64(v)) }

// computeDigest derives a node's digest from its already-finalized
// payload and the (already-interned, already-digested) children.
func computeDigest(op Op, intVal int64, ratVal rational.Q, name string, children []ExprId, childDigest func(ExprId) Digest) Digest {
	h := fnvOffset
	h = hashByte(h, byte(op))
	switch op {
	case OpInteger:
		h = hashInt64(h, intVal)
	case OpRational:
		h = hashInt64(h, ratVal.Numer)
		h = hashInt64(h, ratVal.Denom)
	case OpSymbol, OpFunction:
		h = hashString(h, name)
	}
	h = hashUint64(h, uint64(len(children)))
	for _, c := range children {
		h = hashUint64(h, uint64(childDigest(c)))
	}
	return h
}
