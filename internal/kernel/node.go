package kernel

import (
	"strings"

	"symmetrica/internal/rational"
)

// Node is the immutable record associated with each ExprId.
type Node struct {
	Op       Op
	IntVal   int64        // valid when Op == OpInteger
	RatVal   rational.Q   // valid when Op == OpRational
	Name     string       // valid when Op == OpSymbol or OpFunction
	Children []ExprId     // Pow: [base, exp]; Function: args; Piecewise: flattened [cond, val]...; Add/Mul: operands
	Digest   Digest
}

// Store is a process-bounded, single-owner arena for interned nodes. It
// owns every Node; an ExprId is a non-owning back-reference valid only
// for the Store that produced it.
type Store struct {
	nodes  []Node
	lookup map[string]ExprId

	// Private per-store memoization tables, keyed by ExprId (+ extra key
	// when relevant). They are not part of the interning contract and
	// never affect equality/digest.
	simplifyMemo map[ExprId]ExprId
	diffMemo     map[diffKey]ExprId
	integrMemo   map[diffKey]*ExprId // nil entry recorded via pointer so "no antiderivative" can be cached too
	substMemo    map[substKey]ExprId
}

type diffKey struct {
	id  ExprId
	ctx string // variable name, or other discriminator
}

type substKey struct {
	id    ExprId
	name  string
	value ExprId
}

// NewStore returns an empty store. All ExprIds it produces are valid for
// the store's lifetime; cross-store use of an ExprId is a caller error.
func NewStore() *Store {
	return &Store{
		lookup:       make(map[string]ExprId),
		simplifyMemo: make(map[ExprId]ExprId),
		diffMemo:     make(map[diffKey]ExprId),
		integrMemo:   make(map[diffKey]*ExprId),
		substMemo:    make(map[substKey]ExprId),
	}
}

// Node returns the node for id. Callers must only pass IDs produced by
// this store.
func (s *Store) Node(id ExprId) Node { return s.nodes[id] }

// NodeCount returns the number of interned nodes, usable as a crude size
// metric (e.g. by the simplifier's cycle guard).
func (s *Store) NodeCount() int { return len(s.nodes) }

// Op is a convenience accessor.
func (s *Store) Op(id ExprId) Op { return s.nodes[id].Op }

// Children is a convenience accessor.
func (s *Store) Children(id ExprId) []ExprId { return s.nodes[id].Children }

// Digest returns the structural digest of id.
func (s *Store) Digest(id ExprId) Digest { return s.nodes[id].Digest }

// intern looks up (op, payload, children) in the dedup table, returning
// the existing ExprId if present, otherwise appending a freshly digested
// node and returning its new ID. This is the sole place new nodes are
// created, guaranteeing invariant 1 (uniqueness).
func (s *Store) intern(op Op, intVal int64, ratVal rational.Q, name string, children []ExprId) ExprId {
	key := internKey(op, intVal, ratVal, name, children)
	if id, ok := s.lookup[key]; ok {
		return id
	}
	digest := computeDigest(op, intVal, ratVal, name, children, func(c ExprId) Digest { return s.nodes[c].Digest })
	id := ExprId(len(s.nodes))
	s.nodes = append(s.nodes, Node{
		Op:       op,
		IntVal:   intVal,
		RatVal:   ratVal,
		Name:     name,
		Children: children,
		Digest:   digest,
	})
	s.lookup[key] = id
	return id
}

func internKey(op Op, intVal int64, ratVal rational.Q, name string, children []ExprId) string {
	var b strings.Builder
	b.WriteByte(byte(op))
	b.WriteByte('|')
	switch op {
	case OpInteger:
		writeInt(&b, intVal)
	case OpRational:
		writeInt(&b, ratVal.Numer)
		b.WriteByte('/')
		writeInt(&b, ratVal.Denom)
	case OpSymbol, OpFunction:
		b.WriteString(name)
	}
	b.WriteByte('|')
	for i, c := range children {
		if i > 0 {
			b.WriteByte(',')
		}
		writeInt(&b, int64(c))
	}
	return b.String()
}

func writeInt(b *strings.Builder, v int64) {
	if v < 0 {
		b.WriteByte('-')
		v = -v
	}
	if v == 0 {
		b.WriteByte('0')
		return
	}
	var digits [20]byte
	i := len(digits)
	for v > 0 {
		i--
		digits[i] = byte('0' + v%10)
		v /= 10
	}
	b.Write(digits[i:])
}

// Equal reports whether a and b are the same ExprId (hash-consing makes
// this equivalent to structural equality within one store).
func Equal(a, b ExprId) bool { return a == b }
