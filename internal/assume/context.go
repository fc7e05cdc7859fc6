// Package assume implements Symmetrica's assumption context: a
// caller-constructed, read-only side-input mapping symbol names to sets
// of propositional properties, queried with three-valued logic.
//
// Grounded on the teacher's internal/semantic.ContextRegistry /
// internal/types.TypeRegistry shape: a small registry object built once
// by the caller and threaded explicitly into the passes that need it,
// never a package-level singleton (spec.md §9 "Global mutable state").
package assume

import "symmetrica/internal/kernel"

// Property is one of the fixed propositional properties a symbol can be
// assumed to have.
type Property int

const (
	Positive Property = iota
	Nonnegative
	Negative
	Nonpositive
	Real
	Integer
	Rational
	Nonzero
)

// Truth is a three-valued logic result.
type Truth int

const (
	Unknown Truth = iota
	True
	False
)

// Not flips a definite truth value; Unknown stays Unknown.
func (t Truth) Not() Truth {
	switch t {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}

// Context holds the assumed properties for each named symbol. The zero
// value is usable (an empty context, under which every query but the
// vacuous ones returns Unknown).
type Context struct {
	props map[string]map[Property]bool
}

// NewContext creates a new, empty assumption context.
func NewContext() *Context {
	return &Context{props: make(map[string]map[Property]bool)}
}

// Assume records that symbol name has property p, along with its
// immediate logical implications (spec.md §4.3: "Positive ⇒ Nonnegative ∧
// Real ∧ Nonzero").
func (c *Context) Assume(name string, p Property) {
	if c.props == nil {
		c.props = make(map[string]map[Property]bool)
	}
	set := c.props[name]
	if set == nil {
		set = make(map[Property]bool)
		c.props[name] = set
	}
	set[p] = true
	for _, implied := range implications(p) {
		set[implied] = true
	}
}

// implications returns the properties p unconditionally entails.
func implications(p Property) []Property {
	switch p {
	case Positive:
		return []Property{Nonnegative, Real, Nonzero}
	case Negative:
		return []Property{Nonpositive, Real, Nonzero}
	case Nonnegative:
		return []Property{Real}
	case Nonpositive:
		return []Property{Real}
	case Integer:
		return []Property{Rational, Real}
	case Rational:
		return []Property{Real}
	case Nonzero:
		return nil
	case Real:
		return nil
	default:
		return nil
	}
}

// Query reports the three-valued truth of "symbol name has property p".
func (c *Context) Query(name string, p Property) Truth {
	set := c.props[name]
	if set == nil {
		return Unknown
	}
	if set[p] {
		return True
	}
	// A handful of properties are decidable as False from their
	// complements even though we only ever record positive facts.
	switch p {
	case Positive:
		if set[Negative] || set[Nonpositive] {
			return False
		}
	case Negative:
		if set[Positive] || set[Nonnegative] {
			return False
		}
	case Nonzero:
		// nothing recorded implies zero explicitly; stays Unknown
	}
	return Unknown
}

// IsPositive implements kernel.Assumptions, letting internal/kernel's Pow
// constructor consult this context without kernel importing assume.
func (c *Context) IsPositive(s *kernel.Store, id kernel.ExprId) bool {
	return Positivity(c, s, id) == True
}
