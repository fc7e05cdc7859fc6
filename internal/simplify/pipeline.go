// Package simplify implements the algebraic normalization pass pipeline
// (spec.md §4.5): constant folding, canonical rebuild, and
// assumption-guarded logarithm/radical/trigonometry identities, iterated
// to a digest-tracked fixpoint.
package simplify

import "symmetrica/internal/kernel"

// Pass is a single rewrite rule applied to one already-canonical
// expression node. It mirrors the teacher's OptimizationPass shape
// (Name/Description/Apply-returns-changed) generalized from mutating an
// IR program in place to returning a new, possibly identical, ExprId.
type Pass interface {
	Name() string
	Description() string
	Apply(s *kernel.Store, id kernel.ExprId, ctx kernel.Assumptions) (kernel.ExprId, bool, error)
}

// Pipeline runs an ordered sequence of Passes, bottom-up, to a fixpoint.
type Pipeline struct {
	passes []Pass
}

// NewPipeline builds the default pipeline in the order spec.md §4.5 lists:
// constant fold, canonical rebuild, guarded log rules, radical rules,
// trig identities.
func NewPipeline() *Pipeline {
	p := &Pipeline{}
	p.AddPass(ConstantFold{})
	p.AddPass(LogRules{})
	p.AddPass(RadicalRules{})
	p.AddPass(TrigRules{})
	return p
}

// AddPass appends a pass to the pipeline.
func (p *Pipeline) AddPass(pass Pass) {
	p.passes = append(p.passes, pass)
}

// Run simplifies id to a fixpoint under ctx (which may be nil, meaning no
// assumption context is available). It applies every pass bottom-up on
// each iteration, rebuilding parents via the canonical constructors so
// structural identities re-fire as children change, then repeats until no
// pass reports a change or the cycle guard (spec.md §4.5 item 6) detects a
// repeated digest, in which case it returns the smallest visited form.
func (p *Pipeline) Run(s *kernel.Store, id kernel.ExprId, ctx kernel.Assumptions) (kernel.ExprId, error) {
	guard := newCycleGuard(s)
	guard.record(id)
	current := id
	for {
		next, changed, err := p.runOnce(s, current, ctx)
		if err != nil {
			return kernel.Invalid, err
		}
		if !changed {
			return next, nil
		}
		if guard.seen(next) {
			return guard.smallest(), nil
		}
		guard.record(next)
		current = next
	}
}

// runOnce applies every pass once, bottom-up: children first (each child
// gets one recursive runOnce, not its own fixpoint), then each top-level
// pass against the rebuilt node.
func (p *Pipeline) runOnce(s *kernel.Store, id kernel.ExprId, ctx kernel.Assumptions) (kernel.ExprId, bool, error) {
	rebuilt, childrenChanged, err := p.rewriteChildren(s, id, ctx)
	if err != nil {
		return kernel.Invalid, false, err
	}
	current := rebuilt
	anyChanged := childrenChanged
	for _, pass := range p.passes {
		next, changed, err := pass.Apply(s, current, ctx)
		if err != nil {
			return kernel.Invalid, false, err
		}
		if changed {
			anyChanged = true
			current = next
		}
	}
	return current, anyChanged, nil
}

// rewriteChildren recursively simplifies every child of id, then rebuilds
// id from the (possibly new) children via the store's canonical
// constructors, so like-term collection and power merging re-fire bottom
// up without this package ever mutating an existing node.
func (p *Pipeline) rewriteChildren(s *kernel.Store, id kernel.ExprId, ctx kernel.Assumptions) (kernel.ExprId, bool, error) {
	children := s.Children(id)
	if len(children) == 0 {
		return id, false, nil
	}
	newChildren := make([]kernel.ExprId, len(children))
	changed := false
	for i, c := range children {
		nc, cChanged, err := p.runOnce(s, c, ctx)
		if err != nil {
			return kernel.Invalid, false, err
		}
		newChildren[i] = nc
		if cChanged || nc != c {
			changed = true
		}
	}
	if !changed {
		return id, false, nil
	}
	rebuilt, err := rebuild(s, id, newChildren, ctx)
	if err != nil {
		return kernel.Invalid, false, err
	}
	return rebuilt, rebuilt != id, nil
}
