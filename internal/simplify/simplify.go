package simplify

import "symmetrica/internal/kernel"

var defaultPipeline = NewPipeline()

// Simplify reduces id to the default pipeline's fixpoint with no
// assumption context, memoizing the result per spec.md §9's memoization
// policy. Repeated calls on the same ExprId are O(1) after the first.
func Simplify(s *kernel.Store, id kernel.ExprId) (kernel.ExprId, error) {
	if cached, ok := s.SimplifyMemoGet(id); ok {
		return cached, nil
	}
	result, err := defaultPipeline.Run(s, id, nil)
	if err != nil {
		return kernel.Invalid, err
	}
	s.SimplifyMemoPut(id, result)
	return result, nil
}

// SimplifyWith reduces id to the default pipeline's fixpoint under ctx.
// Context-gated results are not cached in the store's simplify memo
// table (which is keyed only by ExprId, per spec.md's "memoization key"
// note, with no room for a context discriminator): caching here would
// silently return a stale result if the same ExprId were later
// simplified under a different context.
func SimplifyWith(s *kernel.Store, id kernel.ExprId, ctx kernel.Assumptions) (kernel.ExprId, error) {
	if ctx == nil {
		return Simplify(s, id)
	}
	return defaultPipeline.Run(s, id, ctx)
}
