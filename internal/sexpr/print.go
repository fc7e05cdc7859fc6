package sexpr

import (
	"strconv"
	"strings"

	"symmetrica/internal/kernel"
)

// Print renders id as a canonical S-expression, the inverse of Parse:
// Parse(store, Print(store, id)) reconstructs the identical ExprId for
// any expression built by the canonical constructors (spec.md §6).
func Print(store *kernel.Store, id kernel.ExprId) string {
	var b strings.Builder
	print(store, &b, id)
	return b.String()
}

func print(store *kernel.Store, b *strings.Builder, id kernel.ExprId) {
	n := store.Node(id)
	switch n.Op {
	case kernel.OpInteger:
		b.WriteString("(int ")
		b.WriteString(strconv.FormatInt(n.IntVal, 10))
		b.WriteByte(')')
	case kernel.OpRational:
		b.WriteString("(rat ")
		b.WriteString(strconv.FormatInt(n.RatVal.Numer, 10))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatInt(n.RatVal.Denom, 10))
		b.WriteByte(')')
	case kernel.OpSymbol:
		b.WriteString("(sym ")
		b.WriteString(n.Name)
		b.WriteByte(')')
	case kernel.OpAdd:
		printList(store, b, "add", n.Children)
	case kernel.OpMul:
		printList(store, b, "mul", n.Children)
	case kernel.OpPow:
		b.WriteString("(pow ")
		print(store, b, n.Children[0])
		b.WriteByte(' ')
		print(store, b, n.Children[1])
		b.WriteByte(')')
	case kernel.OpFunction:
		b.WriteString("(func ")
		b.WriteString(n.Name)
		for _, c := range n.Children {
			b.WriteByte(' ')
			print(store, b, c)
		}
		b.WriteByte(')')
	case kernel.OpPiecewise:
		b.WriteString("(piecewise")
		for _, p := range store.PiecewisePairs(id) {
			b.WriteString(" (")
			print(store, b, p[0])
			b.WriteByte(' ')
			print(store, b, p[1])
			b.WriteByte(')')
		}
		b.WriteByte(')')
	}
}

func printList(store *kernel.Store, b *strings.Builder, keyword string, children []kernel.ExprId) {
	b.WriteByte('(')
	b.WriteString(keyword)
	for _, c := range children {
		b.WriteByte(' ')
		print(store, b, c)
	}
	b.WriteByte(')')
}
