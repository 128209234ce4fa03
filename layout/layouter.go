package layout

import "context"

// Layouter decouples consumers of computed node positions from the concrete
// embedder, e.g. for mocking the (potentially slow) layout computation in
// tests of calling code.
//
//go:generate mockgen -destination layout_mock.go -package layout . Layouter
type Layouter interface {
	ComputeLayout(context.Context, *Graph) (map[string]Point, Stats)
}
