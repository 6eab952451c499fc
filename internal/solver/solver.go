// Package solver implements the recursive exact-cover search of spec §4.5:
// minimum-column-count heuristic, cover/uncover discipline, and hooks into
// the incremental validator for constraints the matrix cannot express.
package solver

import (
	"shift-scheduler/internal/core"
	"shift-scheduler/internal/dlx"
	"shift-scheduler/internal/domain"
	"shift-scheduler/internal/validator"
)

// Solve searches m for an exact cover, consulting v to reject candidate
// rows that violate a relational constraint. On success it returns the
// accepted symbols in the order they were applied; on failure, m and v are
// restored to their pre-call state and ok is false. logger receives a trace
// entry per column selection (depth, chosen column, live-row count) when its
// level is at or below trace; at any other level the cost is a single
// Enabled check per recursive call.
func Solve(m *dlx.Matrix, v *validator.Validator, logger *core.Logger) (symbols []domain.Symbol, ok bool) {
	return solve(m, v, logger, 0)
}

func solve(m *dlx.Matrix, v *validator.Validator, logger *core.Logger, depth int) (symbols []domain.Symbol, ok bool) {
	if m.Solved() {
		return nil, true
	}

	col := selectColumn(m)
	if logger.Enabled(core.LogLevelTrace) {
		logger.WithFields(map[string]interface{}{
			"depth":  depth,
			"column": col,
			"count":  m.Count(col),
		}).Trace("selecting column")
	}
	m.Cover(col)

	for r := m.Down(col); r != col; r = m.Down(r) {
		sym := m.Symbol(m.Row(r)).(domain.Symbol)

		if !v.Validate(sym) {
			continue
		}

		v.Apply(sym)
		coverRow(m, r)

		if rest, solved := solve(m, v, logger, depth+1); solved {
			return append([]domain.Symbol{sym}, rest...), true
		}

		uncoverRow(m, r)
		v.Restore(sym)
	}

	m.Uncover(col)
	return nil, false
}

// selectColumn applies Knuth's S heuristic: the live column with the
// smallest count, first-encountered tie-break in L->R ring order.
func selectColumn(m *dlx.Matrix) int {
	best := m.FirstColumn()
	bestCount := m.Count(best)
	for col := m.NextColumn(best); col != dlx.Root; col = m.NextColumn(col) {
		if c := m.Count(col); c < bestCount {
			best, bestCount = col, c
		}
	}
	return best
}

// coverRow covers the column of every data node in r's row other than r
// itself. The row header also sits on the row's ring and is skipped: it
// belongs to no column. The next pointer is read after each cover, which is
// safe because Cover never changes left/right links.
func coverRow(m *dlx.Matrix, r int) {
	header := m.Row(r)
	for j := m.Right(r); j != r; j = m.Right(j) {
		if j == header {
			continue
		}
		m.Cover(m.Col(j))
	}
}

// uncoverRow is coverRow's exact inverse: reverse ring order, each column
// uncovered before moving to the previous node, the row header skipped.
func uncoverRow(m *dlx.Matrix, r int) {
	header := m.Row(r)
	for j := m.Left(r); j != r; j = m.Left(j) {
		if j == header {
			continue
		}
		m.Uncover(m.Col(j))
	}
}

