package dlx

import (
	"reflect"
	"testing"
)

// buildSample constructs a tiny exact-cover instance:
//
//	col0 col1 col2
//	row0  X    X
//	row1       X    X
//	row2  X         X
//
// with 3 columns and 3 rows, enough to exercise cover/uncover and the
// header/data rings without being trivial.
func buildSample() (*Matrix, []int, []int) {
	m := New()
	cols := []int{m.CreateColumn(), m.CreateColumn(), m.CreateColumn()}
	rows := []int{
		m.CreateRow("row0"),
		m.CreateRow("row1"),
		m.CreateRow("row2"),
	}
	m.AddNode(rows[0], cols[0])
	m.AddNode(rows[0], cols[1])
	m.AddNode(rows[1], cols[1])
	m.AddNode(rows[1], cols[2])
	m.AddNode(rows[2], cols[0])
	m.AddNode(rows[2], cols[2])
	return m, cols, rows
}

func assertToroidal(t *testing.T, m *Matrix) {
	t.Helper()
	for i, n := range m.nodes {
		if m.nodes[n.left].right != i {
			t.Errorf("node %d: left.right = %d, want %d", i, m.nodes[n.left].right, i)
		}
		if m.nodes[n.right].left != i {
			t.Errorf("node %d: right.left = %d, want %d", i, m.nodes[n.right].left, i)
		}
		if m.nodes[n.up].down != i {
			t.Errorf("node %d: up.down = %d, want %d", i, m.nodes[n.up].down, i)
		}
		if m.nodes[n.down].up != i {
			t.Errorf("node %d: down.up = %d, want %d", i, m.nodes[n.down].up, i)
		}
	}
}

// assertLiveToroidal checks the same link invariant over the nodes that are
// still linked in: the root, the column headers on its left/right ring, every
// node on a live column's up/down ring, and the row headers still on the
// root's up/down ring. Nodes that Cover unlinked are not checked.
func assertLiveToroidal(t *testing.T, m *Matrix) {
	t.Helper()
	checkLR := func(i int) {
		n := m.nodes[i]
		if m.nodes[n.left].right != i {
			t.Errorf("node %d: left.right = %d, want %d", i, m.nodes[n.left].right, i)
		}
		if m.nodes[n.right].left != i {
			t.Errorf("node %d: right.left = %d, want %d", i, m.nodes[n.right].left, i)
		}
	}
	checkUD := func(i int) {
		n := m.nodes[i]
		if m.nodes[n.up].down != i {
			t.Errorf("node %d: up.down = %d, want %d", i, m.nodes[n.up].down, i)
		}
		if m.nodes[n.down].up != i {
			t.Errorf("node %d: down.up = %d, want %d", i, m.nodes[n.down].up, i)
		}
	}

	checkLR(Root)
	checkUD(Root)
	for col := m.nodes[Root].right; col != Root; col = m.nodes[col].right {
		checkLR(col)
		checkUD(col)
		for i := m.nodes[col].down; i != col; i = m.nodes[i].down {
			checkLR(i)
			checkUD(i)
		}
	}
	for row := m.nodes[Root].down; row != Root; row = m.nodes[row].down {
		checkLR(row)
		checkUD(row)
	}
}

func TestToroidalIntegrityAfterBuild(t *testing.T) {
	m, _, _ := buildSample()
	assertToroidal(t, m)
}

func TestCoverUncoverSymmetry(t *testing.T) {
	m, cols, _ := buildSample()

	for _, col := range cols {
		before := make([]node, len(m.nodes))
		copy(before, m.nodes)

		m.Cover(col)
		assertLiveToroidal(t, m) // ring stays consistent among remaining live nodes
		m.Uncover(col)

		if !reflect.DeepEqual(before, m.nodes) {
			t.Fatalf("cover/uncover of col %d is not bit-exact:\nbefore=%+v\nafter=%+v", col, before, m.nodes)
		}
		assertToroidal(t, m)
	}
}

func TestCoverUncoverSequence(t *testing.T) {
	m, cols, _ := buildSample()

	before := make([]node, len(m.nodes))
	copy(before, m.nodes)

	m.Cover(cols[0])
	m.Cover(cols[1])
	m.Uncover(cols[1])
	m.Uncover(cols[0])

	if !reflect.DeepEqual(before, m.nodes) {
		t.Fatalf("nested cover/uncover sequence is not bit-exact")
	}
}

func TestCountTracksColumnSize(t *testing.T) {
	m, cols, _ := buildSample()

	if got := m.Count(cols[0]); got != 2 {
		t.Fatalf("Count(cols[0]) = %d, want 2", got)
	}
	if got := m.Count(cols[1]); got != 2 {
		t.Fatalf("Count(cols[1]) = %d, want 2", got)
	}
	if got := m.Count(cols[2]); got != 2 {
		t.Fatalf("Count(cols[2]) = %d, want 2", got)
	}

	m.Cover(cols[0])
	if got := m.Count(cols[1]); got != 1 {
		t.Fatalf("after covering cols[0], Count(cols[1]) = %d, want 1", got)
	}
	if got := m.Count(cols[2]); got != 1 {
		t.Fatalf("after covering cols[0], Count(cols[2]) = %d, want 1", got)
	}
	m.Uncover(cols[0])
	if got := m.Count(cols[1]); got != 2 {
		t.Fatalf("after uncovering cols[0], Count(cols[1]) = %d, want 2", got)
	}
}

func TestSolvedReflectsRootRing(t *testing.T) {
	m := New()
	if !m.Solved() {
		t.Fatalf("empty matrix should report Solved")
	}
	col := m.CreateColumn()
	if m.Solved() {
		t.Fatalf("matrix with a live column should not report Solved")
	}
	m.Cover(col)
	if !m.Solved() {
		t.Fatalf("matrix should report Solved once its only column is covered")
	}
}

func TestIterRowAndIterCol(t *testing.T) {
	m, cols, rows := buildSample()

	row0Nodes := m.IterRow(rows[0])
	if len(row0Nodes) != 2 {
		t.Fatalf("row0 should have 2 data nodes, got %d", len(row0Nodes))
	}
	for _, n := range row0Nodes {
		if m.Col(n) != cols[0] && m.Col(n) != cols[1] {
			t.Errorf("row0 node in unexpected column %d", m.Col(n))
		}
	}

	col1Nodes := m.IterCol(cols[1])
	if len(col1Nodes) != 2 {
		t.Fatalf("col1 should have 2 data nodes, got %d", len(col1Nodes))
	}
}

func TestRowBackPointer(t *testing.T) {
	m, cols, rows := buildSample()

	for _, n := range m.IterCol(cols[1]) {
		switch m.Row(n) {
		case rows[0], rows[1]:
		default:
			t.Errorf("node %d in col1 has unexpected row back-pointer %d", n, m.Row(n))
		}
	}
}

func TestSymbolRoundTrip(t *testing.T) {
	m, _, rows := buildSample()
	if got := m.Symbol(rows[0]); got != "row0" {
		t.Fatalf("Symbol(rows[0]) = %v, want row0", got)
	}
}
