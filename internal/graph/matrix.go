package graph

// connMatrix is a dense NxN adjacency-membership bit matrix. It exists only
// for the duration of synthesis and repair; the long-lived Network keeps
// adjacency lists instead.
type connMatrix struct {
	n    int
	bits []uint64
}

func newConnMatrix(n int) *connMatrix {
	words := (n*n + 63) / 64
	return &connMatrix{n: n, bits: make([]uint64, words)}
}

func (m *connMatrix) idx(i, j int) (int, uint64) {
	k := i*m.n + j
	return k >> 6, 1 << uint(k&63)
}

// set marks i and j as connected, symmetrically.
func (m *connMatrix) set(i, j int) {
	w, bit := m.idx(i, j)
	m.bits[w] |= bit
	w, bit = m.idx(j, i)
	m.bits[w] |= bit
}

// clear removes the connection mark, symmetrically.
func (m *connMatrix) clear(i, j int) {
	w, bit := m.idx(i, j)
	m.bits[w] &^= bit
	w, bit = m.idx(j, i)
	m.bits[w] &^= bit
}

func (m *connMatrix) connected(i, j int) bool {
	w, bit := m.idx(i, j)
	return m.bits[w]&bit != 0
}
