package automaton

// partition A refinable partition of the states 0..n-1. Every block is a contiguous range of elems;
// blockOf maps a state to its block id and loc to its position in elems. Within a block, the marked
// states occupy elems[first:mid].
type partition struct {
	elems   []int
	loc     []int
	blockOf []int

	first []int
	end   []int
	mid   []int
}

// newPartition Creates the initial partition of a: accept states first, then the rest. Empty
// blocks are omitted, so a partition of a non-empty automaton has one or two blocks.
func newPartition(a *Automaton) *partition {
	n := a.GetNumStates()
	p := &partition{
		elems:   make([]int, 0, n),
		loc:     make([]int, n),
		blockOf: make([]int, n),
	}
	for s := 0; s < n; s++ {
		if a.IsAccept(s) {
			p.elems = append(p.elems, s)
		}
	}
	accepting := len(p.elems)
	for s := 0; s < n; s++ {
		if !a.IsAccept(s) {
			p.elems = append(p.elems, s)
		}
	}
	for i, s := range p.elems {
		p.loc[s] = i
	}
	if accepting > 0 {
		p.addBlock(0, accepting)
	}
	if accepting < n {
		p.addBlock(accepting, n)
	}
	return p
}

func (p *partition) addBlock(first, end int) int {
	b := len(p.first)
	p.first = append(p.first, first)
	p.end = append(p.end, end)
	p.mid = append(p.mid, first)
	for i := first; i < end; i++ {
		p.blockOf[p.elems[i]] = b
	}
	return b
}

func (p *partition) numBlocks() int {
	return len(p.first)
}

func (p *partition) size(b int) int {
	return p.end[b] - p.first[b]
}

// members Returns the states of block b. The slice aliases internal storage and is reordered by mark.
func (p *partition) members(b int) []int {
	return p.elems[p.first[b]:p.end[b]]
}

// mark Marks state s. Returns true if s is the first state marked in its block since the last split.
func (p *partition) mark(s int) bool {
	b := p.blockOf[s]
	i := p.loc[s]
	m := p.mid[b]
	if i < m {
		return false
	}
	other := p.elems[m]
	p.elems[i], p.elems[m] = other, s
	p.loc[other], p.loc[s] = i, m
	p.mid[b]++
	return m == p.first[b]
}

// split Moves the marked states of b into a new block and returns its id, or -1 if every state of b
// was marked. Either way b has no marked states afterwards.
func (p *partition) split(b int) int {
	if p.mid[b] == p.end[b] {
		p.mid[b] = p.first[b]
		return -1
	}
	nb := p.addBlock(p.first[b], p.mid[b])
	p.first[b] = p.mid[b]
	return nb
}

// blocks Returns the members of every block, in block id order.
func (p *partition) blocks() [][]int {
	result := make([][]int, p.numBlocks())
	for b := range result {
		result[b] = append([]int(nil), p.members(b)...)
	}
	return result
}
