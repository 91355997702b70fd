package automaton

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/sync/errgroup"
)

// MinimizeParallel
// Minimizes the given automaton with a data-parallel formulation of Hopcroft's partition refinement, using up
// to workers goroutines (runtime.GOMAXPROCS(0) when workers <= 0). The input must be valid (see Validate);
// unreachable states are removed first.
//
// For every splitter block, the preimage of the block is computed for all labels concurrently over chunks
// of states; then, one label at a time, every block the preimage splits is split concurrently. The result
// is identical to Minimize's whatever the scheduling.
func MinimizeParallel(a *Automaton, workers int) (*Automaton, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	trimmed := RemoveUnreachable(a)

	r := newParallelRefiner(trimmed, workers)
	if err := r.refine(); err != nil {
		return nil, err
	}
	result, _ := quotient(trimmed, r.blockIDs(), int(r.nextBlock.Load()), -1)
	return RemoveUnreachable(result), nil
}

type parallelRefiner struct {
	a       *Automaton
	workers int

	// Block id of every state.
	blockOf []atomic.Int32

	// Size of every block id; a split updates the sizes of its own two blocks only.
	size []int32

	nextBlock atomic.Int32

	worklist *blockWorklist

	// States per goroutine when scanning; a multiple of 64 so that goroutines never write the same
	// bitset word.
	chunk int
}

func newParallelRefiner(a *Automaton, workers int) *parallelRefiner {
	n := a.GetNumStates()
	r := &parallelRefiner{
		a:        a,
		workers:  workers,
		blockOf:  make([]atomic.Int32, n),
		size:     make([]int32, n),
		worklist: newBlockWorklist(n),
	}

	chunk := (n + workers - 1) / workers
	r.chunk = max((chunk+63)&^63, 64)

	accepting := int32(-1)
	rejecting := int32(-1)
	for s := 0; s < n; s++ {
		id := &rejecting
		if a.IsAccept(s) {
			id = &accepting
		}
		if *id < 0 {
			*id = r.nextBlock.Add(1) - 1
			r.worklist.push(*id)
		}
		r.blockOf[s].Store(*id)
		r.size[*id]++
	}
	return r
}

func (r *parallelRefiner) refine() error {
	n := r.a.GetNumStates()
	k := len(r.a.alphabet)

	splitter := bitset.New(uint(n))
	preimages := make([]*bitset.BitSet, k)
	for column := range preimages {
		preimages[column] = bitset.New(uint(n))
	}

	for {
		A, ok := r.worklist.pop()
		if !ok {
			return nil
		}

		splitter.ClearAll()
		for s := 0; s < n; s++ {
			if r.blockOf[s].Load() == A {
				splitter.Set(uint(s))
			}
		}

		var g errgroup.Group
		g.SetLimit(r.workers)
		for column := 0; column < k; column++ {
			preimage := preimages[column]
			preimage.ClearAll()
			for lo := 0; lo < n; lo += r.chunk {
				hi := min(lo+r.chunk, n)
				g.Go(func() error {
					for s := lo; s < hi; s++ {
						if splitter.Test(uint(r.a.step(s, column))) {
							preimage.Set(uint(s))
						}
					}
					return nil
				})
			}
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for column := 0; column < k; column++ {
			if err := r.splitBy(preimages[column]); err != nil {
				return err
			}
		}
	}
}

// splitBy Splits every block that preimage cuts in two, one goroutine per block.
func (r *parallelRefiner) splitBy(preimage *bitset.BitSet) error {
	if preimage.None() {
		return nil
	}

	marked := make(map[int32][]int)
	order := make([]int32, 0)
	for s, ok := preimage.NextSet(0); ok; s, ok = preimage.NextSet(s + 1) {
		b := r.blockOf[s].Load()
		if _, seen := marked[b]; !seen {
			order = append(order, b)
		}
		marked[b] = append(marked[b], int(s))
	}

	var g errgroup.Group
	g.SetLimit(r.workers)
	for _, b := range order {
		states := marked[b]
		if int32(len(states)) == r.size[b] {
			continue
		}
		g.Go(func() error {
			return r.split(b, states)
		})
	}
	return g.Wait()
}

// split Moves states out of block b into a fresh block.
func (r *parallelRefiner) split(b int32, states []int) error {
	fresh := r.nextBlock.Add(1) - 1
	for _, s := range states {
		if !r.blockOf[s].CompareAndSwap(b, fresh) {
			return fmt.Errorf("automaton: state %d left block %d during split", s, b)
		}
	}
	r.size[fresh] = int32(len(states))
	r.size[b] -= int32(len(states))
	r.worklist.update(b, fresh, r.size[fresh] <= r.size[b])
	return nil
}

func (r *parallelRefiner) blockIDs() []int {
	ids := make([]int, len(r.blockOf))
	for s := range ids {
		ids[s] = int(r.blockOf[s].Load())
	}
	return ids
}

// blockWorklist A set of block ids pending use as splitters, safe for concurrent use.
type blockWorklist struct {
	mu      sync.Mutex
	items   []int32
	pending []bool
}

func newBlockWorklist(n int) *blockWorklist {
	return &blockWorklist{
		items:   make([]int32, 0, n),
		pending: make([]bool, n),
	}
}

func (w *blockWorklist) push(b int32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.add(b)
}

func (w *blockWorklist) add(b int32) {
	if !w.pending[b] {
		w.pending[b] = true
		w.items = append(w.items, b)
	}
}

func (w *blockWorklist) pop() (int32, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.items) == 0 {
		return 0, false
	}
	b := w.items[len(w.items)-1]
	w.items = w.items[:len(w.items)-1]
	w.pending[b] = false
	return b, true
}

// update Records that block old was split off into fresh. If old is pending both halves are; otherwise
// only the smaller half is queued.
func (w *blockWorklist) update(old, fresh int32, freshSmaller bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending[old] || freshSmaller {
		w.add(fresh)
	} else {
		w.add(old)
	}
}
