/*
File    : kube-interpreter/ast/pool.go
*/
package ast

import (
	"sync"

	"github.com/akashmaji946/kube-interpreter/token"
)

// Pool is a process-wide, concurrency-safe arena for Node allocation.
// A single Pool is shared by every parse worker in a pipeline run;
// nodes are bulk-released when the run ends by simply dropping the
// Pool, avoiding per-node heap bookkeeping (spec section 9: "an arena
// (bump allocator) per run ... avoids per-node heap cost and enables
// bulk release at run end").
type Pool struct {
	mu    sync.Mutex
	slabs [][]Node
	slab  []Node
	next  int
}

// slabSize is the number of Nodes allocated per underlying slice grown
// by the pool; it amortizes the cost of the mutex-guarded bump.
const slabSize = 256

// NewPool returns an empty Pool ready for concurrent use.
func NewPool() *Pool {
	return &Pool{}
}

// New allocates a zeroed Node from the pool and returns a pointer to it.
// Safe for concurrent use by multiple parse workers within a wave.
func (p *Pool) New() *Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.slab == nil || p.next >= len(p.slab) {
		p.slab = make([]Node, slabSize)
		p.slabs = append(p.slabs, p.slab)
		p.next = 0
	}
	n := &p.slab[p.next]
	p.next++
	return n
}

// NewNode allocates a node from the pool and initializes its type,
// originating token and literal in one call.
func (p *Pool) NewNode(typ NodeType, tok token.Token, literal []byte) *Node {
	n := p.New()
	n.Type = typ
	n.Tok = tok
	n.Literal = literal
	return n
}
