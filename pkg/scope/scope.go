// Package scope models the chain of nested lexical scopes active during a
// parse. Scopes live in an arena and refer to their parent by index; a
// bounded free list recycles exited slots.
package scope

import (
	"errors"
	"fmt"
)

// DefaultCacheSize is the number of exited scopes kept for reuse
const DefaultCacheSize = 16

// ErrImbalance is the cause of every panic raised for an exit without a
// matching enter. It indicates a bug in the caller, not bad input.
var ErrImbalance = errors.New("scope imbalance")

// ID addresses a scope in the arena. None is the parent of the root scope.
type ID int

// None is the ID of "no scope"
const None ID = -1

// Flags describe what kind of construct opened a scope
type Flags uint

const (
	FnScope    Flags = 1 << iota // function body
	DeclScope                    // may contain declarations
	BlockScope                   // compound statement
	ParamScope                   // function prototype parameters
)

func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	names := []string{"fn", "decl", "block", "param"}
	s := ""
	for i, n := range names {
		if f&(1<<i) != 0 {
			if s != "" {
				s += "|"
			}
			s += n
		}
	}
	return s
}

// Scope is one lexical scope. Decls is a bag owned by the semantic layer;
// the stack only clears it when the slot is recycled.
type Scope struct {
	id     ID
	parent ID
	flags  Flags
	depth  int
	live   bool

	Decls []any
}

// ID returns the arena index of the scope
func (s *Scope) ID() ID { return s.id }

// Parent returns the enclosing scope, or None for the root
func (s *Scope) Parent() ID { return s.parent }

// Flags returns the flags the scope was entered with
func (s *Scope) Flags() Flags { return s.flags }

// Depth is 0 for the root scope
func (s *Scope) Depth() int { return s.depth }

// Is reports whether all of f are set
func (s *Scope) Is(f Flags) bool { return s.flags&f == f }

func (s *Scope) init(id, parent ID, flags Flags, depth int) {
	s.id = id
	s.parent = parent
	s.flags = flags
	s.depth = depth
	s.live = true
	clear(s.Decls)
	s.Decls = s.Decls[:0]
}

// Stack owns the live chain of scopes and the recycling cache. Each slot
// holds its own heap allocated Scope, so a *Scope stays valid while the
// scope is open no matter how the arena grows. A Stack is not safe for
// concurrent use; each parser owns its own.
type Stack struct {
	arena    []*Scope
	free     []ID // cached slots, their Scope kept for reuse
	holes    []ID // released slots, nil until reused
	cacheCap int
	cur      ID

	held   int // live and cached scopes
	allocs int // fresh scopes created
}

// NewStack creates an empty stack that keeps at most cacheSize exited
// scopes for reuse. A cacheSize of 0 disables recycling.
func NewStack(cacheSize int) *Stack {
	if cacheSize < 0 {
		cacheSize = 0
	}
	return &Stack{cacheCap: cacheSize, cur: None}
}

// Push enters a new scope whose parent is the current scope and makes it
// current. A cached scope is reused first, then a released slot, and only
// then does the arena grow.
func (st *Stack) Push(flags Flags) *Scope {
	depth := 0
	if st.cur != None {
		depth = st.arena[st.cur].depth + 1
	}

	var id ID
	switch {
	case len(st.free) > 0:
		id = st.free[len(st.free)-1]
		st.free = st.free[:len(st.free)-1]
	case len(st.holes) > 0:
		id = st.holes[len(st.holes)-1]
		st.holes = st.holes[:len(st.holes)-1]
		st.arena[id] = st.fresh()
	default:
		id = ID(len(st.arena))
		st.arena = append(st.arena, st.fresh())
	}
	s := st.arena[id]
	s.init(id, st.cur, flags, depth)
	st.cur = id
	return s
}

func (st *Stack) fresh() *Scope {
	st.allocs++
	st.held++
	return &Scope{}
}

// Pop detaches the current scope and makes its parent current. The scope
// goes to the cache if there is room; otherwise it is dropped and its slot
// is left for the next Push. Popping an empty stack panics with
// ErrImbalance.
func (st *Stack) Pop() {
	if st.cur == None {
		panic(fmt.Errorf("%w: exit with no active scope", ErrImbalance))
	}
	old := st.arena[st.cur]
	st.cur = old.parent
	old.live = false

	if len(st.free) < st.cacheCap {
		st.free = append(st.free, old.id)
		return
	}
	st.arena[old.id] = nil
	st.holes = append(st.holes, old.id)
	st.held--
}

// Current returns the active scope, or nil when no scope is open. The
// pointer stays valid until the scope is popped.
func (st *Stack) Current() *Scope {
	if st.cur == None {
		return nil
	}
	return st.arena[st.cur]
}

// CurrentID returns the ID of the active scope, or None
func (st *Stack) CurrentID() ID {
	return st.cur
}

// Get returns the live scope with the given ID, or nil
func (st *Stack) Get(id ID) *Scope {
	if id < 0 || int(id) >= len(st.arena) {
		return nil
	}
	if s := st.arena[id]; s != nil && s.live {
		return s
	}
	return nil
}

// Depth returns the number of open scopes
func (st *Stack) Depth() int {
	if st.cur == None {
		return 0
	}
	return st.arena[st.cur].depth + 1
}

// Empty reports whether no scope is open
func (st *Stack) Empty() bool {
	return st.cur == None
}

// Walk calls fn for the current scope and then each ancestor up to the
// root, stopping early when fn returns false.
func (st *Stack) Walk(fn func(*Scope) bool) {
	for id := st.cur; id != None; id = st.arena[id].parent {
		if !fn(st.arena[id]) {
			return
		}
	}
}

// Cached returns the number of recycled slots waiting for reuse
func (st *Stack) Cached() int {
	return len(st.free)
}

// Allocations returns how many fresh arena slots were ever created
func (st *Stack) Allocations() int {
	return st.allocs
}

// ArenaLen returns how many scopes the stack holds, live and cached
func (st *Stack) ArenaLen() int {
	return st.held
}

// Slots returns the number of arena slots, including released ones. The
// arena only grows when every slot is live, so this never exceeds the
// deepest nesting seen.
func (st *Stack) Slots() int {
	return len(st.arena)
}
