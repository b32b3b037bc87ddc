package scope

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPopBalanced(t *testing.T) {
	st := NewStack(DefaultCacheSize)
	root := st.Push(DeclScope)
	rootID := root.ID()

	for i := 0; i < 5; i++ {
		st.Push(BlockScope | DeclScope)
	}
	assert.Equal(t, 6, st.Depth())
	for i := 0; i < 5; i++ {
		st.Pop()
	}

	require.NotNil(t, st.Current())
	assert.Equal(t, rootID, st.CurrentID())
	assert.Equal(t, None, st.Current().Parent())
	assert.Equal(t, 1, st.Depth())
}

func TestDepthIsEntersMinusExits(t *testing.T) {
	st := NewStack(2)
	st.Push(0)
	st.Push(0)
	st.Push(0)
	st.Pop()
	st.Push(0)
	st.Push(0)

	assert.Equal(t, 4, st.Depth())

	seen := map[ID]bool{}
	steps := 0
	st.Walk(func(s *Scope) bool {
		require.False(t, seen[s.ID()], "cycle through %d", s.ID())
		seen[s.ID()] = true
		steps++
		return true
	})
	assert.Equal(t, 4, steps)
}

func TestParentChain(t *testing.T) {
	st := NewStack(DefaultCacheSize)
	a := st.Push(0).ID()
	b := st.Push(FnScope).ID()
	c := st.Push(BlockScope)

	assert.Equal(t, b, c.Parent())
	assert.Equal(t, a, st.Get(b).Parent())
	assert.Equal(t, 2, c.Depth())
	assert.True(t, st.Get(b).Is(FnScope))
	assert.False(t, c.Is(FnScope))
}

func TestCacheReusesSlots(t *testing.T) {
	st := NewStack(DefaultCacheSize)
	st.Push(0)
	st.Push(BlockScope)
	st.Pop()
	assert.Equal(t, 1, st.Cached())
	allocs := st.Allocations()

	st.Push(BlockScope)
	assert.Equal(t, allocs, st.Allocations(), "push after pop should reuse the cached slot")
	assert.Equal(t, 0, st.Cached())
}

func TestCacheIsBounded(t *testing.T) {
	st := NewStack(DefaultCacheSize)
	for i := 0; i < 20; i++ {
		st.Push(0)
	}
	for i := 0; i < 20; i++ {
		st.Pop()
	}

	assert.True(t, st.Empty())
	assert.Equal(t, DefaultCacheSize, st.Cached())
	assert.Equal(t, 20, st.Allocations())
}

func TestZeroCapacityForcesFreshAllocation(t *testing.T) {
	st := NewStack(0)
	st.Push(0)
	for i := 0; i < 3; i++ {
		st.Push(BlockScope)
		st.Pop()
	}

	assert.Equal(t, 0, st.Cached())
	assert.Equal(t, 4, st.Allocations())
	assert.Equal(t, 1, st.ArenaLen(), "released scopes are dropped")
	assert.Equal(t, 2, st.Slots(), "the released slot is reused")
}

func TestArenaStaysBoundedOverDeepBursts(t *testing.T) {
	for _, cacheSize := range []int{0, 1, DefaultCacheSize} {
		st := NewStack(cacheSize)
		st.Push(DeclScope)
		for round := 0; round < 1000; round++ {
			for i := 0; i < 18; i++ {
				st.Push(BlockScope)
			}
			for i := 0; i < 18; i++ {
				st.Pop()
			}
			require.LessOrEqual(t, st.ArenaLen(), st.Depth()+st.Cached(), "cache %d round %d", cacheSize, round)
		}
		assert.LessOrEqual(t, st.Slots(), 19, "cache %d", cacheSize)
		assert.Equal(t, 1, st.Depth())
	}
}

func TestScopePointersSurviveGrowth(t *testing.T) {
	st := NewStack(0)
	root := st.Push(DeclScope)
	root.Decls = append(root.Decls, "x")

	var inner []*Scope
	for i := 0; i < 100; i++ {
		inner = append(inner, st.Push(BlockScope))
	}

	assert.Same(t, root, st.Get(root.ID()))
	assert.Same(t, inner[0], st.Get(inner[0].ID()))
	root.Decls = append(root.Decls, "y")
	for range inner {
		st.Pop()
	}
	assert.Same(t, root, st.Current())
	assert.Equal(t, []any{"x", "y"}, st.Current().Decls)
}

func TestCacheTransparency(t *testing.T) {
	cached := NewStack(DefaultCacheSize)
	fresh := NewStack(0)

	for _, st := range []*Stack{cached, fresh} {
		st.Push(DeclScope)
		old := st.Push(FnScope)
		old.Decls = append(old.Decls, "leftover")
		st.Pop()
	}

	a := cached.Push(BlockScope)
	b := fresh.Push(BlockScope)

	assert.Equal(t, 2, cached.Allocations(), "the second child reuses the first child's slot")
	assert.Equal(t, 3, fresh.Allocations())
	assert.Equal(t, b.Flags(), a.Flags())
	assert.Equal(t, b.Depth(), a.Depth())
	assert.Equal(t, cached.Get(a.Parent()).Flags(), fresh.Get(b.Parent()).Flags())
	assert.Empty(t, a.Decls)
	assert.Empty(t, b.Decls)
	assert.False(t, a.Is(FnScope))
}

func TestPopEmptyPanics(t *testing.T) {
	st := NewStack(DefaultCacheSize)
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrImbalance))
	}()
	st.Pop()
}

func TestGetDeadScope(t *testing.T) {
	st := NewStack(DefaultCacheSize)
	st.Push(0)
	id := st.Push(0).ID()
	st.Pop()
	assert.Nil(t, st.Get(id))
	assert.Nil(t, st.Get(None))
}

func TestFlagsString(t *testing.T) {
	assert.Equal(t, "0", Flags(0).String())
	assert.Equal(t, "fn|decl", (FnScope | DeclScope).String())
}
