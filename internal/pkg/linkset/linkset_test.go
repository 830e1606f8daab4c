package linkset_test

import (
	"testing"

	"freightledger/internal/pkg/linkset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_Link(t *testing.T) {
	t.Run("should link keys in insertion order", func(t *testing.T) {
		s := linkset.New[int]()

		require.NoError(t, s.Link(7))
		require.NoError(t, s.Link(3))
		require.NoError(t, s.Link(9))

		assert.Equal(t, 3, s.Size())
		assert.Equal(t, []int{7, 3, 9}, s.Members())
		assert.Equal(t, 7, s.First())
		assert.Equal(t, 9, s.Last())
	})

	t.Run("should fail when key already linked", func(t *testing.T) {
		s := linkset.New[int]()
		require.NoError(t, s.Link(1))

		err := s.Link(1)

		require.ErrorIs(t, err, linkset.ErrAlreadyLinked)
		assert.Equal(t, 1, s.Size())
	})

	t.Run("should reject the null sentinel", func(t *testing.T) {
		s := linkset.New[int]()

		err := s.Link(0)

		require.ErrorIs(t, err, linkset.ErrAlreadyLinked)
		assert.Equal(t, 0, s.Size())
		assert.False(t, s.IsLinked(0))
	})
}

func TestSet_IsLinked(t *testing.T) {
	t.Run("single member is linked even with zero neighbor pointers", func(t *testing.T) {
		s := linkset.New[int]()
		require.NoError(t, s.Link(42))

		// The only member's prev and next are both the zero key, which is the
		// same shape as an unlinked node. Membership must still hold.
		assert.Equal(t, 0, s.NextOf(42))
		assert.Equal(t, 0, s.PrevOf(42))
		assert.True(t, s.IsLinked(42))
	})

	t.Run("non-member is not linked", func(t *testing.T) {
		s := linkset.New[int]()
		require.NoError(t, s.Link(1))

		assert.False(t, s.IsLinked(2))
	})

	t.Run("boundary members of a longer list are linked", func(t *testing.T) {
		s := linkset.New[int]()
		require.NoError(t, s.Link(1))
		require.NoError(t, s.Link(2))
		require.NoError(t, s.Link(3))

		assert.True(t, s.IsLinked(1))
		assert.True(t, s.IsLinked(2))
		assert.True(t, s.IsLinked(3))
	})
}

func TestSet_Unlink(t *testing.T) {
	t.Run("link then unlink round-trips to the prior state", func(t *testing.T) {
		s := linkset.New[int]()
		require.NoError(t, s.Link(1))
		sizeBefore := s.Size()

		require.NoError(t, s.Link(5))
		require.NoError(t, s.Unlink(5))

		assert.False(t, s.IsLinked(5))
		assert.Equal(t, sizeBefore, s.Size())
		assert.Equal(t, 1, s.First())
		assert.Equal(t, 1, s.Last())
	})

	t.Run("should fail when key is not linked", func(t *testing.T) {
		s := linkset.New[int]()

		err := s.Unlink(1)

		require.ErrorIs(t, err, linkset.ErrNotLinked)
	})

	t.Run("should fail for the null sentinel", func(t *testing.T) {
		s := linkset.New[int]()
		require.NoError(t, s.Link(1))

		err := s.Unlink(0)

		require.ErrorIs(t, err, linkset.ErrNotLinked)
	})

	t.Run("should splice out a middle member", func(t *testing.T) {
		s := linkset.New[int]()
		require.NoError(t, s.Link(1))
		require.NoError(t, s.Link(2))
		require.NoError(t, s.Link(3))

		require.NoError(t, s.Unlink(2))

		assert.Equal(t, []int{1, 3}, s.Members())
		assert.Equal(t, 3, s.NextOf(1))
		assert.Equal(t, 1, s.PrevOf(3))
	})

	t.Run("should repair head when removing the first member", func(t *testing.T) {
		s := linkset.New[int]()
		require.NoError(t, s.Link(1))
		require.NoError(t, s.Link(2))

		require.NoError(t, s.Unlink(1))

		assert.Equal(t, 2, s.First())
		assert.Equal(t, 2, s.Last())
		assert.True(t, s.IsLinked(2))
		assert.False(t, s.IsLinked(1))
	})

	t.Run("should repair tail when removing the last member", func(t *testing.T) {
		s := linkset.New[int]()
		require.NoError(t, s.Link(1))
		require.NoError(t, s.Link(2))

		require.NoError(t, s.Unlink(2))

		assert.Equal(t, 1, s.First())
		assert.Equal(t, 1, s.Last())
	})

	t.Run("should empty out completely", func(t *testing.T) {
		s := linkset.New[int]()
		require.NoError(t, s.Link(1))

		require.NoError(t, s.Unlink(1))

		assert.Equal(t, 0, s.Size())
		assert.Equal(t, 0, s.First())
		assert.Equal(t, 0, s.Last())
		assert.Empty(t, s.Members())
	})
}

func TestSet_Traversal(t *testing.T) {
	t.Run("forward and backward traversal agree", func(t *testing.T) {
		s := linkset.New[string]()
		for _, k := range []string{"a", "b", "c", "d"} {
			require.NoError(t, s.Link(k))
		}

		var forward []string
		for k := s.First(); k != ""; k = s.NextOf(k) {
			forward = append(forward, k)
		}

		var backward []string
		for k := s.Last(); k != ""; k = s.PrevOf(k) {
			backward = append(backward, k)
		}

		assert.Equal(t, []string{"a", "b", "c", "d"}, forward)
		assert.Equal(t, []string{"d", "c", "b", "a"}, backward)
	})
}
