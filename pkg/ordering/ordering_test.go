package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAtClampsIndex(t *testing.T) {
	a := Arrangement[string]{"a", "b"}

	out, err := a.InsertAt(99, "c")
	require.NoError(t, err)
	assert.Equal(t, Arrangement[string]{"a", "b", "c"}, out)

	out, err = a.InsertAt(-5, "c")
	require.NoError(t, err)
	assert.Equal(t, Arrangement[string]{"c", "a", "b"}, out)
}

func TestInsertAtRejectsDuplicate(t *testing.T) {
	a := Arrangement[string]{"a", "b"}
	_, err := a.InsertAt(0, "a")
	assert.ErrorIs(t, err, ErrDuplicateItem)
}

func TestRemoveKeepsDensity(t *testing.T) {
	a := Arrangement[string]{"a", "b", "c", "d"}
	out, err := a.Remove("b")
	require.NoError(t, err)
	assert.Equal(t, Arrangement[string]{"a", "c", "d"}, out)

	_, err = a.Remove("yok")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestMoveWithin(t *testing.T) {
	a := Arrangement[string]{"a", "b", "c"}

	out, err := a.MoveWithin("c", 0)
	require.NoError(t, err)
	assert.Equal(t, Arrangement[string]{"c", "a", "b"}, out)

	// Kaynak düzen değişmemeli
	assert.Equal(t, Arrangement[string]{"a", "b", "c"}, a)
}

func TestMoveBetween(t *testing.T) {
	// Doing = [X, Y], Todo = []. X Todo'ya 0. indekse taşınır.
	doing := Arrangement[string]{"X", "Y"}
	todo := Arrangement[string]{}

	newDoing, newTodo, err := MoveBetween(doing, todo, "X", 0)
	require.NoError(t, err)
	assert.Equal(t, Arrangement[string]{"Y"}, newDoing)
	assert.Equal(t, Arrangement[string]{"X"}, newTodo)
}

func TestMoveBetweenMissingItem(t *testing.T) {
	src := Arrangement[string]{"a"}
	dst := Arrangement[string]{"b"}
	_, _, err := MoveBetween(src, dst, "yok", 0)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestDense(t *testing.T) {
	assert.True(t, Dense(nil))
	assert.True(t, Dense([]int{0}))
	assert.True(t, Dense([]int{2, 0, 1}))
	assert.False(t, Dense([]int{0, 2}))    // boşluk
	assert.False(t, Dense([]int{0, 0, 1})) // tekrar
	assert.False(t, Dense([]int{-1, 0}))
}

// Herhangi bir ekle/çıkar/taşı dizisinden sonra indeksler yoğun kalmalı.
func TestDenseAfterMutationSequence(t *testing.T) {
	a := Arrangement[int]{}
	var err error
	for i := 0; i < 10; i++ {
		a, err = a.InsertAt(i/2, i)
		require.NoError(t, err)
	}
	a, err = a.Remove(3)
	require.NoError(t, err)
	a, err = a.MoveWithin(7, 0)
	require.NoError(t, err)
	a, err = a.MoveWithin(0, 99)
	require.NoError(t, err)

	indices := make([]int, len(a))
	seen := map[int]int{}
	for i, id := range a {
		indices[i] = i
		seen[id]++
	}
	assert.True(t, Dense(indices))
	for id, count := range seen {
		assert.Equalf(t, 1, count, "öğe %d birden fazla kez listede", id)
	}
}
