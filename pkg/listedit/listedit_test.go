package listedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem string

func (t testItem) ItemID() string { return string(t) }

func newList(ids ...string) *List[testItem] {
	items := make([]testItem, len(ids))
	for i, id := range ids {
		items[i] = testItem(id)
	}
	return New(items)
}

func order(l *List[testItem]) []string {
	out := make([]string, 0, l.Len())
	for _, it := range l.Items() {
		out = append(out, string(it))
	}
	return out
}

func TestInsertAt(t *testing.T) {
	l := newList("a", "b", "c")
	l.InsertAt("x", 1)
	assert.Equal(t, []string{"a", "x", "b", "c"}, order(l))
}

func TestInsertAtClamps(t *testing.T) {
	l := newList("a", "b")
	l.InsertAt("low", -5)
	l.InsertAt("high", 99)
	assert.Equal(t, []string{"low", "a", "b", "high"}, order(l))
}

func TestMove(t *testing.T) {
	l := newList("a", "b", "c", "d")
	require.True(t, l.Move(0, 2))
	assert.Equal(t, []string{"b", "c", "a", "d"}, order(l))
}

func TestMoveBackward(t *testing.T) {
	l := newList("a", "b", "c", "d")
	require.True(t, l.Move(3, 0))
	assert.Equal(t, []string{"d", "a", "b", "c"}, order(l))
}

func TestMoveOutOfRangeFrom(t *testing.T) {
	l := newList("a", "b")
	assert.False(t, l.Move(5, 0))
	assert.Equal(t, []string{"a", "b"}, order(l))
}

func TestMoveID(t *testing.T) {
	l := newList("a", "b", "c")
	require.True(t, l.MoveID("c", 0))
	assert.Equal(t, []string{"c", "a", "b"}, order(l))
}

func TestMoveIDUnknownIsNoOp(t *testing.T) {
	l := newList("a", "b")
	assert.False(t, l.MoveID("zzz", 0))
	assert.Equal(t, []string{"a", "b"}, order(l))
}

func TestRemove(t *testing.T) {
	l := newList("a", "b", "c")
	require.True(t, l.Remove("b"))
	assert.Equal(t, []string{"a", "c"}, order(l))
	assert.False(t, l.Remove("b"))
}

func TestAppend(t *testing.T) {
	l := newList()
	l.Append("a")
	l.Append("b")
	assert.Equal(t, []string{"a", "b"}, order(l))
}
