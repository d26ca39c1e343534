package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// step is one builder call, used to replay call sequences in tables.
type step func(b *Builder) error

func key(k string) step          { return func(b *Builder) error { return b.Key(k) } }
func val(v Value) step           { return func(b *Builder) error { return b.Value(v) } }
func startList(b *Builder) error { return b.StartList() }
func startMap(b *Builder) error  { return b.StartMap() }
func endList(b *Builder) error   { return b.EndList() }
func endMap(b *Builder) error    { return b.EndMap() }

func replay(t *testing.T, b *Builder, steps ...step) {
	t.Helper()
	for i, s := range steps {
		require.NoError(t, s(b), "step %d", i+1)
	}
}

func TestBuilder_MapWithNestedList(t *testing.T) {
	b := NewBuilder()
	replay(t, b,
		startMap, key("a"), val(Int(1)),
		key("b"), startList, val(Int(2)), val(Int(3)), endList,
		endMap,
	)

	got, err := b.Build()
	require.NoError(t, err)

	want := MustMap(
		Field("a", Int(1)),
		Field("b", ListOf(Int(2), Int(3))),
	)
	assert.True(t, want.Equal(got), "got %s", got)
	assert.Equal(t, `{"a":1,"b":[2,3]}`, got.String())
}

func TestBuilder_Scalars(t *testing.T) {
	for _, v := range []Value{Null(), Bool(false), Int(0), Double(1.5), String("")} {
		b := NewBuilder()
		require.NoError(t, b.Value(v))
		assert.Equal(t, Ready, b.State())
		got, err := b.Build()
		require.NoError(t, err)
		assert.True(t, v.Equal(got))
	}
}

func TestBuilder_EmptyContainers(t *testing.T) {
	b := NewBuilder()
	replay(t, b, startList, startMap, endMap, startList, endList, endList)
	got, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, `[{},[]]`, got.String())
}

func TestBuilder_States(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, Empty, b.State())

	require.NoError(t, b.StartMap())
	assert.Equal(t, ExpectKeyOrEnd, b.State())
	assert.Equal(t, 1, b.Depth())

	require.NoError(t, b.Key("k"))
	assert.Equal(t, ExpectValue, b.State())

	require.NoError(t, b.StartList())
	assert.Equal(t, ExpectValue, b.State())
	assert.Equal(t, 2, b.Depth())

	require.NoError(t, b.EndList())
	assert.Equal(t, ExpectKeyOrEnd, b.State())

	require.NoError(t, b.EndMap())
	assert.Equal(t, Ready, b.State())
	assert.Equal(t, 0, b.Depth())

	_, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, Complete, b.State())
	assert.Equal(t, "complete", b.State().String())
}

func TestBuilder_Failures(t *testing.T) {
	tests := []struct {
		name    string
		prefix  []step
		failing step
		want    *Error
		// fix is a call that must succeed afterwards, showing the failed
		// call left no trace.
		fix     step
	}{
		{
			name:    "second key without value",
			prefix:  []step{startMap, key("x")},
			failing: key("y"),
			want:    ErrDuplicateOrMisplacedKey,
			fix:     val(Int(1)),
		},
		{
			name:    "duplicate key",
			prefix:  []step{startMap, key("x"), val(Int(1))},
			failing: key("x"),
			want:    ErrDuplicateOrMisplacedKey,
			fix:     key("y"),
		},
		{
			name:    "key at top level",
			failing: key("x"),
			want:    ErrDuplicateOrMisplacedKey,
			fix:     startMap,
		},
		{
			name:    "key inside list",
			prefix:  []step{startList},
			failing: key("x"),
			want:    ErrDuplicateOrMisplacedKey,
			fix:     val(Int(1)),
		},
		{
			name:    "value where key expected",
			prefix:  []step{startMap},
			failing: val(Int(1)),
			want:    ErrMisplacedValue,
			fix:     key("a"),
		},
		{
			name:    "start list where key expected",
			prefix:  []step{startMap, key("a"), val(Null())},
			failing: startList,
			want:    ErrMisplacedValue,
			fix:     endMap,
		},
		{
			name:    "start map where key expected",
			prefix:  []step{startMap},
			failing: startMap,
			want:    ErrMisplacedValue,
			fix:     endMap,
		},
		{
			name:    "end map on list",
			prefix:  []step{startList},
			failing: endMap,
			want:    ErrMismatchedClose,
			fix:     endList,
		},
		{
			name:    "end list on map",
			prefix:  []step{startMap},
			failing: endList,
			want:    ErrMismatchedClose,
			fix:     endMap,
		},
		{
			name:    "end list on deeply nested map",
			prefix:  []step{startList, startList, startMap, key("a"), startMap},
			failing: endList,
			want:    ErrMismatchedClose,
			fix:     endMap,
		},
		{
			name:    "end list with nothing open",
			failing: endList,
			want:    ErrMismatchedClose,
			fix:     val(Int(1)),
		},
		{
			name:    "end map with nothing open",
			prefix:  []step{val(Int(1))},
			failing: endMap,
			want:    ErrMismatchedClose,
		},
		{
			name:    "dangling key",
			prefix:  []step{startMap, key("k")},
			failing: endMap,
			want:    ErrDanglingKey,
			fix:     val(Null()),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			replay(t, b, tt.prefix...)
			before := b.State()
			depth := b.Depth()

			err := tt.failing(b)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, b.State())
			assert.Equal(t, depth, b.Depth())

			if tt.fix != nil {
				assert.NoError(t, tt.fix(b))
			}
		})
	}
}

func TestBuilder_FailureIsRetryable(t *testing.T) {
	// A rejected duplicate key followed by the corrected sequence produces
	// the same document as the corrected sequence alone.
	b := NewBuilder()
	replay(t, b, startMap, key("a"), val(Int(1)))
	require.ErrorIs(t, b.Key("a"), ErrDuplicateOrMisplacedKey)
	require.ErrorIs(t, b.Value(Int(5)), ErrMisplacedValue)
	require.ErrorIs(t, b.EndList(), ErrMismatchedClose)
	replay(t, b, key("b"), val(Int(2)), endMap)

	got, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2}`, got.String())
}

func TestBuilder_BuildIncomplete(t *testing.T) {
	tests := []struct {
		name  string
		steps []step
	}{
		{name: "fresh builder"},
		{name: "two roots", steps: []step{val(Int(1)), val(Int(2))}},
		{name: "open list", steps: []step{startList, val(Int(1))}},
		{name: "open map", steps: []step{startMap}},
		{name: "pending key", steps: []step{startMap, key("a")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			replay(t, b, tt.steps...)
			before := b.State()

			_, err := b.Build()
			assert.ErrorIs(t, err, ErrIncompleteDocument)
			assert.Equal(t, before, b.State())
		})
	}
}

func TestBuilder_FrozenAfterBuild(t *testing.T) {
	b := NewBuilder()
	replay(t, b, startList, val(String("x")), endList)
	first, err := b.Build()
	require.NoError(t, err)

	assert.ErrorIs(t, b.Value(Int(1)), ErrMisplacedValue)
	assert.ErrorIs(t, b.StartList(), ErrMisplacedValue)
	assert.ErrorIs(t, b.StartMap(), ErrMisplacedValue)
	assert.ErrorIs(t, b.Key("a"), ErrDuplicateOrMisplacedKey)
	assert.ErrorIs(t, b.EndList(), ErrMismatchedClose)
	assert.ErrorIs(t, b.EndMap(), ErrMismatchedClose)

	second, err := b.Build()
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestBuilder_AttachedValuesAreSnapshots(t *testing.T) {
	// The list built by the builder is not affected by later calls on the
	// builder once it has been attached.
	b := NewBuilder()
	replay(t, b, startList, startList, val(Int(1)), endList, val(Int(2)), endList)
	got, err := b.Build()
	require.NoError(t, err)

	l, err := got.AsList()
	require.NoError(t, err)
	inner, err := l.At(0).AsList()
	require.NoError(t, err)
	assert.Equal(t, 1, inner.Len())
	assert.Equal(t, 2, l.Len())
}
