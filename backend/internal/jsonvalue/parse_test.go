package jsonvalue

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PreservesMemberOrder(t *testing.T) {
	v, err := Parse([]byte(`{"zeta": 1, "alpha": "a", "mid": [true, null, 2.5]}`))
	require.NoError(t, err)

	require.Equal(t, Object, v.Kind())
	var keys []string
	for _, f := range v.Fields() {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)

	mid, ok := v.Get("mid")
	require.True(t, ok)
	require.Len(t, mid.Items(), 3)
	assert.Equal(t, Bool, mid.Items()[0].Kind())
	assert.True(t, mid.Items()[1].IsNull())
	assert.Equal(t, Number, mid.Items()[2].Kind())
}

func TestParse_Scalars(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
	}{
		{`null`, Null},
		{`true`, Bool},
		{`  42 `, Number},
		{`"hello"`, String},
		{`[]`, Array},
		{`{}`, Object},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		``,
		`   `,
		`{"a":`,
		`[1, 2`,
		`{"a": 1} trailing`,
		`nope`,
		`"unterminated`,
		`[1.2.3]`,
		`{"timestamp": --5}`,
		`[-]`,
		`[01]`,
		`[1.]`,
		`[.5]`,
		`[1e]`,
		`7e+`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse([]byte(input))
			assert.Error(t, err)
		})
	}
}

func TestParse_ValidNumbers(t *testing.T) {
	inputs := []string{`0`, `-0`, `12`, `-3.25`, `1e9`, `2.5E-3`, `[0, 1700000000]`}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse([]byte(input))
			assert.NoError(t, err)
		})
	}
}

func TestParse_ByteOrderMark(t *testing.T) {
	v, err := Parse(append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"title": "x"}`)...))
	require.NoError(t, err)

	title, ok := v.GetString("title")
	assert.True(t, ok)
	assert.Equal(t, "x", title)
}

func TestParse_DeepNesting(t *testing.T) {
	depth := 500
	doc := strings.Repeat(`{"a":[`, depth) + `"leaf"` + strings.Repeat(`]}`, depth)

	v, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, Object, v.Kind())
}

func TestGet_DuplicateKeysLastWins(t *testing.T) {
	v, err := Parse([]byte(`{"value": "first", "value": "second"}`))
	require.NoError(t, err)

	got, ok := v.GetString("value")
	assert.True(t, ok)
	assert.Equal(t, "second", got)
	assert.Len(t, v.Fields(), 2)
}

func TestInt(t *testing.T) {
	tests := []struct {
		value Value
		want  int64
		ok    bool
	}{
		{NumberValue("1700000000"), 1700000000, true},
		{NumberValue("12.9"), 12, true},
		{NumberValue("1e3"), 1000, true},
		{NumberValue("1e300"), 0, false},
		{StringValue("100"), 0, false},
		{NullValue(), 0, false},
	}

	for _, tt := range tests {
		got, ok := tt.value.Int()
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.want, got)
	}
}

func TestFromAny(t *testing.T) {
	var decoded any
	require.NoError(t, json.Unmarshal([]byte(`{"b": [1, "x"], "a": {"ok": true}}`), &decoded))

	v := FromAny(decoded)
	require.Equal(t, Object, v.Kind())
	assert.Equal(t, "a", v.Fields()[0].Key)
	assert.Equal(t, "b", v.Fields()[1].Key)

	b, _ := v.Get("b")
	n, ok := b.Items()[0].Int()
	assert.True(t, ok)
	assert.Equal(t, int64(1), n)

	assert.True(t, FromAny(struct{}{}).IsNull())
}

func TestGetString_EmptyIsAbsent(t *testing.T) {
	v := ObjectValue(Field{Key: "title", Value: StringValue("")})

	_, ok := v.GetString("title")
	assert.False(t, ok)

	_, ok = StringValue("x").Get("title")
	assert.False(t, ok)
}
