// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sample = `{
  "DOI": "10.1/x",
  "ISBN": ["978-1", "978-2"],
  "volume": 12,
  "title": ["Main", null, 7],
  "issued": {"date-parts": [[2020, "1", 1]]},
  "author": {"family": "Doe"},
  "relation": {"is-preprint-of": [{"id": "a"}], "cites": {"id": "b"}},
  "key.with.dots": "dotted"
}`

func TestAccessors_Scalars(t *testing.T) {
	raw := ParseString(sample)

	s, ok := raw.Str("DOI")
	assert.True(t, ok)
	assert.Equal(t, "10.1/x", s)

	s, ok = raw.Str("volume")
	assert.True(t, ok)
	assert.Equal(t, "12", s)

	_, ok = raw.Str("ISBN")
	assert.False(t, ok, "arrays are not scalars")

	_, ok = raw.Str("missing")
	assert.False(t, ok)

	s, ok = raw.Str("key.with.dots")
	assert.True(t, ok)
	assert.Equal(t, "dotted", s)
}

func TestAccessors_ScalarOrList(t *testing.T) {
	raw := ParseString(sample)
	assert.Equal(t, []string{"10.1/x"}, raw.Strings("DOI"))
	assert.Equal(t, []string{"978-1", "978-2"}, raw.Strings("ISBN"))
	assert.Equal(t, []string{"Main", "7"}, raw.Strings("title"))
	assert.Nil(t, raw.Strings("missing"))

	assert.Len(t, raw.List("author"), 1)
	assert.Nil(t, raw.List("editor"))
}

func TestAccessors_Nested(t *testing.T) {
	raw := ParseString(sample)

	parts := raw.Path("issued", "date-parts").Items()
	assert.Len(t, parts, 1)
	assert.Equal(t, []int{2020, 1, 1}, parts[0].AsInts())

	assert.False(t, raw.Path("issued", "nope", "deeper").Exists())

	var keys []string
	raw.Get("relation").Each(func(k string, v Raw) {
		keys = append(keys, k)
		assert.Len(t, v.AsList(), 1)
	})
	assert.Equal(t, []string{"is-preprint-of", "cites"}, keys)
}

func TestParse_Invalid(t *testing.T) {
	raw := ParseString("{not json")
	assert.False(t, raw.Exists())
	assert.False(t, raw.Has("DOI"))
	assert.Nil(t, raw.Strings("DOI"))
	assert.Nil(t, raw.Items())
}

func TestIntsFromArray(t *testing.T) {
	raw := ParseString(`{"parts": [2020, "07", "x", 3.0]}`)
	assert.Equal(t, []int{2020, 7, 3}, raw.Ints("parts"))
	assert.Nil(t, raw.Ints("missing"))
}
