// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metadata wraps registry JSON documents with accessors that never
// fail: a missing key or an unexpected shape reads as an absent value.
package metadata

import (
	"strconv"

	"github.com/tidwall/gjson"
)

// Raw is a read-only view over one registry JSON object.
type Raw struct {
	res gjson.Result
}

// Parse wraps a JSON document. Invalid JSON yields an empty Raw.
func Parse(data []byte) Raw {
	if !gjson.ValidBytes(data) {
		return Raw{}
	}
	return Raw{res: gjson.ParseBytes(data)}
}

// ParseString is Parse for string input.
func ParseString(s string) Raw {
	return Parse([]byte(s))
}

// FromResult wraps an already parsed gjson value.
func FromResult(r gjson.Result) Raw {
	return Raw{res: r}
}

// Exists reports whether the document holds any value.
func (r Raw) Exists() bool {
	return r.res.Exists()
}

// IsObject reports whether the document is a JSON object.
func (r Raw) IsObject() bool {
	return r.res.IsObject()
}

// Has reports whether key is present and not null.
func (r Raw) Has(key string) bool {
	v := r.field(key)
	return v.Exists() && v.Type != gjson.Null
}

// Get returns the nested value at key as a Raw.
func (r Raw) Get(key string) Raw {
	return Raw{res: r.field(key)}
}

// Path returns the value at a sequence of object keys.
func (r Raw) Path(keys ...string) Raw {
	cur := r
	for _, k := range keys {
		cur = cur.Get(k)
		if !cur.Exists() {
			return Raw{}
		}
	}
	return cur
}

// Str returns the scalar at key as a string. Arrays and objects read as
// absent; numbers are formatted without a fractional part when integral.
func (r Raw) Str(key string) (string, bool) {
	return scalar(r.field(key))
}

// String returns the document itself as a string scalar.
func (r Raw) String() string {
	s, _ := scalar(r.res)
	return s
}

// Strings returns the value at key as a list of strings. A scalar is a
// one-element list; non-string array members are skipped.
func (r Raw) Strings(key string) []string {
	return toStrings(r.field(key))
}

// AsStrings is Strings applied to the document itself.
func (r Raw) AsStrings() []string {
	return toStrings(r.res)
}

// List returns the value at key as a list of Raw values. A single object
// or scalar becomes a one-element list.
func (r Raw) List(key string) []Raw {
	return r.Get(key).AsList()
}

// AsList returns the document as a list: array members (nulls skipped), or
// the document itself when it is not an array.
func (r Raw) AsList() []Raw {
	v := r.res
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	if !v.IsArray() {
		return []Raw{r}
	}
	var out []Raw
	v.ForEach(func(_, item gjson.Result) bool {
		if item.Type != gjson.Null {
			out = append(out, Raw{res: item})
		}
		return true
	})
	return out
}

// Items returns the array elements of the document itself.
func (r Raw) Items() []Raw {
	if !r.res.IsArray() {
		return nil
	}
	var out []Raw
	r.res.ForEach(func(_, item gjson.Result) bool {
		out = append(out, Raw{res: item})
		return true
	})
	return out
}

// Each calls fn for every key/value pair of an object, in document order.
func (r Raw) Each(fn func(key string, value Raw)) {
	if !r.res.IsObject() {
		return
	}
	r.res.ForEach(func(k, v gjson.Result) bool {
		fn(k.String(), Raw{res: v})
		return true
	})
}

// Ints returns the value at key as a list of integers.
func (r Raw) Ints(key string) []int {
	return r.Get(key).AsInts()
}

// AsInts returns the document as a list of integers, skipping members that
// are not numbers or numeric strings.
func (r Raw) AsInts() []int {
	if !r.res.IsArray() {
		return nil
	}
	var out []int
	r.res.ForEach(func(_, item gjson.Result) bool {
		switch item.Type {
		case gjson.Number:
			out = append(out, int(item.Int()))
		case gjson.String:
			if n, err := strconv.Atoi(item.Str); err == nil {
				out = append(out, n)
			}
		}
		return true
	})
	return out
}

// JSON returns the underlying JSON text.
func (r Raw) JSON() string {
	return r.res.Raw
}

func (r Raw) field(key string) gjson.Result {
	if !r.res.IsObject() {
		return gjson.Result{}
	}
	return r.res.Get(gjson.Escape(key))
}

func scalar(v gjson.Result) (string, bool) {
	switch v.Type {
	case gjson.String:
		return v.Str, true
	case gjson.Number:
		if v.Num == float64(int64(v.Num)) {
			return strconv.FormatInt(int64(v.Num), 10), true
		}
		return v.Raw, true
	case gjson.True, gjson.False:
		return v.String(), true
	default:
		return "", false
	}
}

func toStrings(v gjson.Result) []string {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	if !v.IsArray() {
		if s, ok := scalar(v); ok {
			return []string{s}
		}
		return nil
	}
	var out []string
	v.ForEach(func(_, item gjson.Result) bool {
		if s, ok := scalar(item); ok {
			out = append(out, s)
		}
		return true
	})
	return out
}
