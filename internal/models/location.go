package models

import (
	"encoding/json"
	"net/url"
	"sort"
)

// QueryValue is one entry of a page's query string. It is either absent, a
// single string, or a sequence of strings (the key was repeated).
type QueryValue struct {
	values  []string
	present bool
	seq     bool
}

// Absent returns the zero QueryValue.
func Absent() QueryValue { return QueryValue{} }

// Single wraps one string value.
func Single(v string) QueryValue {
	return QueryValue{values: []string{v}, present: true}
}

// Multi wraps a sequence of values. A one-element sequence is still a sequence.
func Multi(vs ...string) QueryValue {
	cp := make([]string, len(vs))
	copy(cp, vs)
	return QueryValue{values: cp, present: true, seq: true}
}

// IsAbsent reports whether the key was missing from the query.
func (v QueryValue) IsAbsent() bool { return !v.present }

// AsString returns the value when it is a single string.
func (v QueryValue) AsString() (string, bool) {
	if !v.present || v.seq {
		return "", false
	}
	return v.values[0], true
}

// Values returns a copy of all values; nil when absent.
func (v QueryValue) Values() []string {
	if !v.present {
		return nil
	}
	out := make([]string, len(v.values))
	copy(out, v.values)
	return out
}

// Equal reports structural equality, including the single/sequence shape.
func (v QueryValue) Equal(o QueryValue) bool {
	if v.present != o.present || v.seq != o.seq || len(v.values) != len(o.values) {
		return false
	}
	for i := range v.values {
		if v.values[i] != o.values[i] {
			return false
		}
	}
	return true
}

func (v QueryValue) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	if s, ok := v.AsString(); ok {
		return json.Marshal(s)
	}
	return json.Marshal(v.values)
}

// GlobalSelectionParams are the page-wide project, environment and time
// range selectors. They travel with every link that stays on the same view.
var GlobalSelectionParams = []string{"project", "environment", "start", "end", "utc", "statsPeriod"}

// LocationQuery is the query string of the page the panel is shown on.
type LocationQuery map[string]QueryValue

// Get returns the value for key, Absent when missing.
func (q LocationQuery) Get(key string) QueryValue {
	if q == nil {
		return Absent()
	}
	return q[key]
}

// Pick copies the listed keys that are present, verbatim. Missing keys are
// skipped, never defaulted.
func (q LocationQuery) Pick(keys ...string) QueryParams {
	out := QueryParams{}
	for _, k := range keys {
		if v := q.Get(k); !v.IsAbsent() {
			out[k] = v
		}
	}
	return out
}

// LocationFromValues converts parsed url.Values. Keys seen once become
// Single, repeated keys become Multi.
func LocationFromValues(vals url.Values) LocationQuery {
	q := make(LocationQuery, len(vals))
	for k, vs := range vals {
		switch len(vs) {
		case 0:
		case 1:
			q[k] = Single(vs[0])
		default:
			q[k] = Multi(vs...)
		}
	}
	return q
}

// QueryParams are the parameters sent to the issue search endpoint.
type QueryParams map[string]QueryValue

// Encode flattens the params into url.Values for an HTTP request.
func (p QueryParams) Encode() url.Values {
	out := url.Values{}
	for k, v := range p {
		for _, s := range v.Values() {
			out.Add(k, s)
		}
	}
	return out
}

// Keys returns the parameter names in sorted order.
func (p QueryParams) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether both param sets hold the same keys and values.
func (p QueryParams) Equal(o QueryParams) bool {
	if len(p) != len(o) {
		return false
	}
	for k, v := range p {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
