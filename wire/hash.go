// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package wire

// AvalancheMix applies the fixed bit-mixing sequence generated Model
// types use to finish their hashCode computation (spec.md §4.4.1.b). The
// shift sequence must be reproduced exactly since equal model objects
// built in different processes must hash identically; living once here
// means every generated HashCode method calls the same tested
// implementation instead of repeating the shift sequence as inlined text
// in every emitted file.
func AvalancheMix(h uint64) uint64 {
	h += h << 30
	h ^= h >> 27
	h += h << 16
	h ^= h >> 20
	h += h << 5
	h ^= h >> 18
	h += h << 10
	h ^= h >> 24
	h += h << 30
	return h
}

// MixScalar folds one field's contribution into a running hash result
// using the standard polynomial-31 mixer (spec.md §4.4.1.b: "standard
// polynomial 31 for scalars").
func MixScalar(result int64, contribution int64) int64 {
	return result*31 + contribution
}

// HashString folds a string's bytes into a single int64 contribution for
// MixScalar, the same per-byte polynomial-31 accumulation java.lang.String
// uses, so generated HashCode methods never need to special-case string
// fields beyond calling this once per field.
func HashString(s string) int64 {
	var h int64
	for i := 0; i < len(s); i++ {
		h = h*31 + int64(s[i])
	}
	return h
}

// HashBytes folds a byte slice into a single int64 contribution the same
// way HashString does for strings.
func HashBytes(b []byte) int64 {
	var h int64
	for _, v := range b {
		h = h*31 + int64(v)
	}
	return h
}

// HashBool folds a bool into a single int64 contribution.
func HashBool(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

// HashFloat32 folds a float32 into a single int64 contribution via its
// bit pattern. Generated Equals methods compare FLOAT fields by bit
// pattern too, so NaN equals itself and -0 differs from +0 in both; this
// only needs to be internally consistent, not bit-exact with any other
// language's hashCode.
func HashFloat32(v float32) int64 {
	return int64(Float32ToBits(v))
}

// HashFloat64 is HashFloat32's float64 counterpart.
func HashFloat64(v float64) int64 {
	return int64(Float64ToBits(v))
}

// HashSlice folds a slice of comparable scalar elements into a single
// int64 contribution, starting at 1 and mixing in each element's
// HashScalar value. Generated HashCode methods do not call it: they emit
// an equivalent loop inline for every repeated field, including repeated
// MESSAGE and BYTES fields, which cannot satisfy the comparable
// constraint this helper relies on.
func HashSlice[T comparable](s []T) int64 {
	var h int64 = 1
	for _, v := range s {
		h = MixScalar(h, HashScalar(v))
	}
	return h
}

// HashScalar widens any of the runtime's supported scalar Go types into
// the int64 contribution MixScalar expects. It exists so callers of
// HashSlice never need a type switch of their own.
func HashScalar[T comparable](v T) int64 {
	switch x := any(v).(type) {
	case int32:
		return int64(x)
	case int64:
		return x
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	case float32:
		return HashFloat32(x)
	case float64:
		return HashFloat64(x)
	case bool:
		return HashBool(x)
	case string:
		return HashString(x)
	default:
		return 0
	}
}
