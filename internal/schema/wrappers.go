// Copyright 2024 Google LLC
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

package schema

// wrapperScalar describes the scalar type hiding behind a
// google.protobuf.*Value wrapper message.
type wrapperScalar struct {
	typez Typez
}

// wellKnownWrappers maps a wrapper message's fully qualified proto name to
// the scalar type it wraps. Crucial per spec.md §4.2: when a SingleField's
// message-type reference matches one of these, the field is tagged
// Optional=true with its scalar type substituted, and the MESSAGE
// dependency is dropped entirely (the field no longer refers to the
// wrapper message at all).
var wellKnownWrappers = map[string]wrapperScalar{
	".google.protobuf.StringValue": {STRING_TYPE},
	".google.protobuf.Int32Value":  {INT32_TYPE},
	".google.protobuf.UInt32Value": {UINT32_TYPE},
	".google.protobuf.SInt32Value": {SINT32_TYPE},
	".google.protobuf.Int64Value":  {INT64_TYPE},
	".google.protobuf.UInt64Value": {UINT64_TYPE},
	".google.protobuf.SInt64Value": {SINT64_TYPE},
	".google.protobuf.FloatValue":  {FLOAT_TYPE},
	".google.protobuf.DoubleValue": {DOUBLE_TYPE},
	".google.protobuf.BoolValue":   {BOOL_TYPE},
	".google.protobuf.BytesValue":  {BYTES_TYPE},
}

// resolveWrapperOptional rewrites field in place if its TypezID names a
// known wrapper, and reports whether it did. Called once per MESSAGE-typed
// field by resolveMessageFieldTypes, after every file has been built and
// the field's reference has been qualified.
func resolveWrapperOptional(field *Field) bool {
	if field.Typez != MESSAGE_TYPE {
		return false
	}
	w, ok := wellKnownWrappers[field.TypezID]
	if !ok {
		return false
	}
	field.Typez = w.typez
	field.TypezID = ""
	field.Optional = true
	return true
}
