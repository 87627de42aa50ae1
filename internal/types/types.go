// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package types

import (
	"reflect"
	"strings"
)

// TypeName returns the name of a given object.
// Pointer types are named after the type they point to.
func TypeName(v any) string {
	if v == nil {
		return ""
	}
	return lowTrim(indirect(reflectType(v)).String())
}

// NameOf returns the name of the type parameter T.
func NameOf[T any]() string {
	return lowTrim(indirect(reflect.TypeFor[T]()).String())
}

func reflectType(v any) reflect.Type {
	if rtype, ok := v.(reflect.Type); ok {
		return rtype
	}
	return reflect.TypeOf(v)
}

func indirect(rtype reflect.Type) reflect.Type {
	for rtype.Kind() == reflect.Pointer {
		rtype = rtype.Elem()
	}
	return rtype
}

// lowTrim trim any space and lower the string value
func lowTrim(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
