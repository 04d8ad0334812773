// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package tracegen

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/merl990827/monachan/pkg/trace"
	"github.com/merl990827/monachan/pkg/util/field"
)

// Layout pins the column schema of one trace module: the column names in
// declared order.  Layouts are the binding surface between the row structs,
// the flattened columnar form, and whatever consumes the trace downstream;
// field order and widths must never drift from them, which the layout tests
// enforce against both the generated tables and the struct declarations.
type Layout struct {
	Name    string
	Columns []string
}

// Width returns the number of columns in this layout.
func (l Layout) Width() uint {
	return uint(len(l.Columns))
}

// LayoutOf returns the layout registered for the given module name.
func LayoutOf(name string) (Layout, bool) {
	for _, layout := range builtinLayouts {
		if layout.Name == name {
			return layout, true
		}
	}
	//
	return Layout{}, false
}

// Layouts returns all registered module layouts.
func Layouts() []Layout {
	layouts := make([]Layout, len(builtinLayouts))
	copy(layouts, builtinLayouts)
	//
	return layouts
}

// Row is implemented by every row record which can be written out in
// columnar form.  Flatten must emit exactly Width elements, in the order
// pinned by the module's layout.
type Row[F any] interface {
	Flatten(dst []F)
	Width() uint
}

// ModuleOf converts a sealed table into its columnar form, one column per
// layout entry.
func ModuleOf[F field.Element[F], R Row[F]](table *Table[R]) (trace.Module[F], error) {
	var empty trace.Module[F]
	//
	if !table.Sealed() {
		return empty, fmt.Errorf("table %s: not sealed", table.Name())
	}
	//
	layout, ok := LayoutOf(table.Name())
	if !ok {
		return empty, fmt.Errorf("table %s: no registered layout", table.Name())
	}
	//
	var (
		rows    = table.Rows()
		width   = layout.Width()
		buf     = make([]F, width)
		columns = make([]trace.Column[F], width)
	)
	// Sanity check the declared shape.
	var blank R
	if blank.Width() != width {
		return empty, fmt.Errorf("table %s: row width %d does not match layout width %d",
			table.Name(), blank.Width(), width)
	}
	//
	for j := range columns {
		columns[j] = trace.Column[F]{Name: layout.Columns[j], Data: make([]F, len(rows))}
	}
	//
	for i := range rows {
		rows[i].Flatten(buf)
		//
		for j := range columns {
			columns[j].Data[i] = buf[j]
		}
	}
	//
	return trace.Module[F]{Name: table.Name(), RealRows: table.RealRows(), Columns: columns}, nil
}

// ReflectColumns computes the column names of a row struct by walking its
// declared fields in order: struct fields contribute their snake-cased name
// to a dot-separated path, array elements an index suffix, and any type in
// leaves exactly one column.  This is the source of truth the layout
// generator bakes into the registered layouts, and the yardstick the layout
// tests hold those layouts to.
func ReflectColumns(row reflect.Type, leaves ...reflect.Type) []string {
	var columns []string
	//
	walkColumns(row, "", leaves, &columns)
	//
	return columns
}

func walkColumns(t reflect.Type, prefix string, leaves []reflect.Type, columns *[]string) {
	for _, leaf := range leaves {
		if t == leaf {
			*columns = append(*columns, prefix)
			return
		}
	}
	//
	switch t.Kind() {
	case reflect.Array:
		for i := 0; i < t.Len(); i++ {
			walkColumns(t.Elem(), fmt.Sprintf("%s[%d]", prefix, i), leaves, columns)
		}
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			walkColumns(f.Type, joinColumnPath(prefix, snakeCase(f.Name)), leaves, columns)
		}
	default:
		panic(fmt.Sprintf("unsupported column type: %s", t))
	}
}

func joinColumnPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	//
	return prefix + "." + name
}

func snakeCase(name string) string {
	var builder strings.Builder
	//
	for i, r := range name {
		if unicode.IsUpper(r) && i != 0 {
			builder.WriteRune('_')
		}
		//
		builder.WriteRune(unicode.ToLower(r))
	}
	//
	return builder.String()
}
