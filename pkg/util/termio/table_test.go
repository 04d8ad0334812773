package termio

import (
	"bytes"
	"testing"
)

func Test_Table_01(t *testing.T) {
	table := NewTablePrinter(2, 2)
	table.SetRow(0, "module", "rows")
	table.SetRow(1, "mem", "1024")
	//
	var buf bytes.Buffer
	table.Fprint(&buf)
	//
	expected := " module | rows |\n    mem | 1024 |\n"
	if buf.String() != expected {
		t.Errorf("printed %q, expected %q", buf.String(), expected)
	}
}

func Test_Table_02(t *testing.T) {
	// Overlong cells are truncated to the column bound.
	table := NewTablePrinter(1, 1)
	table.Set(0, 0, "0123456789")
	table.SetMaxWidths(6)
	//
	var buf bytes.Buffer
	table.Fprint(&buf)
	//
	expected := " 0123.. |\n"
	if buf.String() != expected {
		t.Errorf("printed %q, expected %q", buf.String(), expected)
	}
}
