//go:build !cuda

package tracegen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/merl990827/monachan/pkg/trace"
	"github.com/merl990827/monachan/pkg/util/field"
)

func Test_Device_01(t *testing.T) {
	if HasCUDA {
		t.Error("HasCUDA set without the cuda build tag")
	}
}

func Test_Device_02(t *testing.T) {
	// Without the cuda build tag, upload must fail loudly rather than fall
	// back to the host silently.
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("upload without cuda build tag did not panic")
		}
		//
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "'cuda' build tag") {
			t.Errorf("unexpected panic: %v", r)
		}
	}()
	//
	Upload(trace.Module[bb]{Name: "select"})
}

func Test_Device_03(t *testing.T) {
	// The upload image is column major, elements big endian.
	module := trace.Module[bb]{
		Name:     "count",
		RealRows: 2,
		Columns: []trace.Column[bb]{
			{Name: "a", Data: []bb{field.Uint64[bb](1), field.Uint64[bb](2)}},
			{Name: "b", Data: []bb{field.Uint64[bb](3), field.Uint64[bb](4)}},
		},
	}
	//
	expected := []byte{
		0, 0, 0, 1,
		0, 0, 0, 2,
		0, 0, 0, 3,
		0, 0, 0, 4,
	}
	//
	if data := ModuleBytes(module); !bytes.Equal(data, expected) {
		t.Errorf("module bytes %v, expected %v", data, expected)
	}
}

func Test_Device_04(t *testing.T) {
	valid := map[string]Target{"host": TargetHost, "cuda": TargetCUDA}
	//
	for name, expected := range valid {
		target, err := ParseTarget(name)
		if err != nil {
			t.Errorf("parsing %q failed: %v", name, err)
		} else if target != expected {
			t.Errorf("parsing %q gave %v", name, target)
		}
		//
		if target.String() != name {
			t.Errorf("target %v renders as %q", target, target.String())
		}
	}
	//
	if _, err := ParseTarget("tpu"); err == nil {
		t.Error("parsing unknown target succeeded")
	} else if !strings.Contains(err.Error(), "unknown target") {
		t.Errorf("unexpected error: %v", err)
	}
}
