package main

import (
	"fmt"
	"os"
	"os/exec"
	"reflect"
	"slices"
	"strings"

	"github.com/consensys/bavard"

	"github.com/merl990827/monachan/pkg/gadgets"
	"github.com/merl990827/monachan/pkg/tracegen"
	"github.com/merl990827/monachan/pkg/util/field/babybear"
)

const copyrightHolder = "Consensys Software Inc."

//go:generate go run main.go
func main() {
	bgen := bavard.NewBatchGenerator(copyrightHolder, 2025, "monachan")

	// Column names are independent of the field, so any registered field
	// serves to instantiate the row structs for reflection.
	type bb = babybear.Element

	specs := []moduleSpec{
		{Name: "select", Row: gadgets.SelectCols[bb]{}},
		{Name: "select_preprocessed", Row: gadgets.SelectPreprocessedCols[bb]{}},
		{Name: "base_alu", Row: gadgets.BaseAluValueCols[bb]{}},
		{Name: "base_alu_preprocessed", Row: gadgets.BaseAluAccessCols[bb]{}},
		{Name: "ext_alu", Row: gadgets.ExtAluValueCols[bb]{}},
		{Name: "ext_alu_preprocessed", Row: gadgets.ExtAluAccessCols[bb]{}},
		{Name: "mem", Row: gadgets.MemVarCols[bb]{}},
		{Name: "mem_preprocessed", Row: gadgets.MemPreprocessedCols[bb]{}},
	}

	leaves := []reflect.Type{
		reflect.TypeOf(bb{}),
		reflect.TypeOf(gadgets.Address[bb]{}),
	}

	data := layoutData{}

	for _, spec := range specs {
		data.Layouts = append(data.Layouts, tracegen.Layout{
			Name:    spec.Name,
			Columns: tracegen.ReflectColumns(reflect.TypeOf(spec.Row), leaves...),
		})
	}

	assertNoError(bgen.Generate(data, "tracegen", "templates",
		bavard.Entry{
			File:      "../../pkg/tracegen/layouts.go",
			Templates: []string{"layouts.go.tmpl"},
		},
	), "generating layouts")

	// run gofmt on the generated file
	runCmd("gofmt", "-w", "../../pkg/tracegen")

	// run goimports on the generated file
	runCmd("goimports", "-w", "../../pkg/tracegen")
}

type moduleSpec struct {
	Name string
	Row  any
}

type layoutData struct {
	Layouts []tracegen.Layout
}

func runCmd(name string, arg ...string) {
	fmt.Println(name, strings.Join(arg, " "))
	cmd := exec.Command(name, arg...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	assertNoError(cmd.Run(), "")
}

func assertNoError(err error, contextAndArgs ...any) {
	if err != nil {
		msg := err.Error()

		if len(contextAndArgs) > 0 {
			allArgs := append(slices.Clone(contextAndArgs[1:]), err)
			msg = fmt.Sprintf(contextAndArgs[0].(string)+": %v", allArgs...)
		}

		fmt.Println(msg)
		os.Exit(1)
	}
}
