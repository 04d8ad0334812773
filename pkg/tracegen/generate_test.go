package tracegen

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/merl990827/monachan/pkg/gadgets"
	"github.com/merl990827/monachan/pkg/program"
	"github.com/merl990827/monachan/pkg/util/field"
)

func Test_Generate_01(t *testing.T) {
	var (
		p = buildProgram(rand.New(rand.NewSource(1)), 3, 2, 1, 4)
		r = buildRecord(rand.New(rand.NewSource(1)), 5, 4, 2, 3)
		//
		expected = map[string][2]uint{
			"select_preprocessed":   {3, 4},
			"select":                {5, 8},
			"base_alu_preprocessed": {2, 2},
			"base_alu":              {4, 4},
			"ext_alu_preprocessed":  {1, 1},
			"ext_alu":               {2, 2},
			"mem_preprocessed":      {4, 4},
			"mem":                   {3, 4},
		}
	)
	//
	ts, err := Generate(p, r, Options{Workers: 4})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	//
	modules, err := ts.Modules()
	if err != nil {
		t.Fatalf("modules failed: %v", err)
	}
	//
	for i := range modules {
		shape, ok := expected[modules[i].Name]
		if !ok {
			t.Fatalf("unexpected module %s", modules[i].Name)
		}
		//
		if modules[i].RealRows != shape[0] {
			t.Errorf("module %s: real rows %d, expected %d", modules[i].Name, modules[i].RealRows, shape[0])
		}
		//
		if modules[i].Height() != shape[1] {
			t.Errorf("module %s: height %d, expected %d", modules[i].Name, modules[i].Height(), shape[1])
		}
	}
}

func Test_Generate_02(t *testing.T) {
	// Worker count must never influence the generated trace.
	p := buildProgram(rand.New(rand.NewSource(2)), 100, 80, 60, 40)
	r := buildRecord(rand.New(rand.NewSource(2)), 90, 70, 50, 30)
	//
	ts1, err := Generate(p, r, Options{Workers: 1})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	//
	ts2, err := Generate(p, r, Options{Workers: 16})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	//
	m1, err := ts1.Modules()
	if err != nil {
		t.Fatalf("modules failed: %v", err)
	}
	//
	m2, err := ts2.Modules()
	if err != nil {
		t.Fatalf("modules failed: %v", err)
	}
	//
	if diff := cmp.Diff(m1, m2); diff != "" {
		t.Errorf("trace mismatch (-1 worker +16 workers):\n%s", diff)
	}
}

func Test_Generate_03(t *testing.T) {
	// Modules come out in a fixed order, each matching its registered layout.
	order := []string{
		"select_preprocessed", "select",
		"base_alu_preprocessed", "base_alu",
		"ext_alu_preprocessed", "ext_alu",
		"mem_preprocessed", "mem",
	}
	//
	ts, err := Generate(
		buildProgram(rand.New(rand.NewSource(3)), 2, 2, 2, 2),
		buildRecord(rand.New(rand.NewSource(3)), 2, 2, 2, 2),
		Options{},
	)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	//
	modules, err := ts.Modules()
	if err != nil {
		t.Fatalf("modules failed: %v", err)
	}
	//
	if len(modules) != len(order) {
		t.Fatalf("%d modules, expected %d", len(modules), len(order))
	}
	//
	for i := range modules {
		if modules[i].Name != order[i] {
			t.Errorf("module %d is %s, expected %s", i, modules[i].Name, order[i])
		}
		//
		layout, ok := LayoutOf(modules[i].Name)
		if !ok {
			t.Fatalf("module %s has no layout", modules[i].Name)
		}
		//
		if modules[i].Width() != layout.Width() {
			t.Errorf("module %s: width %d, expected %d", modules[i].Name, modules[i].Width(), layout.Width())
		}
		//
		for j, c := range modules[i].Columns {
			if c.Name != layout.Columns[j] {
				t.Errorf("module %s: column %d named %s, expected %s", modules[i].Name, j, c.Name, layout.Columns[j])
			}
		}
	}
}

func Test_Generate_04(t *testing.T) {
	// An empty program / record pair generates eight empty modules.
	var (
		p program.Program[bb]
		r program.Record[bb]
	)
	//
	ts, err := Generate(&p, &r, Options{Workers: 4})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	//
	modules, err := ts.Modules()
	if err != nil {
		t.Fatalf("modules failed: %v", err)
	}
	//
	for i := range modules {
		if modules[i].Height() != 0 {
			t.Errorf("module %s: height %d, expected 0", modules[i].Name, modules[i].Height())
		}
	}
}

func Test_Generate_05(t *testing.T) {
	// Realness discriminants hold exactly on real rows, and padding rows are
	// all zero.
	ts, err := Generate(
		buildProgram(rand.New(rand.NewSource(5)), 5, 5, 5, 5),
		buildRecord(rand.New(rand.NewSource(5)), 5, 5, 5, 5),
		Options{Workers: 2},
	)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	//
	modules, err := ts.Modules()
	if err != nil {
		t.Fatalf("modules failed: %v", err)
	}
	//
	for i := range modules {
		m := &modules[i]
		//
		if isReal, ok := m.Column("is_real"); ok {
			for j := uint(0); j < m.Height(); j++ {
				if j < m.RealRows && !isReal.Data[j].IsOne() {
					t.Errorf("module %s: is_real[%d] not one", m.Name, j)
				} else if j >= m.RealRows && !isReal.Data[j].IsZero() {
					t.Errorf("module %s: is_real[%d] not zero", m.Name, j)
				}
			}
		}
		// Every column of every module is zero on padding rows.
		for _, c := range m.Columns {
			for j := m.RealRows; j < m.Height(); j++ {
				if !c.Data[j].IsZero() {
					t.Errorf("module %s: column %s not zero on padding row %d", m.Name, c.Name, j)
				}
			}
		}
	}
}

func Test_Generate_06(t *testing.T) {
	// Modules on an unsealed table must be rejected.
	table := NewTable[gadgets.SelectCols[bb]]("select", 2)
	//
	if _, err := ModuleOf[bb](table); err == nil {
		t.Error("flattening an unsealed table succeeded")
	}
}

func Test_Generate_07(t *testing.T) {
	// Tables without a registered layout must be rejected.
	table := NewTable[gadgets.SelectCols[bb]]("no_such_module", 0)
	//
	if err := table.Seal(); err != nil {
		t.Fatalf("seal failed: %v", err)
	}
	//
	if _, err := ModuleOf[bb](table); err == nil {
		t.Error("flattening a table without layout succeeded")
	}
}

// ============================================================================
// Test Helpers
// ============================================================================

// buildProgram constructs a pseudo-random program with the given number of
// select, base ALU, ext ALU and memory instructions.
func buildProgram(rnd *rand.Rand, selects, bases, exts, mems uint) *program.Program[bb] {
	var p program.Program[bb]
	//
	for range selects {
		p.Select = append(p.Select, gadgets.SelectInstr[bb]{
			Addrs: gadgets.SelectIo[gadgets.Address[bb]]{
				Bit:  gadgets.AddressOf[bb](rnd.Uint64()),
				Out1: gadgets.AddressOf[bb](rnd.Uint64()),
				Out2: gadgets.AddressOf[bb](rnd.Uint64()),
				In1:  gadgets.AddressOf[bb](rnd.Uint64()),
				In2:  gadgets.AddressOf[bb](rnd.Uint64()),
			},
			Mult1: field.Uint64[bb](rnd.Uint64()),
			Mult2: field.Uint64[bb](rnd.Uint64()),
		})
	}
	//
	for range bases {
		p.BaseAlu = append(p.BaseAlu, gadgets.BaseAluInstr[bb]{
			Opcode: gadgets.BaseAluOpcode(rnd.Intn(4)),
			Mult:   field.Uint64[bb](rnd.Uint64()),
			Addrs: gadgets.BaseAluIo[gadgets.Address[bb]]{
				Out: gadgets.AddressOf[bb](rnd.Uint64()),
				In1: gadgets.AddressOf[bb](rnd.Uint64()),
				In2: gadgets.AddressOf[bb](rnd.Uint64()),
			},
		})
	}
	//
	for range exts {
		p.ExtAlu = append(p.ExtAlu, gadgets.ExtAluInstr[bb]{
			Opcode: gadgets.ExtAluOpcode(rnd.Intn(4)),
			Mult:   field.Uint64[bb](rnd.Uint64()),
			Addrs: gadgets.ExtAluIo[gadgets.Address[bb]]{
				Out: gadgets.AddressOf[bb](rnd.Uint64()),
				In1: gadgets.AddressOf[bb](rnd.Uint64()),
				In2: gadgets.AddressOf[bb](rnd.Uint64()),
			},
		})
	}
	//
	for range mems {
		p.Mem = append(p.Mem, gadgets.MemInstr[bb]{
			Addr: gadgets.AddressOf[bb](rnd.Uint64()),
			Val:  randEventBlock(rnd),
			Mult: field.Uint64[bb](rnd.Uint64()),
			Kind: gadgets.MemAccessKind(rnd.Intn(2)),
		})
	}
	//
	return &p
}

// buildRecord constructs a pseudo-random record with the given number of
// select, base ALU, ext ALU and memory events.
func buildRecord(rnd *rand.Rand, selects, bases, exts, mems uint) *program.Record[bb] {
	var r program.Record[bb]
	//
	r.Select = randSelectEvents(rnd, selects)
	//
	for range bases {
		r.BaseAlu = append(r.BaseAlu, gadgets.BaseAluEvent[bb]{
			Out: field.Uint64[bb](rnd.Uint64()),
			In1: field.Uint64[bb](rnd.Uint64()),
			In2: field.Uint64[bb](rnd.Uint64()),
		})
	}
	//
	for range exts {
		r.ExtAlu = append(r.ExtAlu, gadgets.ExtAluEvent[bb]{
			Out: randEventBlock(rnd),
			In1: randEventBlock(rnd),
			In2: randEventBlock(rnd),
		})
	}
	//
	for range mems {
		r.Mem = append(r.Mem, gadgets.MemEvent[bb]{Inner: randEventBlock(rnd)})
	}
	//
	return &r
}

func randEventBlock(rnd *rand.Rand) gadgets.Block[bb] {
	var block gadgets.Block[bb]
	//
	for i := range block {
		block[i] = field.Uint64[bb](rnd.Uint64())
	}
	//
	return block
}
