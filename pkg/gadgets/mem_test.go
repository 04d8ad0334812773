package gadgets

import (
	"math/rand"
	"testing"

	"github.com/merl990827/monachan/pkg/util/field"
)

func Test_Mem_01(t *testing.T) {
	rnd := rand.New(rand.NewSource(61))
	//
	instr := MemInstr[bb]{
		Addr: AddressOf[bb](42),
		Val:  randBlock(rnd),
		Mult: field.Uint64[bb](7),
		Kind: MemRead,
	}
	//
	var row MemPreprocessedCols[bb]
	//
	MemChip[bb]{}.InstrToRow(instr, &row)
	//
	if !row.IsReal.IsOne() {
		t.Errorf("is_real not one: %s", row.IsReal)
	}
	//
	if !row.IsRead.IsOne() || !row.IsWrite.IsZero() {
		t.Error("read not one-hot encoded")
	}
	//
	if row.Addr != instr.Addr || row.Val != instr.Val || row.Mult.Cmp(instr.Mult) != 0 {
		t.Error("instruction fields not copied verbatim")
	}
}

func Test_Mem_02(t *testing.T) {
	instr := MemInstr[bb]{
		Addr: AddressOf[bb](17),
		Kind: MemWrite,
	}
	//
	var row MemPreprocessedCols[bb]
	//
	MemChip[bb]{}.InstrToRow(instr, &row)
	//
	if !row.IsWrite.IsOne() || !row.IsRead.IsZero() {
		t.Error("write not one-hot encoded")
	}
	// Constant image defaults to the zero block for write instructions
	// which carry none.
	if !row.Val.IsZero() {
		t.Errorf("constant image not zero: %s", row.Val)
	}
}

func Test_Mem_03(t *testing.T) {
	rnd := rand.New(rand.NewSource(62))
	//
	for i := 0; i < 100; i++ {
		event := MemEvent[bb]{Inner: randBlock(rnd)}
		//
		var row MemVarCols[bb]
		//
		MemChip[bb]{}.EventToRow(event, &row)
		//
		if row.Vals != event.Inner {
			t.Errorf("payload changed: %v vs %v", row.Vals, event.Inner)
		}
	}
}

func Test_Mem_04(t *testing.T) {
	// The zero row is a padding row.
	var row MemPreprocessedCols[bb]
	//
	if !row.IsReal.IsZero() || !row.IsRead.IsZero() || !row.IsWrite.IsZero() {
		t.Error("zero row not marked padding")
	}
}

func Test_Mem_05(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on unknown access kind")
		}
	}()
	//
	var row MemPreprocessedCols[bb]
	//
	MemChip[bb]{}.InstrToRow(MemInstr[bb]{Kind: MemAccessKind(7)}, &row)
}
