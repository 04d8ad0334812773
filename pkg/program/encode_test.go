package program

import (
	"bytes"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	"github.com/merl990827/monachan/pkg/gadgets"
	"github.com/merl990827/monachan/pkg/util/field"
	"github.com/merl990827/monachan/pkg/util/field/babybear"
	"github.com/merl990827/monachan/pkg/util/field/bls12_377"
)

type bb = babybear.Element

func Test_Program_01(t *testing.T) {
	p := randProgram(rand.New(rand.NewSource(1)), 10)
	//
	var buf bytes.Buffer
	//
	require.NoError(t, WriteProgram(&buf, p, babybear.Name))
	//
	q, err := ReadProgram[bb](&buf, babybear.Name)
	require.NoError(t, err)
	require.Equal(t, p, q)
}

func Test_Program_02(t *testing.T) {
	// Identical programs must produce identical digests.
	p1 := randProgram(rand.New(rand.NewSource(2)), 32)
	p2 := randProgram(rand.New(rand.NewSource(2)), 32)
	//
	d1, err := p1.Digest()
	require.NoError(t, err)
	//
	d2, err := p2.Digest()
	require.NoError(t, err)
	require.Equal(t, d1, d2)
	// Whilst any change to an instruction must change the digest.
	p2.Mem[0].Mult = p2.Mem[0].Mult.Add(field.One[bb]())
	//
	d3, err := p2.Digest()
	require.NoError(t, err)
	require.NotEqual(t, d1, d3)
}

func Test_Program_03(t *testing.T) {
	// A record blob must be rejected when a program is expected.
	r := randRecord(rand.New(rand.NewSource(3)), 5)
	//
	var buf bytes.Buffer
	//
	require.NoError(t, WriteRecord(&buf, r, babybear.Name))
	//
	_, err := ReadProgram[bb](&buf, babybear.Name)
	require.ErrorContains(t, err, "unexpected container kind")
}

func Test_Program_04(t *testing.T) {
	// A program over one field must be rejected when loaded over another.
	p := randProgram(rand.New(rand.NewSource(4)), 5)
	//
	var buf bytes.Buffer
	//
	require.NoError(t, WriteProgram(&buf, p, babybear.Name))
	//
	_, err := ReadProgram[bb](&buf, bls12_377.Name)
	require.ErrorContains(t, err, "field")
}

func Test_Program_05(t *testing.T) {
	// An envelope whose digest disagrees with its payload must be rejected.
	env := envelope{
		Version: "0.1.0",
		Kind:    KindProgram,
		Field:   babybear.Name,
		Digest:  make([]byte, 32),
		Payload: []byte{0x80},
	}
	//
	blob, err := encMode.Marshal(env)
	require.NoError(t, err)
	//
	_, err = ReadProgram[bb](bytes.NewReader(blob), babybear.Name)
	require.ErrorContains(t, err, "digest mismatch")
}

func Test_Program_06(t *testing.T) {
	p := randProgram(rand.New(rand.NewSource(6)), 20)
	filename := filepath.Join(t.TempDir(), "test.mpf")
	//
	require.NoError(t, WriteProgramFile(filename, p, babybear.Name))
	//
	q, err := ReadProgramFile[bb](filename, babybear.Name)
	require.NoError(t, err)
	require.Equal(t, p, q)
}

func Test_Record_01(t *testing.T) {
	r := randRecord(rand.New(rand.NewSource(7)), 10)
	//
	var buf bytes.Buffer
	//
	require.NoError(t, WriteRecord(&buf, r, babybear.Name))
	//
	s, err := ReadRecord[bb](&buf, babybear.Name)
	require.NoError(t, err)
	require.Equal(t, r, s)
	require.Equal(t, uint(40), s.Events())
}

func Test_Record_02(t *testing.T) {
	r := randRecord(rand.New(rand.NewSource(8)), 4)
	filename := filepath.Join(t.TempDir(), "test.mrf")
	//
	require.NoError(t, WriteRecordFile(filename, r, babybear.Name))
	//
	s, err := ReadRecordFile[bb](filename, babybear.Name)
	require.NoError(t, err)
	require.Equal(t, r, s)
}

func Test_Record_03(t *testing.T) {
	// An empty record is a legitimate artifact.
	var (
		r   Record[bb]
		buf bytes.Buffer
	)
	//
	require.NoError(t, WriteRecord(&buf, &r, babybear.Name))
	//
	s, err := ReadRecord[bb](&buf, babybear.Name)
	require.NoError(t, err)
	require.Equal(t, uint(0), s.Events())
}

func Test_Version_01(t *testing.T) {
	// Artifacts written by a different major version must be rejected.
	_, err := ReadProgram[bb](bytes.NewReader(sealEnvelope(t, "9.9.9")), babybear.Name)
	require.ErrorContains(t, err, "incompatible artifact version")
}

func Test_Version_02(t *testing.T) {
	// Artifacts differing only in minor / patch version load with a warning.
	p, err := ReadProgram[bb](bytes.NewReader(sealEnvelope(t, "0.999.0")), babybear.Name)
	require.NoError(t, err)
	require.Equal(t, uint(0), p.Instructions())
}

func Test_Version_03(t *testing.T) {
	// Artifacts with an unparseable version must be rejected.
	_, err := ReadProgram[bb](bytes.NewReader(sealEnvelope(t, "not-a-version")), babybear.Name)
	require.ErrorContains(t, err, "when parsing artifact version")
}

// ============================================================================
// Test Helpers
// ============================================================================

func randElem(rnd *rand.Rand) bb {
	return field.Uint64[bb](rnd.Uint64())
}

func randAddress(rnd *rand.Rand) gadgets.Address[bb] {
	return gadgets.AddressOf[bb](rnd.Uint64())
}

func randBlock(rnd *rand.Rand) gadgets.Block[bb] {
	var block gadgets.Block[bb]
	//
	for i := range block {
		block[i] = randElem(rnd)
	}
	//
	return block
}

// randProgram constructs a pseudo-random program holding n instructions per
// gadget.
func randProgram(rnd *rand.Rand, n uint) *Program[bb] {
	var p Program[bb]
	//
	for range n {
		p.Select = append(p.Select, gadgets.SelectInstr[bb]{
			Addrs: gadgets.SelectIo[gadgets.Address[bb]]{
				Bit:  randAddress(rnd),
				Out1: randAddress(rnd),
				Out2: randAddress(rnd),
				In1:  randAddress(rnd),
				In2:  randAddress(rnd),
			},
			Mult1: randElem(rnd),
			Mult2: randElem(rnd),
		})
		//
		p.BaseAlu = append(p.BaseAlu, gadgets.BaseAluInstr[bb]{
			Opcode: gadgets.BaseAluOpcode(rnd.Intn(4)),
			Mult:   randElem(rnd),
			Addrs: gadgets.BaseAluIo[gadgets.Address[bb]]{
				Out: randAddress(rnd),
				In1: randAddress(rnd),
				In2: randAddress(rnd),
			},
		})
		//
		p.ExtAlu = append(p.ExtAlu, gadgets.ExtAluInstr[bb]{
			Opcode: gadgets.ExtAluOpcode(rnd.Intn(4)),
			Mult:   randElem(rnd),
			Addrs: gadgets.ExtAluIo[gadgets.Address[bb]]{
				Out: randAddress(rnd),
				In1: randAddress(rnd),
				In2: randAddress(rnd),
			},
		})
		//
		p.Mem = append(p.Mem, gadgets.MemInstr[bb]{
			Addr: randAddress(rnd),
			Val:  randBlock(rnd),
			Mult: randElem(rnd),
			Kind: gadgets.MemAccessKind(rnd.Intn(2)),
		})
	}
	//
	return &p
}

// randRecord constructs a pseudo-random record holding n events per gadget.
func randRecord(rnd *rand.Rand, n uint) *Record[bb] {
	var r Record[bb]
	//
	for range n {
		r.Select = append(r.Select, gadgets.SelectEvent[bb]{
			Bit:  randElem(rnd),
			Out1: randElem(rnd),
			Out2: randElem(rnd),
			In1:  randElem(rnd),
			In2:  randElem(rnd),
		})
		//
		r.BaseAlu = append(r.BaseAlu, gadgets.BaseAluEvent[bb]{
			Out: randElem(rnd),
			In1: randElem(rnd),
			In2: randElem(rnd),
		})
		//
		r.ExtAlu = append(r.ExtAlu, gadgets.ExtAluEvent[bb]{
			Out: randBlock(rnd),
			In1: randBlock(rnd),
			In2: randBlock(rnd),
		})
		//
		r.Mem = append(r.Mem, gadgets.MemEvent[bb]{Inner: randBlock(rnd)})
	}
	//
	return &r
}

// sealEnvelope constructs a valid, empty program envelope carrying the given
// version string.
func sealEnvelope(t *testing.T, version string) []byte {
	var p Program[bb]
	//
	payload, err := encMode.Marshal(&p)
	require.NoError(t, err)
	//
	digest := sha3.Sum256(payload)
	//
	blob, err := encMode.Marshal(envelope{
		Version: version,
		Kind:    KindProgram,
		Field:   babybear.Name,
		Digest:  digest[:],
		Payload: payload,
	})
	require.NoError(t, err)
	//
	return blob
}
