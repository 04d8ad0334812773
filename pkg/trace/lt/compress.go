package lt

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/ronanh/intcomp"
)

// compressUints32 compresses a slice of uint32 values into a length-prefixed
// byte payload.
func compressUints32(input []uint32) ([]byte, error) {
	var (
		buf    bytes.Buffer
		buffer = intcomp.CompressUint32(input, nil)
	)
	// Write compressed word count
	if err := binary.Write(&buf, binary.LittleEndian, uint64(len(buffer))); err != nil {
		return nil, err
	}
	// Write compressed words
	if err := binary.Write(&buf, binary.LittleEndian, buffer); err != nil {
		return nil, err
	}
	//
	return buf.Bytes(), nil
}

// decompressUints32 reverses compressUints32.
func decompressUints32(data []byte) ([]uint32, error) {
	var (
		reader = bytes.NewReader(data)
		length uint64
	)
	// Read compressed word count
	if err := binary.Read(reader, binary.LittleEndian, &length); err != nil {
		return nil, err
	}
	// The prefix must account for the remaining bytes exactly, which also
	// bounds the allocation below on corrupted input.
	if length*4 != uint64(reader.Len()) {
		return nil, errors.New("malformed trace file")
	}
	//
	buffer := make([]uint32, length)
	// Read compressed words
	if err := binary.Read(reader, binary.LittleEndian, buffer); err != nil {
		return nil, err
	}
	//
	return intcomp.UncompressUint32(buffer, nil), nil
}
