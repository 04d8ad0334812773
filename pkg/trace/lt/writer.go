package lt

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/merl990827/monachan/pkg/trace"
	"github.com/merl990827/monachan/pkg/util/field"
)

// Column payload encodings.  Narrow fields store each column as a compressed
// stream of uint32 values; wide fields store fixed-width big-endian bytes.
const (
	ENCODING_RAW     uint8 = 0
	ENCODING_INTCOMP uint8 = 1
)

// ToBytes writes a given set of trace modules as an array of bytes.
func ToBytes[F field.Element[F]](modules []trace.Module[F]) ([]byte, error) {
	buf, err := ToBytesBuffer(modules)
	if err != nil {
		return nil, err
	}
	//
	return buf.Bytes(), err
}

// ToBytesBuffer writes a given set of trace modules into a byte buffer.
func ToBytesBuffer[F field.Element[F]](modules []trace.Module[F]) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := WriteBytes(modules, &buf); err != nil {
		return nil, err
	}

	return &buf, nil
}

// WriteBytes writes a given set of trace modules to an io.Writer, module and
// column headers first, followed by the column payloads in order.
func WriteBytes[F field.Element[F]](modules []trace.Module[F], buf io.Writer) error {
	var (
		byteWidth = field.Zero[F]().ByteWidth()
		encoding  = ENCODING_RAW
		payloads  [][]byte
	)
	// Elements of four bytes or fewer always fit a uint32, hence compress.
	if byteWidth <= 4 {
		encoding = ENCODING_INTCOMP
	}
	// Encode all column payloads up front, since their encoded lengths form
	// part of the headers.
	for _, ith := range modules {
		for _, jth := range ith.Columns {
			payload, err := encodeColumnData(jth.Data, byteWidth, encoding)
			if err != nil {
				return err
			}
			//
			payloads = append(payloads, payload)
		}
	}
	// Write module count
	if err := binary.Write(buf, binary.BigEndian, uint32(len(modules))); err != nil {
		return err
	}
	// Write header information
	k := 0
	//
	for i := range modules {
		ith := &modules[i]
		// Write module name
		if err := writeName(buf, ith.Name); err != nil {
			return err
		}
		// Write height
		if err := binary.Write(buf, binary.BigEndian, uint32(ith.Height())); err != nil {
			return err
		}
		// Write real rows
		if err := binary.Write(buf, binary.BigEndian, uint32(ith.RealRows)); err != nil {
			return err
		}
		// Write column count
		if err := binary.Write(buf, binary.BigEndian, uint32(len(ith.Columns))); err != nil {
			return err
		}
		//
		for _, jth := range ith.Columns {
			// Write column name
			if err := writeName(buf, jth.Name); err != nil {
				return err
			}
			// Write bytes per element
			if err := binary.Write(buf, binary.BigEndian, uint8(byteWidth)); err != nil {
				return err
			}
			// Write encoding
			if err := binary.Write(buf, binary.BigEndian, encoding); err != nil {
				return err
			}
			// Write payload length
			if err := binary.Write(buf, binary.BigEndian, uint64(len(payloads[k]))); err != nil {
				return err
			}
			//
			k++
		}
	}
	// Write column data
	for _, payload := range payloads {
		if _, err := buf.Write(payload); err != nil {
			return err
		}
	}
	// Done
	return nil
}

// encodeColumnData encodes one column of elements under the given encoding.
func encodeColumnData[F field.Element[F]](data []F, byteWidth uint, encoding uint8) ([]byte, error) {
	if encoding == ENCODING_INTCOMP {
		values := make([]uint32, len(data))
		//
		for i := range data {
			var word [4]byte
			// Right align the (at most four) element bytes
			bytes := data[i].Bytes()
			copy(word[4-len(bytes):], bytes)
			//
			values[i] = binary.BigEndian.Uint32(word[:])
		}
		//
		return compressUints32(values)
	}
	// Raw encoding: fixed-width big-endian elements back to back.
	payload := make([]byte, 0, uint(len(data))*byteWidth)
	//
	for i := range data {
		payload = append(payload, data[i].Bytes()...)
	}
	//
	return payload, nil
}

func writeName(w io.Writer, name string) error {
	nameBytes := []byte(name)
	// Write name length
	if err := binary.Write(w, binary.BigEndian, uint16(len(nameBytes))); err != nil {
		return err
	}
	// Write name bytes
	_, err := w.Write(nameBytes)
	//
	return err
}
