package lt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/merl990827/monachan/pkg/trace"
	"github.com/merl990827/monachan/pkg/util/field"
)

// FromBytes parses a byte array representing the module payload of a trace
// file into modules, or produces an error if the original file was malformed
// in some way.  Column payloads are decoded concurrently, one goroutine per
// column.
func FromBytes[F field.Element[F]](data []byte) ([]trace.Module[F], error) {
	// Construct new bytes.Reader
	buf := bytes.NewReader(data)
	// Read number of modules
	var nmods uint32
	if err := binary.Read(buf, binary.BigEndian, &nmods); err != nil {
		return nil, err
	}
	//
	var (
		modules = make([]trace.Module[F], nmods)
		headers = make([][]columnHeader, nmods)
		heights = make([]uint, nmods)
	)
	// Read module headers
	for i := uint32(0); i < nmods; i++ {
		name, height, realRows, columns, err := readModuleHeader(buf)
		if err != nil {
			return nil, err
		}
		//
		modules[i] = trace.Module[F]{Name: name, RealRows: realRows, Columns: make([]trace.Column[F], len(columns))}
		headers[i] = columns
		heights[i] = height
	}
	// Determine byte offset of the first payload
	offset := uint64(len(data)) - uint64(buf.Len())
	// Dispatch go-routines
	var group errgroup.Group
	//
	for i := range modules {
		for j := range modules[i].Columns {
			var (
				header = headers[i][j]
				module = &modules[i]
				height = heights[i]
				lo     = offset
				hi     = offset + header.length
			)
			// Payload must lie within the data
			if hi > uint64(len(data)) {
				return nil, fmt.Errorf("malformed trace file (column %s truncated)", header.name)
			}
			//
			group.Go(func() error {
				// Read column data
				elements, err := readColumnData[F](header, height, data[lo:hi])
				if err != nil {
					return err
				}
				//
				module.Columns[j] = trace.Column[F]{Name: header.name, Data: elements}
				//
				return nil
			})
			// Update byte offset
			offset = hi
		}
	}
	// Collect results
	if err := group.Wait(); err != nil {
		return nil, err
	}
	// Reject trailing garbage
	if offset != uint64(len(data)) {
		return nil, errors.New("malformed trace file (trailing bytes)")
	}
	// Done
	return modules, nil
}

type columnHeader struct {
	name     string
	width    uint
	encoding uint8
	length   uint64
}

// readModuleHeader reads the meta-data for a specific module in this trace
// file, including the headers of all its columns.
func readModuleHeader(buf *bytes.Reader) (name string, height uint, realRows uint, columns []columnHeader, err error) {
	var height32, realRows32, ncols uint32
	// Read module name
	if name, err = readName(buf); err != nil {
		return "", 0, 0, nil, err
	}
	// Read height
	if err = binary.Read(buf, binary.BigEndian, &height32); err != nil {
		return "", 0, 0, nil, err
	}
	// Read real rows
	if err = binary.Read(buf, binary.BigEndian, &realRows32); err != nil {
		return "", 0, 0, nil, err
	}
	// Real rows never exceed the padded height
	if realRows32 > height32 {
		return "", 0, 0, nil, fmt.Errorf("malformed trace file (module %s has %d real rows of %d)", name, realRows32, height32)
	}
	// Read column count
	if err = binary.Read(buf, binary.BigEndian, &ncols); err != nil {
		return "", 0, 0, nil, err
	}
	//
	columns = make([]columnHeader, ncols)
	//
	for i := range columns {
		if columns[i], err = readColumnHeader(buf); err != nil {
			return "", 0, 0, nil, err
		}
	}
	//
	return name, uint(height32), uint(realRows32), columns, nil
}

// readColumnHeader reads the meta-data for a specific column in this trace
// file.
func readColumnHeader(buf *bytes.Reader) (columnHeader, error) {
	var (
		header          columnHeader
		err             error
		bytesPerElement uint8
		length          uint64
	)
	// Read column name
	if header.name, err = readName(buf); err != nil {
		return header, err
	}
	// Read bytes per element
	if err := binary.Read(buf, binary.BigEndian, &bytesPerElement); err != nil {
		return header, err
	}
	// Read encoding
	if err := binary.Read(buf, binary.BigEndian, &header.encoding); err != nil {
		return header, err
	}
	// Read payload length
	if err := binary.Read(buf, binary.BigEndian, &length); err != nil {
		return header, err
	}
	//
	header.width = uint(bytesPerElement)
	header.length = length
	// Done
	return header, nil
}

// readColumnData decodes the payload of one column into field elements.
func readColumnData[F field.Element[F]](header columnHeader, height uint, data []byte) ([]F, error) {
	switch header.encoding {
	case ENCODING_INTCOMP:
		return readCompressedColumnData[F](header, height, data)
	case ENCODING_RAW:
		return readRawColumnData[F](header, height, data)
	}
	//
	return nil, fmt.Errorf("unknown column encoding (%d)", header.encoding)
}

func readCompressedColumnData[F field.Element[F]](header columnHeader, height uint, data []byte) ([]F, error) {
	values, err := decompressUints32(data)
	// Check for error
	if err != nil {
		return nil, err
	}
	// Decompressed length must match the module height
	if uint(len(values)) != height {
		return nil, fmt.Errorf("malformed trace file (column %s has %d rows of %d)", header.name, len(values), height)
	}
	//
	elements := make([]F, height)
	//
	for i := range elements {
		elements[i] = field.Uint64[F](uint64(values[i]))
	}
	// Done
	return elements, nil
}

func readRawColumnData[F field.Element[F]](header columnHeader, height uint, data []byte) ([]F, error) {
	// Payload length must match the module height exactly
	if uint64(height)*uint64(header.width) != uint64(len(data)) {
		return nil, fmt.Errorf("malformed trace file (column %s has %d bytes for %d rows)", header.name, len(data), height)
	}
	//
	var (
		elements = make([]F, height)
		offset   = uint(0)
	)
	//
	for i := range elements {
		// Calculate position of next element
		next := offset + header.width
		// Construct ith field element
		elements[i] = field.FromBigEndianBytes[F](data[offset:next])
		// Move offset to next element
		offset = next
	}
	// Done
	return elements, nil
}

func readName(buf *bytes.Reader) (string, error) {
	// Read name length
	var nameLen uint16
	if err := binary.Read(buf, binary.BigEndian, &nameLen); err != nil {
		return "", err
	}
	// Read name bytes
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(buf, name); err != nil {
		return "", err
	}
	//
	return string(name), nil
}
