package lt

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Summary describes the shape and provenance of a trace file without
// decoding any column data, making it cheap even on very large traces.  It
// is also field agnostic, since nothing in it depends on the element type.
type Summary struct {
	MajorVersion uint16
	MinorVersion uint16
	Metadata     Metadata
	Modules      []ModuleSummary
}

// ModuleSummary describes the shape of a single module within a trace file.
type ModuleSummary struct {
	Name     string
	Height   uint
	RealRows uint
	Width    uint
	// Bytes gives the total encoded payload size across all columns.
	Bytes uint64
}

// Summarize parses the headers of the given trace file, skipping over all
// column payloads.
func Summarize(data []byte) (Summary, error) {
	var (
		summary Summary
		header  Header
		buffer  = bytes.NewBuffer(data)
	)
	// Read header
	if err := header.UnmarshalBinary(buffer); err != nil {
		return summary, err
	}
	//
	if !header.IsCompatible() {
		return summary, fmt.Errorf("incompatible binary file was v%d.%d, but expected v%d.%d)",
			header.MajorVersion, header.MinorVersion, LT_MAJOR_VERSION, LT_MINOR_VERSION)
	}
	// Read metadata
	metadata, err := header.GetMetadata()
	if err != nil {
		return summary, err
	}
	//
	summary.MajorVersion = header.MajorVersion
	summary.MinorVersion = header.MinorVersion
	summary.Metadata = metadata
	// Read module headers
	var (
		buf   = bytes.NewReader(buffer.Bytes())
		nmods uint32
	)
	//
	if err := binary.Read(buf, binary.BigEndian, &nmods); err != nil {
		return summary, err
	}
	//
	var payloadBytes uint64
	//
	for i := uint32(0); i < nmods; i++ {
		name, height, realRows, columns, err := readModuleHeader(buf)
		if err != nil {
			return summary, err
		}
		//
		module := ModuleSummary{Name: name, Height: height, RealRows: realRows, Width: uint(len(columns))}
		//
		for _, column := range columns {
			module.Bytes += column.length
		}
		//
		payloadBytes += module.Bytes
		summary.Modules = append(summary.Modules, module)
	}
	// Check all payloads are accounted for
	if payloadBytes != uint64(buf.Len()) {
		return summary, fmt.Errorf("malformed trace file (%d payload bytes declared, %d present)",
			payloadBytes, buf.Len())
	}
	//
	return summary, nil
}
