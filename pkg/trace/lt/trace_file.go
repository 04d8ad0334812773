// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package lt

import (
	"bytes"
	"fmt"
	"os"

	pkgErrors "github.com/pkg/errors"

	"github.com/merl990827/monachan/pkg/trace"
	"github.com/merl990827/monachan/pkg/util/field"
	"github.com/merl990827/monachan/pkg/util/mmap"
)

// LT_MAJOR_VERSION gives the major version of the binary file format.  No
// matter what version, we should always have the MONACHAN identifier first,
// followed by the header.  What follows after that, however, is determined by
// the major version.
const LT_MAJOR_VERSION uint16 = 1

// LT_MINOR_VERSION gives the minor version of the binary file format.  The
// expected interpretation is that older versions are compatible with newer
// ones, but not vice-versa.
const LT_MINOR_VERSION uint16 = 0

// MONACHAN is used as the file identifier for binary trace files.  This just
// helps us identify actual trace files from corrupted files.
var MONACHAN = [8]byte{'m', 'o', 'n', 'a', 'c', 'h', 'a', 'n'}

// TraceFile is a programmatic representation of an underlying trace file.
type TraceFile[F field.Element[F]] struct {
	// Header for the binary file
	Header Header
	// Modules making up the trace
	Modules []trace.Module[F]
}

// NewTraceFile constructs a new trace file with the default header for the
// currently supported version, carrying the given metadata.
func NewTraceFile[F field.Element[F]](metadata Metadata, modules []trace.Module[F]) (TraceFile[F], error) {
	var tf = TraceFile[F]{
		Header:  Header{MONACHAN, LT_MAJOR_VERSION, LT_MINOR_VERSION, nil},
		Modules: modules,
	}
	//
	if err := tf.Header.SetMetadata(metadata); err != nil {
		return tf, err
	}
	//
	return tf, nil
}

// IsTraceFile checks whether the given data begins with the expected
// "monachan" identifier.
func IsTraceFile(data []byte) bool {
	var (
		identifier [8]byte
		buffer     = bytes.NewBuffer(data)
	)
	//
	if _, err := buffer.Read(identifier[:]); err != nil {
		return false
	}
	// Check whether header identified
	return identifier == MONACHAN
}

// MarshalBinary converts the TraceFile into a sequence of bytes.
func (p *TraceFile[F]) MarshalBinary() ([]byte, error) {
	var buffer bytes.Buffer
	// Bytes header
	headerBytes, err := p.Header.MarshalBinary()
	// Error check
	if err != nil {
		return nil, err
	}
	// Encode header
	buffer.Write(headerBytes)
	// Encode module data
	if err := WriteBytes(p.Modules, &buffer); err != nil {
		return nil, err
	}
	// Done
	return buffer.Bytes(), nil
}

// UnmarshalBinary initialises this TraceFile from a given set of data bytes.
// This should match exactly the encoding above.
func (p *TraceFile[F]) UnmarshalBinary(data []byte) error {
	var err error
	//
	buffer := bytes.NewBuffer(data)
	// Read header
	if err = p.Header.UnmarshalBinary(buffer); err == nil && p.Header.IsCompatible() {
		// Decode module data
		p.Modules, err = FromBytes[F](buffer.Bytes())
		// Done
		return err
	} else if err == nil {
		err = fmt.Errorf("incompatible binary file was v%d.%d, but expected v%d.%d)",
			p.Header.MajorVersion, p.Header.MinorVersion, LT_MAJOR_VERSION, LT_MINOR_VERSION)
	}
	//
	return err
}

// WriteTraceFile writes this trace file into the named file.
func (p *TraceFile[F]) WriteTraceFile(filename string) error {
	data, err := p.MarshalBinary()
	if err != nil {
		return err
	}
	//
	return pkgErrors.Wrapf(os.WriteFile(filename, data, 0644), "writing %s", filename)
}

// ReadTraceFile reads a trace file from the named file, which is memory
// mapped whilst being decoded.
func ReadTraceFile[F field.Element[F]](filename string) (TraceFile[F], error) {
	var tf TraceFile[F]
	// Memory map the file
	f, err := mmap.Open(filename)
	if err != nil {
		return tf, err
	}
	// Decoding copies all data out of the mapping, so the mapping can be
	// dropped as soon as it completes.
	defer f.Close()
	//
	err = tf.UnmarshalBinary(f.Bytes())
	//
	return tf, err
}
