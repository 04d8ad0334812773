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

package program

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/sha3"

	"github.com/merl990827/monachan"
	"github.com/merl990827/monachan/pkg/util/field"
)

// Kinds of serialised containers, as recorded in the envelope.
const (
	KindProgram = "program"
	KindRecord  = "record"
)

// envelope wraps a serialised container with enough context to validate it
// on load: the library version which wrote it, the kind of container, the
// field it was built over, and the SHA3-256 digest of the payload.
type envelope struct {
	Version string `cbor:"version"`
	Kind    string `cbor:"kind"`
	Field   string `cbor:"field"`
	Digest  []byte `cbor:"digest"`
	Payload []byte `cbor:"payload"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	// Core deterministic encoding, so digests are stable across encoders.
	if encMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(err)
	}
	// Raise the decoder limits well above the defaults, as large programs
	// easily exceed them.
	if decMode, err = (cbor.DecOptions{
		MaxArrayElements: 2147483647,
		MaxMapPairs:      2147483647,
	}).DecMode(); err != nil {
		panic(err)
	}
}

// WriteProgram serialises the given program into an enveloped CBOR blob on w.
// The envelope records the field name along with a digest of the payload,
// both of which are checked again by ReadProgram.
func WriteProgram[F field.Element[F]](w io.Writer, p *Program[F], fieldName string) error {
	return writeEnvelope(w, KindProgram, fieldName, p)
}

// ReadProgram deserialises a program from r, which must hold an enveloped
// CBOR blob as produced by WriteProgram over the named field.
func ReadProgram[F field.Element[F]](r io.Reader, fieldName string) (*Program[F], error) {
	var p Program[F]
	//
	if err := readEnvelope(r, KindProgram, fieldName, &p); err != nil {
		return nil, err
	}
	//
	return &p, nil
}

// WriteRecord serialises the given record into an enveloped CBOR blob on w.
func WriteRecord[F field.Element[F]](w io.Writer, rec *Record[F], fieldName string) error {
	return writeEnvelope(w, KindRecord, fieldName, rec)
}

// ReadRecord deserialises a record from r, which must hold an enveloped CBOR
// blob as produced by WriteRecord over the named field.
func ReadRecord[F field.Element[F]](r io.Reader, fieldName string) (*Record[F], error) {
	var rec Record[F]
	//
	if err := readEnvelope(r, KindRecord, fieldName, &rec); err != nil {
		return nil, err
	}
	//
	return &rec, nil
}

// WriteProgramFile serialises the given program into the named file.
func WriteProgramFile[F field.Element[F]](filename string, p *Program[F], fieldName string) error {
	return writeFile(filename, func(w io.Writer) error {
		return WriteProgram(w, p, fieldName)
	})
}

// ReadProgramFile deserialises a program from the named file.
func ReadProgramFile[F field.Element[F]](filename string, fieldName string) (*Program[F], error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	//
	return ReadProgram[F](bytes.NewReader(data), fieldName)
}

// WriteRecordFile serialises the given record into the named file.
func WriteRecordFile[F field.Element[F]](filename string, rec *Record[F], fieldName string) error {
	return writeFile(filename, func(w io.Writer) error {
		return WriteRecord(w, rec, fieldName)
	})
}

// ReadRecordFile deserialises a record from the named file.
func ReadRecordFile[F field.Element[F]](filename string, fieldName string) (*Record[F], error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	//
	return ReadRecord[F](bytes.NewReader(data), fieldName)
}

// ============================================================================
// Helpers
// ============================================================================

func writeEnvelope(w io.Writer, kind string, fieldName string, container any) error {
	payload, err := encMode.Marshal(container)
	if err != nil {
		return err
	}
	//
	digest := sha3.Sum256(payload)
	//
	env := envelope{
		Version: monachan.Version.String(),
		Kind:    kind,
		Field:   fieldName,
		Digest:  digest[:],
		Payload: payload,
	}
	//
	return encMode.NewEncoder(w).Encode(env)
}

func readEnvelope(r io.Reader, kind string, fieldName string, container any) error {
	var env envelope
	//
	if err := decMode.NewDecoder(r).Decode(&env); err != nil {
		return errors.Wrap(err, "malformed envelope")
	}
	//
	if err := checkVersion(env.Version); err != nil {
		return err
	}
	//
	if env.Kind != kind {
		return fmt.Errorf("unexpected container kind %q (expected %q)", env.Kind, kind)
	}
	//
	if env.Field != fieldName {
		return fmt.Errorf("container built over field %q, not %q", env.Field, fieldName)
	}
	//
	digest := sha3.Sum256(env.Payload)
	if !bytes.Equal(digest[:], env.Digest) {
		return fmt.Errorf("%s digest mismatch (artifact corrupted or truncated)", kind)
	}
	//
	return decMode.Unmarshal(env.Payload, container)
}

// checkVersion compares the version recorded in an artifact against that of
// this binary.  Major differences are rejected outright, whilst any other
// difference simply generates a warning.
func checkVersion(artifact string) error {
	binaryVersion := monachan.Version
	//
	artifactVersion, err := semver.Parse(artifact)
	if err != nil {
		return errors.Wrapf(err, "when parsing artifact version %q", artifact)
	}
	//
	if artifactVersion.Major != binaryVersion.Major {
		return fmt.Errorf("incompatible artifact version v%s (binary is v%s)", artifactVersion, binaryVersion)
	}
	//
	if binaryVersion.Compare(artifactVersion) != 0 {
		log.Warnf("binary version (v%s) mismatch with artifact (v%s). there are no guarantees on compatibility",
			binaryVersion, artifactVersion)
	}
	//
	return nil
}

func writeFile(filename string, write func(io.Writer) error) error {
	var buf bytes.Buffer
	//
	if err := write(&buf); err != nil {
		return err
	}
	//
	return errors.Wrapf(os.WriteFile(filename, buf.Bytes(), 0644), "writing %s", filename)
}
