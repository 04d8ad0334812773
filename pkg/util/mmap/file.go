// Package mmap provides a minimal read-only memory mapping over regular
// files.  Trace artifacts can be large, and mapping them avoids copying the
// whole file through a buffer just to parse it.
package mmap

import (
	"syscall"

	pkgErrors "github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// File represents a read-only memory-mapped file.
type File struct {
	fd   int
	data []byte
}

// Open memory maps the named file for reading.
func Open(path string) (*File, error) {
	fd, err := unix.Open(path, unix.O_RDONLY, 0)
	if err != nil {
		return nil, pkgErrors.Wrapf(err, "failed to open file %#v", path)
	}

	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		unix.Close(fd)
		return nil, pkgErrors.Wrapf(err, "failed to obtain size of file %#v", path)
	}

	// Mapping an empty file is not permitted, so leave the data nil.
	if stat.Size == 0 {
		return &File{fd: fd}, nil
	}

	data, err := unix.Mmap(fd, 0, int(stat.Size), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, pkgErrors.Wrapf(err, "failed to memory map file %#v", path)
	}

	return &File{fd: fd, data: data}, nil
}

// Bytes returns the mapped contents.  The slice is only valid until Close is
// called; callers wanting to hold onto the data must copy it out.
func (f *File) Bytes() []byte {
	return f.data
}

// Close unmaps the file and releases its descriptor.
func (f *File) Close() error {
	if f.data != nil {
		if err := unix.Munmap(f.data); err != nil {
			return pkgErrors.Wrap(err, "failed to unmap file")
		}

		f.data = nil
	}

	return unix.Close(f.fd)
}
