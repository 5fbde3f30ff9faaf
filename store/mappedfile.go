//go:build unix || darwin || linux
// +build unix darwin linux

// Package store implements the byte-addressed, memory-mapped file backend
// the landmark weight table and eccentricity store persist to. Adapted from
// sanonone-kektordb/pkg/storage/mmap's chunked vector arena: header
// validation on reopen and unsafe zero-copy access are grounded there, but
// this module needs one growable mapped region rather than a set of
// fixed-size chunks, so the mapping is remapped (unmap, truncate, mmap) in
// place each time it grows instead of appending new chunk files.
package store

import (
	"encoding/binary"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// HeaderSize is the fixed prefix reserved for caller-defined header fields
// (the weight table keeps coreNodeCount, K, subnetwork count and the scaled
// factor there; the subnetwork table keeps coreNodeCount).
const HeaderSize = 16

// MappedFile is a growable, memory-mapped byte region. Not safe for
// concurrent use — callers serialize access the way the rest of this
// module's single-threaded build phase does.
type MappedFile struct {
	file *os.File
	data []byte
}

// Open creates path if it does not exist (initializing a zeroed header) or
// maps its existing contents otherwise.
func Open(path string) (*MappedFile, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("store: stat %s: %w", path, err)
	}

	size := info.Size()
	if size < HeaderSize {
		size = HeaderSize
		if err := file.Truncate(size); err != nil {
			file.Close()
			return nil, fmt.Errorf("store: truncate %s: %w", path, err)
		}
	}

	data, err := unix.Mmap(int(file.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("store: mmap %s: %w", path, err)
	}

	return &MappedFile{file: file, data: data}, nil
}

// Size is the current mapped length in bytes, including the header.
func (m *MappedFile) Size() int64 {
	return int64(len(m.data))
}

// Header returns the fixed HeaderSize-byte prefix for caller use.
func (m *MappedFile) Header() []byte {
	return m.data[:HeaderSize]
}

// Bytes exposes the whole mapped region for callers that address it more
// finely than the short/int accessors here allow (single signed bytes, for
// instance). The slice is invalidated by the next EnsureCapacity call that
// actually grows the mapping.
func (m *MappedFile) Bytes() []byte {
	return m.data
}

// EnsureCapacity grows the mapping to at least total bytes, remapping in
// place. Shrinking is not supported; a smaller total is a no-op. The weight
// table calls it once to size the weight matrix and again each time the
// landmark-id mapping region grows by one subnetwork.
func (m *MappedFile) EnsureCapacity(total int64) error {
	if total <= int64(len(m.data)) {
		return nil
	}

	if err := unix.Munmap(m.data); err != nil {
		return fmt.Errorf("store: unmap for grow: %w", err)
	}
	if err := m.file.Truncate(total); err != nil {
		return fmt.Errorf("store: truncate for grow: %w", err)
	}
	data, err := unix.Mmap(int(m.file.Fd()), 0, int(total), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("store: remap after grow: %w", err)
	}
	m.data = data
	return nil
}

func (m *MappedFile) GetShort(offset int64) uint16 {
	return binary.LittleEndian.Uint16(m.data[offset : offset+2])
}

func (m *MappedFile) SetShort(offset int64, v uint16) {
	binary.LittleEndian.PutUint16(m.data[offset:offset+2], v)
}

func (m *MappedFile) GetInt(offset int64) int32 {
	return int32(binary.LittleEndian.Uint32(m.data[offset : offset+4]))
}

func (m *MappedFile) SetInt(offset int64, v int32) {
	binary.LittleEndian.PutUint32(m.data[offset:offset+4], uint32(v))
}

// Fill sets every uint16 slot in [start, end) to v, used to initialize a
// freshly grown weight region to SHORT_INFINITY.
func (m *MappedFile) Fill(start, end int64, v uint16) {
	for off := start; off < end; off += 2 {
		m.SetShort(off, v)
	}
}

// Flush forces the mapped region back to disk.
func (m *MappedFile) Flush() error {
	if err := unix.Msync(m.data, unix.MS_SYNC); err != nil {
		return fmt.Errorf("store: msync: %w", err)
	}
	return nil
}

// Close unmaps and closes the underlying file. Callers should Flush first
// if durability of the last writes matters.
func (m *MappedFile) Close() error {
	if err := unix.Munmap(m.data); err != nil {
		m.file.Close()
		return fmt.Errorf("store: munmap: %w", err)
	}
	return m.file.Close()
}
