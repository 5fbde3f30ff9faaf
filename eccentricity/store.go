// Package eccentricity implements the companion node-indexed table of
// upper-bound isochrone radii, keyed by weighting name, described in §3 and
// §4.10. It is a secondary collaborator alongside the landmark weight
// table, sharing the same store.MappedFile backend.
package eccentricity

import (
	"fmt"
	"math"
	"strings"

	"github.com/ttpr0/corelandmarks/store"
)

const recordSize = 8

// Store is an N-record table, one fixed 8-byte record per node:
// fullyReachable (int32, 0 or 1) at offset 0, ceil(eccentricity) (int32) at
// offset 4.
type Store struct {
	file      *store.MappedFile
	nodeCount int
}

// FileName derives the on-disk file name from a weighting's name, replacing
// characters that are awkward in a path with underscores.
func FileName(weighting string) string {
	return "eccentricities_" + sanitize(weighting)
}

func sanitize(s string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", " ", "_", ":", "_")
	return replacer.Replace(s)
}

func recordOffset(node int32) int64 {
	return store.HeaderSize + int64(node)*recordSize
}

// New creates the eccentricity table at path for nodeCount nodes, growing an
// existing smaller file to that size. An existing file that is already at
// least that large keeps its length and contents.
func New(path string, nodeCount int) (*Store, error) {
	f, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	total := store.HeaderSize + int64(nodeCount)*recordSize
	if err := f.EnsureCapacity(total); err != nil {
		f.Close()
		return nil, err
	}
	return &Store{file: f, nodeCount: nodeCount}, nil
}

// Load opens an existing table and checks it was built for nodeCount nodes,
// matching §3's "subsequent opens check node-count equality and refuse
// mismatches" lifecycle rule.
func Load(path string, nodeCount int) (*Store, error) {
	f, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	expected := store.HeaderSize + int64(nodeCount)*recordSize
	if f.Size() != expected {
		f.Close()
		return nil, fmt.Errorf("eccentricity: %s has %d bytes, expected %d for %d nodes", path, f.Size(), expected, nodeCount)
	}
	return &Store{file: f, nodeCount: nodeCount}, nil
}

func (s *Store) SetEccentricity(node int32, w float64) {
	s.file.SetInt(recordOffset(node)+4, int32(math.Ceil(w)))
}

func (s *Store) GetEccentricity(node int32) int32 {
	return s.file.GetInt(recordOffset(node) + 4)
}

func (s *Store) SetFullyReachable(node int32, v bool) {
	var iv int32
	if v {
		iv = 1
	}
	s.file.SetInt(recordOffset(node), iv)
}

func (s *Store) GetFullyReachable(node int32) bool {
	return s.file.GetInt(recordOffset(node)) != 0
}

func (s *Store) Flush() error {
	return s.file.Flush()
}

func (s *Store) Close() error {
	return s.file.Close()
}
