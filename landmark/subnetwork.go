package landmark

import (
	"github.com/ttpr0/corelandmarks/store"
)

// Subnetwork sentinel/id values, per §3.
const (
	SubnetworkUnset   int8 = -1
	SubnetworkUnclear int8 = 0
)

// subnetworkTable is C signed bytes, one per core node, described in §3/§6.
// Backed by its own store.MappedFile rather than sharing the weight
// table's file, matching the "or equivalent" separate-file wording in §6.
type subnetworkTable struct {
	file          *store.MappedFile
	coreNodeCount int32
}

func createSubnetworkTable(path string, coreNodeCount int32) (*subnetworkTable, error) {
	f, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	total := store.HeaderSize + int64(coreNodeCount)
	if err := f.EnsureCapacity(total); err != nil {
		f.Close()
		return nil, err
	}
	f.SetInt(0, coreNodeCount)

	region := f.Bytes()[store.HeaderSize:total]
	unset := SubnetworkUnset
	for i := range region {
		region[i] = byte(unset)
	}
	return &subnetworkTable{file: f, coreNodeCount: coreNodeCount}, nil
}

func openSubnetworkTable(path string, coreNodeCount int32) (*subnetworkTable, error) {
	f, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	stored := f.GetInt(0)
	if stored != coreNodeCount {
		f.Close()
		return nil, newError(GraphMismatch, "subnetwork table has %d core nodes, graph has %d", stored, coreNodeCount)
	}
	return &subnetworkTable{file: f, coreNodeCount: coreNodeCount}, nil
}

func (t *subnetworkTable) Get(coreIdx int32) int8 {
	return int8(t.file.Bytes()[store.HeaderSize+int64(coreIdx)])
}

func (t *subnetworkTable) Set(coreIdx int32, id int8) {
	t.file.Bytes()[store.HeaderSize+int64(coreIdx)] = byte(id)
}

func (t *subnetworkTable) Flush() error {
	return t.file.Flush()
}

func (t *subnetworkTable) Close() error {
	return t.file.Close()
}
