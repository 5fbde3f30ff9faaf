package landmark

import (
	"github.com/ttpr0/corelandmarks/store"
)

// weightTable is the C x K matrix of (from,to) short pairs plus its
// trailing landmark-id mapping region, described in §3/§4.2/§6. The
// 16-byte store.MappedFile header lines up exactly with the header layout
// §6 specifies: coreNodeCount, K, S, round(factor*1e6).
type weightTable struct {
	file          *store.MappedFile
	coreNodeCount int32
	k             int32
	s             int32
}

const rowStride = 4 // two uint16s per landmark: from, to

func matrixStart() int64 {
	return store.HeaderSize
}

func matrixSize(coreNodeCount, k int32) int64 {
	return int64(coreNodeCount) * int64(k) * rowStride
}

func mappingStart(coreNodeCount, k int32) int64 {
	return matrixStart() + matrixSize(coreNodeCount, k)
}

func mappingSize(s, k int32) int64 {
	return int64(s) * int64(k) * 4 // one int32 landmark id per (subnetwork, landmark)
}

// createWeightTable opens (or creates) path, grows it to fit coreNodeCount
// core nodes and k landmarks per subnetwork (an existing larger file is not
// shrunk), writes the header, and fills the matrix region with ShortInfinity
// per §4.2's "initial fill".
func createWeightTable(path string, coreNodeCount, k int32, codec *Codec) (*weightTable, error) {
	f, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	if err := f.EnsureCapacity(mappingStart(coreNodeCount, k)); err != nil {
		f.Close()
		return nil, err
	}
	f.Fill(matrixStart(), mappingStart(coreNodeCount, k), ShortInfinity)

	t := &weightTable{file: f, coreNodeCount: coreNodeCount, k: k, s: 0}
	t.writeHeader(codec)
	if err := t.GrowForSubnetwork(0, codec); err != nil {
		f.Close()
		return nil, err
	}
	placeholder := make([]int32, k)
	for i := range placeholder {
		placeholder[i] = -1
	}
	t.SetLandmarkIDs(0, placeholder)
	return t, nil
}

// openWeightTable reopens an existing table and validates it was built for
// coreNodeCount core nodes, per §5's "subsequent opens check node-count
// equality and refuse mismatches".
func openWeightTable(path string, coreNodeCount int32) (*weightTable, *Codec, error) {
	f, err := store.Open(path)
	if err != nil {
		return nil, nil, err
	}
	storedCoreNodes := f.GetInt(0)
	if storedCoreNodes != coreNodeCount {
		f.Close()
		return nil, nil, newError(GraphMismatch, "weight table has %d core nodes, graph has %d", storedCoreNodes, coreNodeCount)
	}
	k := f.GetInt(4)
	s := f.GetInt(8)
	factor := float64(f.GetInt(12)) / 1e6
	codec, err := NewCodec(factor)
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	expected := mappingStart(coreNodeCount, k) + mappingSize(s, k)
	if f.Size() < expected {
		f.Close()
		return nil, nil, newError(GraphMismatch, "weight table is %d bytes, expected at least %d for coreNodeCount=%d k=%d s=%d", f.Size(), expected, coreNodeCount, k, s)
	}

	t := &weightTable{file: f, coreNodeCount: coreNodeCount, k: k, s: s}
	return t, codec, nil
}

func (t *weightTable) writeHeader(codec *Codec) {
	t.file.SetInt(0, t.coreNodeCount)
	t.file.SetInt(4, t.k)
	t.file.SetInt(8, t.s)
	t.file.SetInt(12, codec.HeaderFactor())
}

func (t *weightTable) K() int32 {
	return t.k
}

func (t *weightTable) SubnetworkCount() int32 {
	return t.s
}

// GrowForSubnetwork extends the mapping region so subnetwork id (1-based,
// 0 reserved as a placeholder per §3) has room for its K landmark ids, and
// bumps and persists S in the header.
func (t *weightTable) GrowForSubnetwork(id int32, codec *Codec) error {
	if id > 127 {
		return newError(TooManySubnetworks, "subnetwork id %d exceeds the 127-id signed-byte limit", id)
	}
	if id+1 <= t.s {
		return nil
	}
	newS := id + 1
	if err := t.file.EnsureCapacity(mappingStart(t.coreNodeCount, t.k) + mappingSize(newS, t.k)); err != nil {
		return err
	}
	t.s = newS
	t.writeHeader(codec)
	return nil
}

func fromOffset(coreNodeCount, k, coreIdx, landmarkIdx int32) int64 {
	return matrixStart() + int64(coreIdx)*int64(k)*rowStride + int64(landmarkIdx)*rowStride
}

func (t *weightTable) SetFromWeight(coreIdx, landmarkIdx int32, v uint16) {
	t.file.SetShort(fromOffset(t.coreNodeCount, t.k, coreIdx, landmarkIdx), v)
}

func (t *weightTable) SetToWeight(coreIdx, landmarkIdx int32, v uint16) {
	t.file.SetShort(fromOffset(t.coreNodeCount, t.k, coreIdx, landmarkIdx)+2, v)
}

// FromWeight/ToWeight read the raw stored short, coercing ShortInfinity to
// ShortMax per §4.9's fromWeight/toWeight contract.
func (t *weightTable) FromWeight(coreIdx, landmarkIdx int32) uint16 {
	v := t.file.GetShort(fromOffset(t.coreNodeCount, t.k, coreIdx, landmarkIdx))
	if v == ShortInfinity {
		return ShortMax
	}
	return v
}

func (t *weightTable) ToWeight(coreIdx, landmarkIdx int32) uint16 {
	v := t.file.GetShort(fromOffset(t.coreNodeCount, t.k, coreIdx, landmarkIdx) + 2)
	if v == ShortInfinity {
		return ShortMax
	}
	return v
}

func (t *weightTable) landmarkIDOffset(subnetwork, landmarkIdx int32) int64 {
	return mappingStart(t.coreNodeCount, t.k) + int64(subnetwork)*int64(t.k)*4 + int64(landmarkIdx)*4
}

func (t *weightTable) SetLandmarkIDs(subnetwork int32, ids []int32) {
	for i, id := range ids {
		t.file.SetInt(t.landmarkIDOffset(subnetwork, int32(i)), id)
	}
}

func (t *weightTable) LandmarkIDs(subnetwork int32) []int32 {
	ids := make([]int32, t.k)
	for i := range ids {
		ids[i] = t.file.GetInt(t.landmarkIDOffset(subnetwork, int32(i)))
	}
	return ids
}

func (t *weightTable) Flush() error {
	return t.file.Flush()
}

func (t *weightTable) Close() error {
	return t.file.Close()
}
