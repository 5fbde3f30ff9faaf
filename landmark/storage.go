package landmark

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"golang.org/x/exp/slog"

	"github.com/ttpr0/corelandmarks/coregraph"
	"github.com/ttpr0/corelandmarks/filter"
	"github.com/ttpr0/corelandmarks/hopweight"
	"github.com/ttpr0/corelandmarks/obs"
	"github.com/ttpr0/corelandmarks/scc"
	"github.com/ttpr0/corelandmarks/spatial"
	"github.com/ttpr0/corelandmarks/util"
)

// Storage is the in-memory handle returned by CreateLandmarks/LoadExisting:
// the two persisted tables, the core-node index derived from graph, and the
// reconstructed LandmarkIDs mapping. All query-time operations (PickActiveLandmarks
// in active.go) hang off this type.
type Storage struct {
	graph       coregraph.CoreGraph
	weighting   coregraph.Weighting
	coreIndex   *CoreNodeIndexMap
	table       *weightTable
	subnetworks *subnetworkTable
	codec       *Codec
	landmarkIDs [][]int32
	closed      bool
}

// Builder coordinates a build's collaborators (logger, metrics, options) so
// CreateLandmarks doesn't need a dozen positional parameters. One Builder is
// good for exactly one CreateLandmarks call, mirroring §5's "a second create
// or load call after initialisation is a programming error".
type Builder struct {
	Graph     coregraph.CoreGraph
	Weighting coregraph.Weighting
	Options   BuildOptions
	Logger    *slog.Logger
	Metrics   *obs.BuildMetrics

	// SpatialLookup, when set, feeds spatial.DetectBorderEdges: every edge
	// crossing a rule boundary is folded into CreateLandmarks' blocked set
	// on top of whatever the caller already passed in, per §4.5's border-
	// edge set feeding the Tarjan/selection filters as a blocked edge. A
	// nil SpatialLookup runs the build with no border edges, same as
	// omitting §4.5 entirely.
	SpatialLookup coregraph.SpatialRuleLookup

	initialized bool
}

// sanitizeName mirrors eccentricity.sanitize: strip characters that would
// be awkward in a filename.
func sanitizeName(name string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", " ", "_", ":", "_")
	return r.Replace(name)
}

// weightFileName and subnetworkFileName follow §6's
// "landmarks_core_<weighting><filter>" naming, with variant standing in for
// the filter-configuration suffix (empty when the build has no blocked-edge
// set or user filter worth distinguishing in the filename).
func weightFileName(weightingName, variant string) string {
	return "landmarks_core_" + sanitizeName(weightingName) + sanitizeName(variant)
}

func subnetworkFileName(weightingName, variant string) string {
	return weightFileName(weightingName, variant) + ".subnetwork"
}

// CreateLandmarks runs the full build described in §4.5-§4.8: detect
// border edges via b.SpatialLookup (if set) and fold them into blocked,
// partition the filtered core into components via Tarjan, select and fill
// K landmarks per component large enough to matter, and persist everything
// under dir. blocked and userFilter may be nil/empty. suggestion may be nil.
func (b *Builder) CreateLandmarks(
	dir string,
	variant string,
	blocked util.IntSet,
	userFilter coregraph.EdgeFilter,
	suggestion coregraph.LandmarkSuggestion,
	cancel func() bool,
) (*Storage, error) {
	if b.initialized {
		return nil, KindError(AlreadyInitialized)
	}
	b.initialized = true

	buildID := uuid.New()
	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("build_id", buildID.String()))

	start := time.Now()
	if b.Metrics != nil {
		defer func() {
			b.Metrics.BuildDuration.Observe(time.Since(start).Seconds())
		}()
	}

	coreIndex, err := NewCoreNodeIndexMap(b.Graph)
	if err != nil {
		return nil, err
	}

	codec, err := b.buildCodec()
	if err != nil {
		return nil, err
	}

	weightPath := filepath.Join(dir, weightFileName(b.Weighting.Name(), variant))
	subnetworkPath := filepath.Join(dir, subnetworkFileName(b.Weighting.Name(), variant))

	table, err := createWeightTable(weightPath, coreIndex.CoreNodeCount(), b.Options.K, codec)
	if err != nil {
		return nil, err
	}
	subnetworks, err := createSubnetworkTable(subnetworkPath, coreIndex.CoreNodeCount())
	if err != nil {
		table.Close()
		return nil, err
	}

	placeholder := make([]int32, b.Options.K)
	for i := range placeholder {
		placeholder[i] = -1
	}
	landmarkIDs := [][]int32{placeholder}

	if b.SpatialLookup != nil {
		merged := util.NewIntSet(0)
		blocked.Range(func(id int32) { merged.Add(id) })
		spatial.DetectBorderEdges(b.Graph, b.SpatialLookup).Range(func(id int32) { merged.Add(id) })
		blocked = merged
	}

	encoder := b.Weighting.FlagEncoder()
	combinedExtra := filter.Sequence(filter.BlockedEdges(blocked), asFilter(userFilter))
	sccFilter := filter.Sequence(filter.InCore(b.Graph, encoder, false, true), combinedExtra)

	components := scc.Tarjan(b.Graph, sccFilter)

	hopWeighting := hopweight.NewShortcutUnrollWeighting(b.Graph, b.Weighting)
	selectFilter := filter.Sequence(filter.InCore(b.Graph, encoder, true, true), combinedExtra)

	var nextID int32 = 1
	for _, component := range components {
		if cancel != nil && cancel() {
			return nil, KindError(Cancelled)
		}
		startNode := pickStartNode(b.Graph, component, encoder, b.Options.RequireBothDirections)

		result, err := selectLandmarks(
			b.Graph, hopWeighting, selectFilter, startNode,
			b.Options.K, b.Options.MinimumNodes, subnetworks, coreIndex, suggestion, cancel,
		)
		if err != nil {
			return nil, err
		}
		if result.Skipped {
			if b.Metrics != nil {
				b.Metrics.UnclearSubnetworks.Inc()
			}
			continue
		}

		subnetworkID := nextID
		nextID++
		if err := table.GrowForSubnetwork(subnetworkID, codec); err != nil {
			return nil, err
		}

		ids := make([]int32, len(result.LandmarkIDs))
		abandoned := false
		for i, landmarkNode := range result.LandmarkIDs {
			ids[i] = landmarkNode
			ok, err := fillLandmarkWeights(
				b.Graph, b.Weighting, combinedExtra, landmarkNode, int32(i),
				i == 0, int8(subnetworkID), table, subnetworks, coreIndex, codec,
				b.Metrics, logger, cancel,
			)
			if err != nil {
				return nil, err
			}
			if !ok {
				abandoned = true
				break
			}
		}
		if abandoned {
			logger.Warn("subnetwork abandoned: conflicting subnetwork tag under first landmark's forward pass",
				slog.Int64("subnetwork", int64(subnetworkID)))
			ids = make([]int32, b.Options.K)
			for i := range ids {
				ids[i] = -1
			}
		} else if b.Metrics != nil {
			b.Metrics.LandmarksSelected.Add(float64(len(ids)))
		}

		table.SetLandmarkIDs(subnetworkID, ids)
		landmarkIDs = append(landmarkIDs, ids)
	}

	if b.Metrics != nil {
		b.Metrics.Subnetworks.Set(float64(nextID - 1))
	}

	if err := table.Flush(); err != nil {
		return nil, err
	}
	if err := subnetworks.Flush(); err != nil {
		return nil, err
	}

	return &Storage{
		graph:       b.Graph,
		weighting:   b.Weighting,
		coreIndex:   coreIndex,
		table:       table,
		subnetworks: subnetworks,
		codec:       codec,
		landmarkIDs: landmarkIDs,
	}, nil
}

func (b *Builder) buildCodec() (*Codec, error) {
	maxWeight := b.Options.MaxWeight
	if maxWeight <= 0 {
		maxWeight = estimateMaxWeightFromGraph(b.Graph, b.Weighting)
	}
	return NewCodec(maxWeight / 65536)
}

// estimateMaxWeightFromGraph derives a bounding box by scanning every
// node's coordinates and runs it through EstimateMaxWeight, used when a
// build supplies no explicit MaxWeight.
func estimateMaxWeightFromGraph(graph coregraph.CoreGraph, weighting coregraph.Weighting) float64 {
	n := graph.NodeCount()
	if n == 0 {
		return EstimateMaxWeight(orb.Bound{}, weighting)
	}
	minLat, minLon := graph.Lat(0), graph.Lon(0)
	maxLat, maxLon := minLat, minLon
	for i := 1; i < n; i++ {
		lat, lon := graph.Lat(int32(i)), graph.Lon(int32(i))
		if lat < minLat {
			minLat = lat
		}
		if lat > maxLat {
			maxLat = lat
		}
		if lon < minLon {
			minLon = lon
		}
		if lon > maxLon {
			maxLon = lon
		}
	}
	bbox := orb.Bound{Min: orb.Point{minLon, minLat}, Max: orb.Point{maxLon, maxLat}}
	return EstimateMaxWeight(bbox, weighting)
}

// pickStartNode returns component[0] unless requireBoth asks for a node
// with at least one bidirectionally-accessible incident edge, per §4.4's
// BothDirections filter and its "used to find a component's reachable-
// both-ways start node" purpose.
func pickStartNode(graph coregraph.CoreGraph, component []coregraph.NodeID, encoder coregraph.FlagEncoder, requireBoth bool) coregraph.NodeID {
	if !requireBoth || len(component) == 0 {
		return component[0]
	}
	both := filter.BothDirections(encoder)
	explorer := graph.CreateEdgeExplorer(both)
	for _, node := range component {
		explorer.SetBaseNode(node, true)
		if explorer.Next() {
			return node
		}
	}
	return component[0]
}

// LoadExisting reopens a build's persisted tables and reconstructs the
// in-memory LandmarkIDs list from the mapping region, per §3's "LandmarkIDs
// are reconstructed from the mapping region on load". Every call opens and
// returns a fresh Storage; a repeated load of the same files is not
// detected and does not return AlreadyInitialized.
func LoadExisting(graph coregraph.CoreGraph, weightingName, dir, variant string) (*Storage, error) {
	coreIndex, err := NewCoreNodeIndexMap(graph)
	if err != nil {
		return nil, err
	}

	weightPath := filepath.Join(dir, weightFileName(weightingName, variant))
	subnetworkPath := filepath.Join(dir, subnetworkFileName(weightingName, variant))

	table, codec, err := openWeightTable(weightPath, coreIndex.CoreNodeCount())
	if err != nil {
		return nil, err
	}
	subnetworks, err := openSubnetworkTable(subnetworkPath, coreIndex.CoreNodeCount())
	if err != nil {
		table.Close()
		return nil, err
	}

	landmarkIDs := make([][]int32, table.SubnetworkCount())
	for s := int32(0); s < table.SubnetworkCount(); s++ {
		landmarkIDs[s] = table.LandmarkIDs(s)
	}

	return &Storage{
		graph:       graph,
		coreIndex:   coreIndex,
		table:       table,
		subnetworks: subnetworks,
		codec:       codec,
		landmarkIDs: landmarkIDs,
	}, nil
}

// Close releases both persisted tables. Idempotent per §5.
func (s *Storage) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	err1 := s.table.Close()
	err2 := s.subnetworks.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// LandmarkIDs returns subnetwork s's K landmark graph-node ids, or the
// index-0 placeholder for s == 0.
func (s *Storage) LandmarkIDs(subnetwork int32) []int32 {
	return s.landmarkIDs[subnetwork]
}

func (s *Storage) SubnetworkCount() int32 {
	return s.table.SubnetworkCount()
}
