package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/talgya/sectormap/internal/roads"
	"github.com/talgya/sectormap/internal/social"
	"github.com/talgya/sectormap/internal/world"
)

// Lookup failures for keys that name nothing in the atlas.
var (
	ErrUnknownCity = errors.New("unknown city")
	ErrUnknownNode = errors.New("unknown resource node")
	ErrUnknownRoad = errors.New("unknown road")
)

// atlasNamespace scopes atlas IDs so they never collide with other SHA-1 UUIDs.
var atlasNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("sectormap/atlas"))

type roadKey struct {
	city world.CityID
	node world.NodeID
}

// Atlas is a generated world: the sector graph with cities, resource nodes
// and roads on top. All cross references are IDs into its slices.
type Atlas struct {
	ID     uuid.UUID `json:"id"`     // Same seed and config give the same ID
	Config Config    `json:"config"` // Seed is always the one actually used
	Draws  uint64    `json:"draws"`  // Random values consumed

	Map       *world.Map                         `json:"map"`
	Cities    []*world.City                      `json:"cities"`
	Nodes     []*world.ResourceNode              `json:"nodes"`
	Roads     []*roads.Road                      `json:"roads"`
	Relations map[world.CityID][]social.Neighbor `json:"relations"`

	roadIndex map[roadKey]*roads.Road
	cityIndex map[string]*world.City // Lowercased name → city
}

func newAtlas(cfg Config, m *world.Map, cities []*world.City, nodes []*world.ResourceNode, network []*roads.Road, rel map[world.CityID][]social.Neighbor) *Atlas {
	a := &Atlas{
		ID:        atlasID(cfg),
		Config:    cfg,
		Map:       m,
		Cities:    cities,
		Nodes:     nodes,
		Roads:     network,
		Relations: rel,
		roadIndex: make(map[roadKey]*roads.Road, len(network)),
		cityIndex: make(map[string]*world.City, len(cities)),
	}
	for _, r := range network {
		a.roadIndex[roadKey{r.City, r.Node}] = r
	}
	for _, c := range cities {
		a.cityIndex[strings.ToLower(c.Name)] = c
	}
	return a
}

// atlasID fingerprints the config. Config marshals deterministically since
// it holds no maps.
func atlasID(cfg Config) uuid.UUID {
	data, err := json.Marshal(cfg)
	if err != nil {
		data = []byte(fmt.Sprintf("%+v", cfg))
	}
	return uuid.NewSHA1(atlasNamespace, data)
}

// Sector returns the sector with the given ID.
func (a *Atlas) Sector(id world.SectorID) (*world.Sector, error) {
	return a.Map.Sector(id)
}

// City returns the city with the given ID.
func (a *Atlas) City(id world.CityID) (*world.City, error) {
	if id < 0 || int(id) >= len(a.Cities) {
		return nil, fmt.Errorf("city %d: %w", id, ErrUnknownCity)
	}
	return a.Cities[id], nil
}

// CityByName finds a city by case-insensitive name.
func (a *Atlas) CityByName(name string) (*world.City, error) {
	c, ok := a.cityIndex[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("city %q: %w", name, ErrUnknownCity)
	}
	return c, nil
}

// Node returns the resource node with the given ID.
func (a *Atlas) Node(id world.NodeID) (*world.ResourceNode, error) {
	if id < 0 || int(id) >= len(a.Nodes) {
		return nil, fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	return a.Nodes[id], nil
}

// Road returns the road between a city and one of its resource nodes.
func (a *Atlas) Road(city world.CityID, node world.NodeID) (*roads.Road, error) {
	r, ok := a.roadIndex[roadKey{city, node}]
	if !ok {
		return nil, fmt.Errorf("city %d node %d: %w", city, node, ErrUnknownRoad)
	}
	return r, nil
}

// Summary is a compact report of a generated world.
type Summary struct {
	ID              string         `json:"id"`
	Seed            int64          `json:"seed"`
	Sectors         int            `json:"sectors"`
	Cities          int            `json:"cities"`
	Nodes           int            `json:"nodes"`
	Roads           int            `json:"roads"`
	Biomes          map[string]int `json:"biomes"`
	TotalPopulation uint64         `json:"total_population"`
	RoadLength      float64        `json:"road_length"`
}

// Summary computes headline counts for logs and reports.
func (a *Atlas) Summary() Summary {
	s := Summary{
		ID:      a.ID.String(),
		Seed:    a.Config.Seed,
		Sectors: a.Map.Len(),
		Cities:  len(a.Cities),
		Nodes:   len(a.Nodes),
		Roads:   len(a.Roads),
		Biomes:  make(map[string]int),
	}
	for b, n := range a.Map.BiomeCounts() {
		s.Biomes[b.String()] = n
	}
	for _, c := range a.Cities {
		s.TotalPopulation += uint64(c.Population)
	}
	for _, r := range a.Roads {
		s.RoadLength += r.Length
	}
	return s
}
