package pathfinding

import (
	"fmt"
	"math/rand"
	"testing"

	"scholargraph/domain/core/aggregates"
	"scholargraph/domain/core/valueobjects"
	pkgerrors "scholargraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type edge struct {
	a, b   string
	weight int
}

func id(t *testing.T, raw string) valueobjects.AffiliationID {
	t.Helper()
	parsed, err := valueobjects.NewAffiliationID(raw)
	require.NoError(t, err)
	return parsed
}

func buildIndex(t *testing.T, edges []edge) *aggregates.ConnectivityIndex {
	t.Helper()
	index := aggregates.NewConnectivityIndex()
	for i, e := range edges {
		require.NoError(t, index.Strengthen(valueobjects.PublicationID(i+1), id(t, e.a), id(t, e.b), e.weight))
	}
	return index
}

// knownAll accepts every affiliation in known
func knownAll(known ...string) Directory {
	set := make(map[string]bool, len(known))
	for _, k := range known {
		set[k] = true
	}
	return DirectoryFunc(func(id valueobjects.AffiliationID) bool {
		return set[id.String()]
	})
}

func route(path valueobjects.Path) []string {
	var names []string
	for _, aff := range path.Affiliations() {
		names = append(names, aff.String())
	}
	return names
}

func TestAnyPath(t *testing.T) {
	index := buildIndex(t, []edge{
		{"a", "b", 1}, {"a", "c", 1}, {"b", "d", 1}, {"c", "d", 1}, {"d", "e", 1},
	})
	finder := NewFinder(index, nil)

	path := finder.AnyPath(id(t, "a"), id(t, "e"))

	assert.Equal(t, []string{"a", "b", "d", "e"}, route(path))
	assert.True(t, path.IsSimpleWalk())
}

func TestAnyPathDeepChain(t *testing.T) {
	var edges []edge
	for i := 0; i < 5000; i++ {
		edges = append(edges, edge{fmt.Sprintf("n%05d", i), fmt.Sprintf("n%05d", i+1), 1})
	}
	finder := NewFinder(buildIndex(t, edges), nil)

	path := finder.AnyPath(id(t, "n00000"), id(t, "n05000"))

	assert.Equal(t, 5000, len(path))
}

func TestFewestHops(t *testing.T) {
	tests := []struct {
		name  string
		edges []edge
		from  string
		to    string
		want  []string
	}{
		{
			name:  "shortcut beats long chain",
			edges: []edge{{"a", "b", 1}, {"b", "c", 1}, {"c", "d", 1}, {"a", "e", 1}, {"e", "d", 1}},
			from:  "a",
			to:    "d",
			want:  []string{"a", "e", "d"},
		},
		{
			name:  "ties resolved by ascending id",
			edges: []edge{{"a", "c", 1}, {"c", "z", 1}, {"a", "b", 1}, {"b", "z", 1}},
			from:  "a",
			to:    "z",
			want:  []string{"a", "b", "z"},
		},
		{
			name:  "weights are ignored",
			edges: []edge{{"a", "b", 100}, {"a", "c", 1}, {"c", "d", 1}, {"d", "b", 1}},
			from:  "a",
			to:    "b",
			want:  []string{"a", "b"},
		},
		{
			name:  "disconnected",
			edges: []edge{{"a", "b", 1}, {"c", "d", 1}},
			from:  "a",
			to:    "d",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := NewFinder(buildIndex(t, tt.edges), nil)

			path := finder.FewestHops(id(t, tt.from), id(t, tt.to))

			assert.Equal(t, tt.want, route(path))
			assert.NotNil(t, path)
		})
	}
}

func TestLeastFriction(t *testing.T) {
	tests := []struct {
		name           string
		edges          []edge
		from           string
		to             string
		want           []string
		wantBottleneck int
	}{
		{
			name:           "strong detour beats weak direct link",
			edges:          []edge{{"a", "b", 1}, {"a", "c", 5}, {"c", "b", 5}},
			from:           "a",
			to:             "b",
			want:           []string{"a", "c", "b"},
			wantBottleneck: 5,
		},
		{
			name: "fewest hops among equal bottlenecks",
			edges: []edge{
				{"a", "d", 5}, {"d", "e", 5}, {"e", "b", 5},
				{"a", "x", 5}, {"x", "b", 5},
			},
			from:           "a",
			to:             "b",
			want:           []string{"a", "x", "b"},
			wantBottleneck: 5,
		},
		{
			name: "ascending id among equal bottleneck and hops",
			edges: []edge{
				{"a", "f", 4}, {"f", "b", 9},
				{"a", "c", 7}, {"c", "b", 4},
			},
			from:           "a",
			to:             "b",
			want:           []string{"a", "c", "b"},
			wantBottleneck: 4,
		},
		{
			name: "widest route found before shorter weak route",
			edges: []edge{
				{"s", "t", 2},
				{"s", "m", 3}, {"m", "n", 3}, {"n", "t", 3},
				{"s", "k", 9}, {"k", "t", 1},
			},
			from:           "s",
			to:             "t",
			want:           []string{"s", "m", "n", "t"},
			wantBottleneck: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := NewFinder(buildIndex(t, tt.edges), nil)

			path := finder.LeastFriction(id(t, tt.from), id(t, tt.to))

			assert.Equal(t, tt.want, route(path))
			assert.Equal(t, tt.wantBottleneck, path.Bottleneck())
		})
	}
}

func TestShortestWeighted(t *testing.T) {
	tests := []struct {
		name         string
		edges        []edge
		from         string
		to           string
		want         []string
		wantDistance []int
	}{
		{
			name:         "detour of four beats direct ten",
			edges:        []edge{{"a", "b", 10}, {"a", "c", 2}, {"c", "b", 2}},
			from:         "a",
			to:           "b",
			want:         []string{"a", "c", "b"},
			wantDistance: []int{2, 4},
		},
		{
			name:         "equal cost resolved by smaller predecessor",
			edges:        []edge{{"a", "d", 1}, {"d", "b", 3}, {"a", "c", 2}, {"c", "b", 2}},
			from:         "a",
			to:           "b",
			want:         []string{"a", "c", "b"},
			wantDistance: []int{2, 4},
		},
		{
			name:         "single hop",
			edges:        []edge{{"a", "b", 7}},
			from:         "b",
			to:           "a",
			want:         []string{"b", "a"},
			wantDistance: []int{7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := NewFinder(buildIndex(t, tt.edges), nil)

			result := finder.ShortestWeighted(id(t, tt.from), id(t, tt.to))

			assert.Equal(t, tt.want, route(result.Path()))
			var distances []int
			for _, step := range result {
				distances = append(distances, step.Distance)
			}
			assert.Equal(t, tt.wantDistance, distances)
			assert.Equal(t, result.Path().TotalWeight(), result.Distance())
		})
	}
}

func TestReflexiveAndSoftFailure(t *testing.T) {
	index := buildIndex(t, []edge{{"a", "b", 1}, {"b", "c", 2}, {"x", "y", 1}})
	finder := NewFinder(index, knownAll("a", "b", "c", "x", "y", "lonely"))

	cases := []struct {
		name     string
		from, to string
	}{
		{name: "source equals target", from: "b", to: "b"},
		{name: "unknown source", from: "ghost", to: "c"},
		{name: "unknown target", from: "a", to: "ghost"},
		{name: "no path", from: "a", to: "y"},
		{name: "isolated affiliation", from: "lonely", to: "a"},
	}

	for _, tc := range cases {
		for _, kind := range Kinds() {
			t.Run(tc.name+"/"+string(kind), func(t *testing.T) {
				result, err := finder.Find(kind, id(t, tc.from), id(t, tc.to))

				require.NoError(t, err)
				assert.NotNil(t, result)
				assert.Empty(t, result)
			})
		}
	}
}

func TestUnknownToDirectoryButPresentInGraph(t *testing.T) {
	index := buildIndex(t, []edge{{"a", "b", 1}})
	finder := NewFinder(index, knownAll("a"))

	assert.Empty(t, finder.FewestHops(id(t, "a"), id(t, "b")))
}

func TestFindUnknownKind(t *testing.T) {
	finder := NewFinder(aggregates.NewConnectivityIndex(), nil)

	_, err := finder.Find(Kind("scenic"), id(t, "a"), id(t, "b"))

	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds() {
		parsed, err := ParseKind(string(kind))
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := ParseKind("")
	assert.Error(t, err)
}

// simplePaths enumerates every simple path between from and to
func simplePaths(index *aggregates.ConnectivityIndex, from, to valueobjects.AffiliationID) []valueobjects.Path {
	var found []valueobjects.Path
	onPath := map[valueobjects.AffiliationID]bool{from: true}
	var walk func(current valueobjects.AffiliationID, prefix valueobjects.Path)
	walk = func(current valueobjects.AffiliationID, prefix valueobjects.Path) {
		if current.Equals(to) {
			found = append(found, append(valueobjects.Path(nil), prefix...))
			return
		}
		for _, hop := range index.Neighbors(current) {
			if onPath[hop.To] {
				continue
			}
			onPath[hop.To] = true
			walk(hop.To, append(prefix, hop))
			onPath[hop.To] = false
		}
	}
	walk(from, nil)
	return found
}

func assertWalkInGraph(t *testing.T, index *aggregates.ConnectivityIndex, path valueobjects.Path, from, to valueobjects.AffiliationID) {
	t.Helper()
	require.NotEmpty(t, path)
	require.True(t, path.IsSimpleWalk())
	source, _ := path.Source()
	target, _ := path.Target()
	assert.Equal(t, from, source)
	assert.Equal(t, to, target)
	for _, hop := range path {
		conn, ok := index.ConnectionBetween(hop.From, hop.To)
		require.True(t, ok)
		assert.Equal(t, conn.Weight(), hop.Weight)
	}
}

func TestOptimalityAgainstExhaustiveSearch(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	names := []string{"a", "b", "c", "d", "e", "f", "g"}

	for round := 0; round < 40; round++ {
		var edges []edge
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				if rng.Intn(100) < 40 {
					edges = append(edges, edge{names[i], names[j], 1 + rng.Intn(6)})
				}
			}
		}
		index := buildIndex(t, edges)
		finder := NewFinder(index, nil)

		for _, fromName := range names {
			for _, toName := range names {
				if fromName == toName {
					continue
				}
				from, to := id(t, fromName), id(t, toName)
				all := simplePaths(index, from, to)

				if len(all) == 0 {
					assert.Empty(t, finder.AnyPath(from, to))
					assert.Empty(t, finder.FewestHops(from, to))
					assert.Empty(t, finder.LeastFriction(from, to))
					assert.Empty(t, finder.ShortestWeighted(from, to))
					continue
				}

				minHops, maxBottleneck, minTotal := len(all[0]), 0, all[0].TotalWeight()
				for _, p := range all {
					minHops = min(minHops, len(p))
					maxBottleneck = max(maxBottleneck, p.Bottleneck())
					minTotal = min(minTotal, p.TotalWeight())
				}
				hopsAtBest := len(names)
				for _, p := range all {
					if p.Bottleneck() == maxBottleneck {
						hopsAtBest = min(hopsAtBest, len(p))
					}
				}

				anyPath := finder.AnyPath(from, to)
				assertWalkInGraph(t, index, anyPath, from, to)

				fewest := finder.FewestHops(from, to)
				assertWalkInGraph(t, index, fewest, from, to)
				assert.Equal(t, minHops, len(fewest))

				widest := finder.LeastFriction(from, to)
				assertWalkInGraph(t, index, widest, from, to)
				assert.Equal(t, maxBottleneck, widest.Bottleneck())
				assert.Equal(t, hopsAtBest, len(widest))

				shortest := finder.ShortestWeighted(from, to)
				assertWalkInGraph(t, index, shortest.Path(), from, to)
				assert.Equal(t, minTotal, shortest.Distance())
			}
		}
	}
}
