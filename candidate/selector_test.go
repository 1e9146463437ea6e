package candidate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trshaper/candidate"
	"github.com/katalvlaran/trshaper/feedmodel"
	"github.com/katalvlaran/trshaper/trgraph"
)

type fakeGroupRef struct {
	groups map[string]*feedmodel.CandidateGroup
}

func (f *fakeGroupRef) CandidateGroupFor(stopID string) *feedmodel.CandidateGroup {
	return f.groups[stopID]
}

type fakeIngest struct {
	groups map[string]feedmodel.StationGroupRef
}

func (f *fakeIngest) Graph() *trgraph.Graph            { return nil }
func (f *fakeIngest) Restrictor() feedmodel.Restrictor { return nil }
func (f *fakeIngest) StationGroup(stopID string) feedmodel.StationGroupRef {
	return f.groups[stopID]
}

func TestSelector_ReturnsEmptyGroupWhenNoStationGroup(t *testing.T) {
	s := candidate.NewSelector(&fakeIngest{groups: map[string]feedmodel.StationGroupRef{}})

	cg := s.Select(&feedmodel.Stop{ID: "stopX"})
	require.NotNil(t, cg)
	require.Empty(t, cg.Candidates)
}

func TestSelector_ResolvesThroughStationGroup(t *testing.T) {
	want := &feedmodel.CandidateGroup{
		StopID:     "stop1",
		Candidates: []feedmodel.NodeCandidate{{NodeID: "n1", Penalty: 0.5}},
	}
	ingest := &fakeIngest{groups: map[string]feedmodel.StationGroupRef{
		"stop1": &fakeGroupRef{groups: map[string]*feedmodel.CandidateGroup{"stop1": want}},
	}}

	s := candidate.NewSelector(ingest)
	got := s.Select(&feedmodel.Stop{ID: "stop1"})
	require.Same(t, want, got)
}

func TestSelector_CandidateRoutePreservesOrder(t *testing.T) {
	ingest := &fakeIngest{groups: map[string]feedmodel.StationGroupRef{}}
	s := candidate.NewSelector(ingest)

	route := s.CandidateRoute([]*feedmodel.Stop{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	require.Len(t, route, 3)
	require.Equal(t, "a", route[0].StopID)
	require.Equal(t, "c", route[2].StopID)
}
