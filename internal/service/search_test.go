package service_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/railbooking/internal/domain"
	"github.com/pkordes/railbooking/internal/refdata"
	"github.com/pkordes/railbooking/internal/seed"
	"github.com/pkordes/railbooking/internal/service"
)

// twoTrainFixture builds an asymmetric schedule: PK101 runs Karachi then
// Lahore, PK202 runs Lahore then Karachi.
func twoTrainFixture(t *testing.T) *service.SearchService {
	t.Helper()
	n := refdata.NewNetwork()
	c := refdata.NewCatalog()

	require.NoError(t, n.AddStation("Karachi"))
	require.NoError(t, n.AddStation("Lahore"))
	require.NoError(t, n.AddStation("Quetta"))
	require.NoError(t, n.AddTrack("Karachi", "Lahore", 1200))
	require.NoError(t, n.AddTrack("Lahore", "Karachi", 1200))

	require.NoError(t, c.AddTrain("PK101", "Green Line Express"))
	require.NoError(t, c.SetStop("PK101", "Karachi", "08:00", "08:15"))
	require.NoError(t, c.SetStop("PK101", "Lahore", "16:30", "16:45"))

	require.NoError(t, c.AddTrain("PK202", "Shalimar Express"))
	require.NoError(t, c.SetStop("PK202", "Lahore", "07:00", "07:15"))
	require.NoError(t, c.SetStop("PK202", "Karachi", "19:30", "19:45"))

	return service.NewSearchService(n, c)
}

func codes(ms []domain.Match) []string {
	var out []string
	for _, m := range ms {
		out = append(out, m.TrainCode)
	}
	return out
}

func TestSearchService_FindDirect_OneTrainEndToEnd(t *testing.T) {
	n := refdata.NewNetwork()
	c := refdata.NewCatalog()
	require.NoError(t, n.AddStation("Karachi"))
	require.NoError(t, n.AddStation("Lahore"))
	require.NoError(t, c.AddTrain("PK101", "Green Line Express"))
	require.NoError(t, c.SetStop("PK101", "Karachi", "08:00", "08:15"))
	require.NoError(t, c.SetStop("PK101", "Lahore", "16:30", "16:45"))
	svc := service.NewSearchService(n, c)

	seq, err := svc.FindDirect("Karachi", "Lahore")
	require.NoError(t, err)
	got := slices.Collect(seq)

	require.Len(t, got, 1)
	m := got[0]
	assert.Equal(t, "PK101", m.TrainCode)
	assert.Equal(t, "Green Line Express", m.TrainName)
	assert.Equal(t, "08:00", m.Origin.Departure)
	assert.Equal(t, "16:45", m.Destination.Arrival)
	assert.Equal(t, "8h 45m", m.Duration.String())
	assert.True(t, m.Forward)
}

func TestSearchService_FindDirect_UsesLatestTimesForRepeatedStop(t *testing.T) {
	n := refdata.NewNetwork()
	c := refdata.NewCatalog()
	require.NoError(t, n.AddStation("Karachi"))
	require.NoError(t, n.AddStation("Lahore"))
	require.NoError(t, c.AddTrain("PK101", "Green Line Express"))
	require.NoError(t, c.SetStop("PK101", "Karachi", "08:00", "08:15"))
	require.NoError(t, c.SetStop("PK101", "Lahore", "16:30", "16:45"))
	require.NoError(t, c.SetStop("PK101", "Karachi", "09:00", "09:15"))
	svc := service.NewSearchService(n, c)

	seq, err := svc.FindDirect("Karachi", "Lahore")
	require.NoError(t, err)
	got := slices.Collect(seq)

	require.Len(t, got, 1)
	assert.Equal(t, "09:00", got[0].Origin.Departure)
	assert.Equal(t, "7h 45m", got[0].Duration.String())
	assert.True(t, got[0].Forward)
}

func TestSearchService_FindDirect_MatchesRegardlessOfStopOrder(t *testing.T) {
	svc := twoTrainFixture(t)

	ab, err := svc.FindDirect("Karachi", "Lahore")
	require.NoError(t, err)
	ba, err := svc.FindDirect("Lahore", "Karachi")
	require.NoError(t, err)

	// Both trains contain both stations, so both orders match both trains,
	// in catalog order.
	gotAB := slices.Collect(ab)
	gotBA := slices.Collect(ba)
	assert.Equal(t, []string{"PK101", "PK202"}, codes(gotAB))
	assert.Equal(t, []string{"PK101", "PK202"}, codes(gotBA))

	assert.True(t, gotAB[0].Forward)
	assert.False(t, gotAB[1].Forward)
	assert.False(t, gotBA[0].Forward)
	assert.True(t, gotBA[1].Forward)

	// Backwards match: departs Karachi 19:30, "arrives" Lahore 07:15 the same
	// day, which cannot be expressed without rollover.
	assert.Equal(t, domain.DurationUnavailable, gotAB[1].Duration.String())
	assert.Equal(t, "12h 45m", gotBA[1].Duration.String())
}

func TestSearchService_FindDirectStrict_IsAsymmetric(t *testing.T) {
	svc := twoTrainFixture(t)

	ab, err := svc.FindDirectStrict("Karachi", "Lahore")
	require.NoError(t, err)
	ba, err := svc.FindDirectStrict("Lahore", "Karachi")
	require.NoError(t, err)

	assert.Equal(t, []string{"PK101"}, codes(slices.Collect(ab)))
	assert.Equal(t, []string{"PK202"}, codes(slices.Collect(ba)))
}

func TestSearchService_FindDirect_NoMatch(t *testing.T) {
	svc := twoTrainFixture(t)

	seq, err := svc.FindDirect("Karachi", "Quetta")

	require.NoError(t, err)
	assert.Empty(t, slices.Collect(seq))
}

func TestSearchService_FindDirect_UnknownStation(t *testing.T) {
	svc := twoTrainFixture(t)

	_, err := svc.FindDirect("Karachi", "Gwadar")
	assert.ErrorIs(t, err, domain.ErrUnknownStation)

	_, err = svc.FindDirectStrict("karachi", "Lahore")
	assert.ErrorIs(t, err, domain.ErrUnknownStation, "names are case-sensitive")
}

func TestSearchService_FindDirect_Restartable(t *testing.T) {
	svc := twoTrainFixture(t)

	seq, err := svc.FindDirect("Karachi", "Lahore")
	require.NoError(t, err)

	assert.Equal(t, slices.Collect(seq), slices.Collect(seq))
}

func TestSearchService_FindDirect_MalformedTimeDegrades(t *testing.T) {
	n := refdata.NewNetwork()
	c := refdata.NewCatalog()
	require.NoError(t, n.AddStation("A"))
	require.NoError(t, n.AddStation("B"))
	require.NoError(t, c.AddTrain("T1", "Test"))
	require.NoError(t, c.SetStop("T1", "A", "noon", "12:10"))
	require.NoError(t, c.SetStop("T1", "B", "14:00", "14:10"))
	svc := service.NewSearchService(n, c)

	seq, err := svc.FindDirect("A", "B")
	require.NoError(t, err)
	got := slices.Collect(seq)

	require.Len(t, got, 1)
	assert.False(t, got[0].Duration.Valid)
	assert.Equal(t, "N/A", got[0].Duration.String())
}

func TestSearchService_IsRouteServiced(t *testing.T) {
	svc := twoTrainFixture(t)

	assert.True(t, svc.IsRouteServiced("Karachi", "Lahore"))
	assert.True(t, svc.IsRouteServiced("Lahore", "Karachi"))
	assert.False(t, svc.IsRouteServiced("Karachi", "Quetta"))
	assert.False(t, svc.IsRouteServiced("Karachi", "Gwadar"))
}

func TestTravelsForward(t *testing.T) {
	train := &domain.Train{Stops: []domain.Stop{
		{Station: "Karachi"}, {Station: "Lahore"}, {Station: "Islamabad"},
	}}

	assert.True(t, service.TravelsForward(train, "Karachi", "Islamabad"))
	assert.False(t, service.TravelsForward(train, "Islamabad", "Karachi"))
	assert.False(t, service.TravelsForward(train, "Karachi", "Quetta"))
	assert.False(t, service.TravelsForward(train, "Lahore", "Lahore"))
}

func TestSearchService_DefaultSeed(t *testing.T) {
	d, err := seed.LoadDefault()
	require.NoError(t, err)
	svc := service.NewSearchService(d.Network, d.Catalog)

	seq, err := svc.FindDirect("Karachi", "Lahore")
	require.NoError(t, err)
	got := slices.Collect(seq)

	assert.Equal(t, []string{"PK101", "PK202", "PK707"}, codes(got))
	assert.Equal(t, "8h 45m", got[0].Duration.String())
	assert.Equal(t, "7h 45m", got[2].Duration.String())

	assert.True(t, svc.IsRouteServiced("Lahore", "Islamabad"))
	assert.False(t, svc.IsRouteServiced("Sialkot", "Multan"), "track exists but no train")
}
