package refdata_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/railbooking/internal/domain"
	"github.com/pkordes/railbooking/internal/refdata"
)

func TestNetwork_AddStation_Duplicate(t *testing.T) {
	n := refdata.NewNetwork()
	require.NoError(t, n.AddStation("Karachi"))

	err := n.AddStation("Karachi")

	assert.ErrorIs(t, err, domain.ErrDuplicateStation)
	assert.ErrorIs(t, err, domain.ErrReferenceData)
}

func TestNetwork_StationNamesAreCaseSensitive(t *testing.T) {
	n := refdata.NewNetwork()
	require.NoError(t, n.AddStation("Karachi"))

	require.NoError(t, n.AddStation("karachi"))
	assert.True(t, n.HasStation("karachi"))
}

func TestNetwork_AddTrack_OneDirectionPerCall(t *testing.T) {
	n := refdata.NewNetwork()
	require.NoError(t, n.AddStation("Karachi"))
	require.NoError(t, n.AddStation("Hyderabad"))

	require.NoError(t, n.AddTrack("Karachi", "Hyderabad", 164))

	k, err := n.Station("Karachi")
	require.NoError(t, err)
	assert.Equal(t, []domain.Track{{From: "Karachi", To: "Hyderabad", Distance: 164}}, k.Tracks)

	h, err := n.Station("Hyderabad")
	require.NoError(t, err)
	assert.Empty(t, h.Tracks, "reverse direction needs its own call")

	require.NoError(t, n.AddTrack("Hyderabad", "Karachi", 164))
	h, err = n.Station("Hyderabad")
	require.NoError(t, err)
	assert.Len(t, h.Tracks, 1)
}

func TestNetwork_AddTrack_Errors(t *testing.T) {
	n := refdata.NewNetwork()
	require.NoError(t, n.AddStation("Lahore"))

	assert.ErrorIs(t, n.AddTrack("Lahore", "Nowhere", 10), domain.ErrUnknownStation)
	assert.ErrorIs(t, n.AddTrack("Nowhere", "Lahore", 10), domain.ErrUnknownStation)

	require.NoError(t, n.AddStation("Sialkot"))
	assert.ErrorIs(t, n.AddTrack("Lahore", "Sialkot", -1), domain.ErrNegativeDistance)
	assert.NoError(t, n.AddTrack("Lahore", "Sialkot", 0), "zero distance is allowed")
}

func TestNetwork_Station_Unknown(t *testing.T) {
	_, err := refdata.NewNetwork().Station("Quetta")

	assert.ErrorIs(t, err, domain.ErrUnknownStation)
}

func TestNetwork_Station_ReturnsCopy(t *testing.T) {
	n := refdata.NewNetwork()
	require.NoError(t, n.AddStation("A"))
	require.NoError(t, n.AddStation("B"))
	require.NoError(t, n.AddTrack("A", "B", 1))

	s, err := n.Station("A")
	require.NoError(t, err)
	s.Tracks[0].Distance = 999

	again, err := n.Station("A")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Tracks[0].Distance)
}

func TestNetwork_Stations_RegistrationOrder(t *testing.T) {
	n := refdata.NewNetwork()
	for _, name := range []string{"Quetta", "Karachi", "Lahore"} {
		require.NoError(t, n.AddStation(name))
	}

	var names []string
	for s := range n.Stations() {
		names = append(names, s.Name)
	}

	assert.Equal(t, []string{"Quetta", "Karachi", "Lahore"}, names)
	assert.Len(t, slices.Collect(n.Stations()), 3, "sequence is restartable")
}
