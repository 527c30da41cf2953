package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northeast-trails/service-trip/internal/domain"
	"github.com/northeast-trails/service-trip/internal/domain/catalog"
)

func seedPlaces() *fakePlaceRepo {
	rating := 4.6
	return &fakePlaceRepo{places: []*catalog.Place{
		{
			ID:          "kaziranga",
			Name:        "Kaziranga National Park",
			Category:    "Wildlife",
			State:       "Assam",
			Rating:      &rating,
			Coordinates: catalog.Coordinates{Lat: 26.5775, Lng: 93.1711},
			Logistics: []catalog.LogisticsEntry{
				{Hub: "Guwahati Airport", Type: catalog.HubTypeAirport, DistanceKm: 193, DriveMinutes: 240},
			},
		},
		{
			ID:          "laitlum",
			Name:        "Laitlum Canyons",
			Category:    "Viewpoint",
			State:       "Meghalaya",
			Coordinates: catalog.Coordinates{Lat: 25.5112, Lng: 91.9366},
		},
	}}
}

func newTestCartService(store *fakeStateRepo) *CartService {
	return NewCartService(seedPlaces(), store, nil, testLogger())
}

func TestCartService_AddPlaceUnknownID(t *testing.T) {
	svc := newTestCartService(newFakeStateRepo())

	_, err := svc.AddPlace(context.Background(), "session-1", "atlantis")
	require.Error(t, err)

	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCartService_AddPlacePersistsAndRehydrates(t *testing.T) {
	store := newFakeStateRepo()
	svc := newTestCartService(store)
	ctx := context.Background()

	dto, err := svc.AddPlace(ctx, "session-1", "kaziranga")
	require.NoError(t, err)
	assert.Equal(t, 1, dto.Count)
	assert.Equal(t, "Guwahati Airport", dto.SelectedHub)
	assert.True(t, dto.SidebarOpen)

	// Drop the in-memory cart; the next touch must rebuild it from the
	// stored state.
	svc.Forget("session-1")

	reloaded, err := svc.GetCart(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Count)
	assert.Equal(t, "kaziranga", reloaded.Entries[0].ID)
	assert.Equal(t, "Guwahati Airport", reloaded.SelectedHub)
	assert.False(t, reloaded.SidebarOpen, "sidebar visibility must not survive rehydration")
}

func TestCartService_AddPlaceIdempotentSkipsSecondWrite(t *testing.T) {
	store := newFakeStateRepo()
	svc := newTestCartService(store)
	ctx := context.Background()

	_, err := svc.AddPlace(ctx, "session-1", "kaziranga")
	require.NoError(t, err)
	writes := store.saveCount

	dto, err := svc.AddPlace(ctx, "session-1", "kaziranga")
	require.NoError(t, err)
	assert.Equal(t, 1, dto.Count)
	assert.Equal(t, writes, store.saveCount, "duplicate add must not rewrite state")
}

func TestCartService_PersistenceFailureIsSwallowed(t *testing.T) {
	store := newFakeStateRepo()
	store.failSaves = true
	svc := newTestCartService(store)
	ctx := context.Background()

	dto, err := svc.AddPlace(ctx, "session-1", "kaziranga")
	require.NoError(t, err)
	assert.Equal(t, 1, dto.Count, "in-memory mutation must stand when the write fails")

	dto, err = svc.GetCart(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 1, dto.Count)
}

func TestCartService_UnreadableStateStartsEmpty(t *testing.T) {
	store := newFakeStateRepo()
	store.failLoads = true
	svc := newTestCartService(store)

	dto, err := svc.GetCart(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Equal(t, 0, dto.Count)
	assert.Empty(t, dto.SelectedHub)
}

func TestCartService_ClearThenReloadYieldsEmptyCart(t *testing.T) {
	store := newFakeStateRepo()
	svc := newTestCartService(store)
	ctx := context.Background()

	_, err := svc.AddPlace(ctx, "session-1", "kaziranga")
	require.NoError(t, err)

	dto, err := svc.Clear(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 0, dto.Count)
	assert.Empty(t, dto.SelectedHub)

	svc.Forget("session-1")

	reloaded, err := svc.GetCart(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Count)
	assert.Empty(t, reloaded.SelectedHub)
}

func TestCartService_RemoveKeepsHubSelection(t *testing.T) {
	svc := newTestCartService(newFakeStateRepo())
	ctx := context.Background()

	_, err := svc.AddPlace(ctx, "session-1", "kaziranga")
	require.NoError(t, err)

	dto, err := svc.RemovePlace(ctx, "session-1", "kaziranga")
	require.NoError(t, err)
	assert.Equal(t, 0, dto.Count)
	assert.Equal(t, "Guwahati Airport", dto.SelectedHub)
}

func TestCartService_ToggleSidebarNotPersisted(t *testing.T) {
	store := newFakeStateRepo()
	svc := newTestCartService(store)
	ctx := context.Background()

	dto, err := svc.ToggleSidebar(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, dto.SidebarOpen)
	assert.Zero(t, store.saveCount, "sidebar toggles are session-only")
}

func TestCartService_SelectHubAcceptsAnyName(t *testing.T) {
	svc := newTestCartService(newFakeStateRepo())

	dto, err := svc.SelectHub(context.Background(), "session-1", "Lengpui Airport")
	require.NoError(t, err)
	assert.Equal(t, "Lengpui Airport", dto.SelectedHub)
}

func TestCartService_CartDTOCarriesDerivedViews(t *testing.T) {
	svc := newTestCartService(newFakeStateRepo())
	ctx := context.Background()

	_, err := svc.AddPlace(ctx, "session-1", "kaziranga")
	require.NoError(t, err)
	dto, err := svc.AddPlace(ctx, "session-1", "laitlum")
	require.NoError(t, err)

	require.Len(t, dto.Groups, 2)
	assert.Equal(t, "Assam", dto.Groups[0].State)
	assert.Equal(t, "Meghalaya", dto.Groups[1].State)
	require.Len(t, dto.AvailableHubs, 1)
	assert.Equal(t, "Guwahati Airport", dto.AvailableHubs[0].Name)
	assert.Equal(t, 240, dto.TotalDriveMinutes)
	assert.Equal(t, "4h", dto.TotalDriveDisplay)
}

func TestCartService_Itinerary(t *testing.T) {
	svc := newTestCartService(newFakeStateRepo())
	ctx := context.Background()

	_, err := svc.AddPlace(ctx, "session-1", "kaziranga")
	require.NoError(t, err)

	dto, err := svc.Itinerary(ctx, "session-1")
	require.NoError(t, err)
	assert.Contains(t, dto.Text, "My Northeast Trip Plan")
	assert.Contains(t, dto.Text, "Starting from Guwahati Airport")
	assert.Contains(t, dto.Text, "Kaziranga National Park")
	assert.True(t, strings.HasPrefix(dto.ShareLink, "https://wa.me/?text="))
	assert.NotContains(t, dto.ShareLink, "+")
}
