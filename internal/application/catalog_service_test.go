package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northeast-trails/service-trip/internal/domain"
	"github.com/northeast-trails/service-trip/internal/domain/catalog"
)

func newTestCatalogService() (*CatalogService, *fakePlaceRepo) {
	places := seedPlaces()
	hubs := &fakeHubRepo{}
	_ = hubs.Seed(context.Background(), catalog.DefaultDirectory())
	return NewCatalogService(places, hubs, testLogger()), places
}

func TestCatalogService_ListPlacesFiltersByState(t *testing.T) {
	svc, _ := newTestCatalogService()

	result, err := svc.ListPlaces(context.Background(), catalog.PlaceFilter{State: "Assam"}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "kaziranga", result.Items[0].ID)
}

func TestCatalogService_UpsertPlaceValidation(t *testing.T) {
	svc, _ := newTestCatalogService()
	ctx := context.Background()

	var validation *domain.ValidationError

	err := svc.UpsertPlace(ctx, catalog.Place{Name: "No ID"})
	assert.ErrorAs(t, err, &validation)

	err = svc.UpsertPlace(ctx, catalog.Place{ID: "no-name"})
	assert.ErrorAs(t, err, &validation)

	err = svc.UpsertPlace(ctx, catalog.Place{
		ID:   "bad-hub",
		Name: "Bad Hub",
		Logistics: []catalog.LogisticsEntry{
			{Hub: "Guwahati Seaport", Type: catalog.HubType("seaport")},
		},
	})
	assert.ErrorAs(t, err, &validation)
}

func TestCatalogService_UpsertThenGet(t *testing.T) {
	svc, _ := newTestCatalogService()
	ctx := context.Background()

	err := svc.UpsertPlace(ctx, catalog.Place{
		ID:    "majuli",
		Name:  "Majuli Island",
		State: "Assam",
	})
	require.NoError(t, err)

	place, err := svc.GetPlace(ctx, "majuli")
	require.NoError(t, err)
	assert.Equal(t, "Majuli Island", place.Name)
}

func TestCatalogService_RemovePlaceRequiresID(t *testing.T) {
	svc, places := newTestCatalogService()
	ctx := context.Background()

	var validation *domain.ValidationError
	assert.ErrorAs(t, svc.RemovePlace(ctx, ""), &validation)

	require.NoError(t, svc.RemovePlace(ctx, "kaziranga"))
	assert.Len(t, places.places, 1)
}

func TestCatalogService_GetCatalogStats(t *testing.T) {
	svc, _ := newTestCatalogService()

	stats, err := svc.GetCatalogStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalPlaces)
	assert.Equal(t, int64(1), stats.ByState["Assam"])
	assert.Equal(t, int64(1), stats.ByState["Meghalaya"])
}

func TestCatalogService_ListHubsReturnsDirectory(t *testing.T) {
	svc, _ := newTestCatalogService()

	hubs, err := svc.ListHubs(context.Background())
	require.NoError(t, err)
	assert.Len(t, hubs, len(catalog.DefaultDirectory()))
}
