package application

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/northeast-trails/service-trip/internal/domain"
	"github.com/northeast-trails/service-trip/internal/domain/cart"
	"github.com/northeast-trails/service-trip/internal/domain/catalog"
)

// fakePlaceRepo is an in-memory PlaceRepository preserving insertion order.
type fakePlaceRepo struct {
	places []*catalog.Place
}

func (r *fakePlaceRepo) FindByID(_ context.Context, id string) (*catalog.Place, error) {
	for _, p := range r.places {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.NewNotFoundError("Place", id)
}

func (r *fakePlaceRepo) List(_ context.Context, filter catalog.PlaceFilter, page, limit int) ([]*catalog.Place, int64, error) {
	var matched []*catalog.Place
	for _, p := range r.places {
		if filter.State != "" && p.State != filter.State {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		matched = append(matched, p)
	}

	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], int64(len(matched)), nil
}

func (r *fakePlaceRepo) Upsert(_ context.Context, place *catalog.Place) error {
	for i, p := range r.places {
		if p.ID == place.ID {
			r.places[i] = place
			return nil
		}
	}
	r.places = append(r.places, place)
	return nil
}

func (r *fakePlaceRepo) Remove(_ context.Context, id string) error {
	for i, p := range r.places {
		if p.ID == id {
			r.places = append(r.places[:i], r.places[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakePlaceRepo) CountByState(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, p := range r.places {
		counts[p.State]++
	}
	return counts, nil
}

// fakeStateRepo is an in-memory cart StateRepository with switchable
// failure modes for the best-effort persistence contract.
type fakeStateRepo struct {
	entries   map[string][]cart.Entry
	hubs      map[string]string
	failSaves bool
	failLoads bool
	saveCount int
}

func newFakeStateRepo() *fakeStateRepo {
	return &fakeStateRepo{
		entries: make(map[string][]cart.Entry),
		hubs:    make(map[string]string),
	}
}

func (r *fakeStateRepo) Load(_ context.Context, sessionID string) ([]cart.Entry, string, error) {
	if r.failLoads {
		return nil, "", errors.New("corrupt stored state")
	}
	entries, ok := r.entries[sessionID]
	if !ok {
		return nil, "", errors.New("no stored cart state")
	}
	return entries, r.hubs[sessionID], nil
}

func (r *fakeStateRepo) Save(_ context.Context, sessionID string, entries []cart.Entry, selectedHub string) error {
	r.saveCount++
	if r.failSaves {
		return errors.New("storage quota exceeded")
	}
	r.entries[sessionID] = entries
	r.hubs[sessionID] = selectedHub
	return nil
}

// fakeHubRepo is an in-memory HubRepository.
type fakeHubRepo struct {
	hubs []*catalog.Hub
}

func (r *fakeHubRepo) ListAll(_ context.Context) ([]*catalog.Hub, error) {
	return r.hubs, nil
}

func (r *fakeHubRepo) FindByName(_ context.Context, name string) (*catalog.Hub, error) {
	for _, h := range r.hubs {
		if h.Name == name {
			return h, nil
		}
	}
	return nil, domain.NewNotFoundError("Hub", name)
}

func (r *fakeHubRepo) Seed(_ context.Context, hubs []catalog.Hub) error {
	for i := range hubs {
		r.hubs = append(r.hubs, &hubs[i])
	}
	return nil
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
