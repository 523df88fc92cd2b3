package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/places-service/internal/domain"
)

var errStoreDown = errors.New("store unavailable")

// fakeUserRepo keeps users in memory and hands out copies, the way the
// real repository materializes fresh rows per query.
type fakeUserRepo struct {
	mu         sync.Mutex
	users      map[string]*domain.User
	failCreate bool
	nextID     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) addUser(name, email string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user := &domain.User{
		ID:     fmt.Sprintf("u%d", r.nextID),
		Name:   name,
		Email:  email,
		Places: domain.NewPlaceSet(),
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errStoreDown
	}
	r.nextID++
	user.ID = fmt.Sprintf("u%d", r.nextID)
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.User
	for _, user := range r.users {
		result = append(result, *user)
	}
	return result, nil
}

func (r *fakeUserRepo) placeSet(id string) domain.PlaceSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		return domain.NewPlaceSet(user.Places.IDs()...)
	}
	return domain.NewPlaceSet()
}

// fakePlaceRepo mirrors the real repository's contract: Create and
// Delete apply the place row and the owner's set membership together,
// or not at all.
type fakePlaceRepo struct {
	mu         sync.Mutex
	users      *fakeUserRepo
	places     map[string]*domain.Place
	failCreate bool
	failUpdate bool
	failDelete bool
	nextID     int
}

func newFakePlaceRepo(users *fakeUserRepo) *fakePlaceRepo {
	return &fakePlaceRepo{users: users, places: map[string]*domain.Place{}}
}

func (r *fakePlaceRepo) Create(_ context.Context, place *domain.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errStoreDown
	}

	r.users.mu.Lock()
	defer r.users.mu.Unlock()
	owner, ok := r.users.users[place.CreatorID]
	if !ok {
		return pgx.ErrNoRows
	}

	r.nextID++
	place.ID = fmt.Sprintf("p%d", r.nextID)
	stored := *place
	r.places[place.ID] = &stored
	owner.Places.Add(place.ID)
	return nil
}

func (r *fakePlaceRepo) Update(_ context.Context, place *domain.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate {
		return errStoreDown
	}
	stored, ok := r.places[place.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Title = place.Title
	stored.Description = place.Description
	return nil
}

func (r *fakePlaceRepo) Delete(_ context.Context, place *domain.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failDelete {
		return errStoreDown
	}
	if _, ok := r.places[place.ID]; !ok {
		return pgx.ErrNoRows
	}

	r.users.mu.Lock()
	defer r.users.mu.Unlock()
	delete(r.places, place.ID)
	if owner, ok := r.users.users[place.CreatorID]; ok {
		owner.Places.Remove(place.ID)
	}
	return nil
}

func (r *fakePlaceRepo) GetByID(_ context.Context, id string) (*domain.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	place, ok := r.places[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *place
	return &copied, nil
}

func (r *fakePlaceRepo) ListByCreator(_ context.Context, creatorID string) ([]domain.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Place
	for _, place := range r.places {
		if place.CreatorID == creatorID {
			result = append(result, *place)
		}
	}
	return result, nil
}
