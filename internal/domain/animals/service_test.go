package animals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-api/internal/platform/apperr"
)

type testRepo struct {
	byID   map[int64]Animal
	nextID int64
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Animal{}}
}

func (r *testRepo) Create(ctx context.Context, a Animal) (Animal, error) {
	r.nextID++
	a.ID = r.nextID
	r.byID[a.ID] = a
	return a, nil
}

// GetByID embebe el dueño como lo hace el join de los stores reales.
func (r *testRepo) GetByID(ctx context.Context, id int64) (Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return Animal{}, ErrNotFound
	}
	a.Owner = &Owner{ID: a.OwnerID}
	return a, nil
}

func (r *testRepo) List(ctx context.Context) ([]Animal, error) {
	out := make([]Animal, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id int64) error {
	delete(r.byID, id)
	return nil
}

// owners fijo: solo existen los ids listados.
type owners map[int64]bool

func (o owners) Exists(ctx context.Context, id int64) (bool, error) {
	return o[id], nil
}

type failingOwners struct{ err error }

func (f failingOwners) Exists(ctx context.Context, id int64) (bool, error) {
	return false, f.err
}

func newTestService(repo Repository, lookup OwnerLookup) *Service {
	svc := NewService(repo, lookup, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestService_Create_OK(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, owners{1: true})

	age := 4
	a, err := svc.Create(context.Background(), CreateInput{
		Name:    "Rex",
		Species: "dog",
		Breed:   "mixed",
		Age:     &age,
		OwnerID: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(1), a.OwnerID)
	assert.Equal(t, "Rex", a.Name)
	require.NotNil(t, a.Age)
	assert.Equal(t, 4, *a.Age)
	assert.Len(t, repo.byID, 1)

	require.NotNil(t, a.Owner)
	assert.Equal(t, int64(1), a.Owner.ID)
}

func TestService_Create_OwnerMissing_NothingPersisted(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, owners{1: true})

	_, err := svc.Create(context.Background(), CreateInput{Name: "Rex", Species: "dog", OwnerID: 99})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOwnerNotFound))
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.Empty(t, repo.byID)
}

func TestService_Create_Validation(t *testing.T) {
	negative := -1
	huge := 5000
	tests := []struct {
		name        string
		in          CreateInput
		wantDetails string
	}{
		{name: "missing name", in: CreateInput{Species: "dog", OwnerID: 1}, wantDetails: "name is required"},
		{name: "missing species", in: CreateInput{Name: "Rex", OwnerID: 1}, wantDetails: "species is required"},
		{name: "missing owner", in: CreateInput{Name: "Rex", Species: "dog"}, wantDetails: "owner_id is required"},
		{name: "negative age", in: CreateInput{Name: "Rex", Species: "dog", OwnerID: 1, Age: &negative}, wantDetails: "age must be greater than or equal to 0"},
		{name: "age out of range", in: CreateInput{Name: "Rex", Species: "dog", OwnerID: 1, Age: &huge}, wantDetails: "age must be less than or equal to 200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo()
			svc := newTestService(repo, owners{1: true})

			_, err := svc.Create(context.Background(), tt.in)

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Contains(t, apperr.Details(err), tt.wantDetails)
			assert.Empty(t, repo.byID)
		})
	}
}

func TestService_Create_OwnerLookupFails(t *testing.T) {
	boom := errors.New("db down")
	svc := newTestService(newTestRepo(), failingOwners{err: boom})

	_, err := svc.Create(context.Background(), CreateInput{Name: "Rex", Species: "dog", OwnerID: 1})

	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, apperr.Kind(""), apperr.KindOf(err))
}

func TestService_Exists(t *testing.T) {
	svc := newTestService(newTestRepo(), owners{1: true})
	a, err := svc.Create(context.Background(), CreateInput{Name: "Rex", Species: "dog", OwnerID: 1})
	require.NoError(t, err)

	ok, err := svc.Exists(context.Background(), a.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(context.Background(), 500)
	require.NoError(t, err)
	assert.False(t, ok)
}
