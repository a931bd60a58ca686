package veterinarians

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-api/internal/platform/apperr"
)

type testRepo struct {
	byID   map[int64]Veterinarian
	nextID int64

	// skipLicenseIndex simula un store cuyo FindByLicense no ve una fila
	// insertada en paralelo: solo el Create detecta el duplicado.
	skipLicenseIndex bool
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Veterinarian{}}
}

func (r *testRepo) Create(ctx context.Context, v Veterinarian) (Veterinarian, error) {
	for _, existing := range r.byID {
		if existing.LicenseNumber == v.LicenseNumber {
			return Veterinarian{}, ErrDuplicateLicense
		}
	}
	r.nextID++
	v.ID = r.nextID
	r.byID[v.ID] = v
	return v, nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Veterinarian, error) {
	v, ok := r.byID[id]
	if !ok {
		return Veterinarian{}, ErrNotFound
	}
	return v, nil
}

func (r *testRepo) FindByLicense(ctx context.Context, license string) (Veterinarian, error) {
	if r.skipLicenseIndex {
		return Veterinarian{}, ErrNotFound
	}
	for _, v := range r.byID {
		if v.LicenseNumber == license {
			return v, nil
		}
	}
	return Veterinarian{}, ErrNotFound
}

func (r *testRepo) List(ctx context.Context) ([]Veterinarian, error) {
	out := make([]Veterinarian, 0, len(r.byID))
	for _, v := range r.byID {
		out = append(out, v)
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id int64) error {
	delete(r.byID, id)
	return nil
}

func TestService_Create_OK(t *testing.T) {
	svc := NewService(newTestRepo(), zerolog.Nop())

	v, err := svc.Create(context.Background(), CreateInput{
		Name:          "Dr. Lee",
		Phone:         "222",
		LicenseNumber: "CRMV-1",
		Specialty:     "surgery",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), v.ID)
	assert.Equal(t, "CRMV-1", v.LicenseNumber)
	assert.Equal(t, "surgery", v.Specialty)
}

func TestService_Create_MissingFields(t *testing.T) {
	svc := NewService(newTestRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), CreateInput{Name: "Dr. Lee"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	details := apperr.Details(err)
	assert.Contains(t, details, "phone is required")
	assert.Contains(t, details, "license_number is required")
}

func TestService_Create_DuplicateLicense(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, zerolog.Nop())

	_, err := svc.Create(context.Background(), CreateInput{Name: "Dr. Lee", Phone: "222", LicenseNumber: "CRMV-1"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{Name: "Dr. Kim", Phone: "333", LicenseNumber: " CRMV-1 "})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateLicense))
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	assert.Len(t, repo.byID, 1)
}

func TestService_Create_DuplicateLicense_DetectedByStore(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, zerolog.Nop())

	_, err := svc.Create(context.Background(), CreateInput{Name: "Dr. Lee", Phone: "222", LicenseNumber: "CRMV-1"})
	require.NoError(t, err)

	repo.skipLicenseIndex = true
	_, err = svc.Create(context.Background(), CreateInput{Name: "Dr. Kim", Phone: "333", LicenseNumber: "CRMV-1"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateLicense))
	assert.Equal(t, "CRMV-1", apperr.Details(err))
}
