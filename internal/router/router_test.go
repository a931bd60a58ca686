package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-api/internal/platform/httpclient"
	"vet-clinic-api/internal/router"
)

func newTestClient(t *testing.T, opts router.Options) (*httpclient.Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(opts))
	t.Cleanup(ts.Close)

	c, err := httpclient.NewWithBaseURL(ts.URL, 5*time.Second)
	require.NoError(t, err)
	return c, ts
}

func requireStatus(t *testing.T, err error, status int) *httpclient.HTTPError {
	t.Helper()
	var he *httpclient.HTTPError
	require.True(t, errors.As(err, &he), "expected HTTPError, got %v", err)
	require.Equal(t, status, he.StatusCode, "body=%s", he.Body)
	return he
}

func TestHTTP_EndToEnd_ClinicScenario(t *testing.T) {
	c, _ := newTestClient(t, router.Options{})
	ctx := context.Background()

	// 1) Cliente
	client, err := c.CreateClient(ctx, httpclient.CreateClientRequest{Name: "Ana", Phone: "111", Email: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), client.ID)
	assert.Equal(t, "Ana", client.Name)
	assert.Equal(t, "111", client.Phone)
	assert.Equal(t, "a@b.com", client.Email)

	// 2) Animal
	animal, err := c.CreateAnimal(ctx, httpclient.CreateAnimalRequest{Name: "Rex", Species: "dog", OwnerID: client.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), animal.ID)

	// 3) Veterinario
	vet, err := c.CreateVeterinarian(ctx, httpclient.CreateVeterinarianRequest{Name: "Dr. Lee", Phone: "222", LicenseNumber: "CRMV-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), vet.ID)

	// 4) Turno
	req := httpclient.ScheduleRequest{DateTime: "2024-06-01T09:00", AnimalID: animal.ID, VeterinarianID: vet.ID, Reason: "checkup"}
	appt, err := c.ScheduleAppointment(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), appt.ID)
	assert.Equal(t, "2024-06-01", appt.Date)
	assert.Equal(t, "09:00", appt.Time)
	assert.Equal(t, "checkup", appt.Reason)

	// 5) Mismo turno otra vez => 409
	_, err = c.ScheduleAppointment(ctx, req)
	he := requireStatus(t, err, http.StatusConflict)
	assert.Equal(t, "this veterinarian already has an appointment at this time", he.Message)

	list, err := c.ListAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Animal)
	require.NotNil(t, list[0].Animal.Owner)
	require.NotNil(t, list[0].Veterinarian)
	assert.Equal(t, "Rex", list[0].Animal.Name)
	assert.Equal(t, "Ana", list[0].Animal.Owner.Name)
	assert.Equal(t, "CRMV-1", list[0].Veterinarian.LicenseNumber)

	// 6) Cancelar y verificar
	require.NoError(t, c.CancelAppointment(ctx, appt.ID))

	list, err = c.ListAppointments(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = c.CancelAppointment(ctx, appt.ID)
	requireStatus(t, err, http.StatusNotFound)
}

func TestHTTP_Appointments_LegacyFormAndOrdering(t *testing.T) {
	c, _ := newTestClient(t, router.Options{})
	ctx := context.Background()

	client, err := c.CreateClient(ctx, httpclient.CreateClientRequest{Name: "Ana", Phone: "111", Email: "a@b.com"})
	require.NoError(t, err)
	animal, err := c.CreateAnimal(ctx, httpclient.CreateAnimalRequest{Name: "Rex", Species: "dog", OwnerID: client.ID})
	require.NoError(t, err)
	vet, err := c.CreateVeterinarian(ctx, httpclient.CreateVeterinarianRequest{Name: "Dr. Lee", Phone: "222", LicenseNumber: "CRMV-1"})
	require.NoError(t, err)

	// forma vieja, ids como string (formularios HTML)
	legacy, err := c.ScheduleAppointment(ctx, map[string]any{
		"date":           "2024-12-20",
		"time":           "16:00",
		"animalId":       "1",
		"veterinarianId": "1",
		"notes":          "vaccine",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-12-20", legacy.Date)
	assert.Equal(t, "16:00", legacy.Time)
	assert.Equal(t, "vaccine", legacy.Reason)

	// con segundos y offset: se toman los dígitos literales
	_, err = c.ScheduleAppointment(ctx, map[string]any{
		"date_time":       "2024-06-01T08:15:00-03:00",
		"animal_id":       animal.ID,
		"veterinarian_id": vet.ID,
	})
	require.NoError(t, err)

	_, err = c.ScheduleAppointment(ctx, httpclient.ScheduleRequest{DateTime: "2024-06-01T07:45", AnimalID: animal.ID, VeterinarianID: vet.ID})
	require.NoError(t, err)

	list, err := c.ListAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	got := make([]string, 0, len(list))
	for _, a := range list {
		got = append(got, a.Date+" "+a.Time)
	}
	assert.Equal(t, []string{"2024-06-01 07:45", "2024-06-01 08:15", "2024-12-20 16:00"}, got)

	one, err := c.GetAppointment(ctx, legacy.ID)
	require.NoError(t, err)
	assert.Equal(t, legacy.ID, one.ID)
	require.NotNil(t, one.Veterinarian)
}

func TestHTTP_Errors(t *testing.T) {
	c, _ := newTestClient(t, router.Options{})
	ctx := context.Background()

	t.Run("client invalid email", func(t *testing.T) {
		_, err := c.CreateClient(ctx, httpclient.CreateClientRequest{Name: "Ana", Phone: "111", Email: "not-an-email"})
		he := requireStatus(t, err, http.StatusBadRequest)
		assert.Contains(t, he.Details, "email must be a valid email")
	})

	t.Run("animal owner not found", func(t *testing.T) {
		_, err := c.CreateAnimal(ctx, httpclient.CreateAnimalRequest{Name: "Rex", Species: "dog", OwnerID: 99})
		he := requireStatus(t, err, http.StatusNotFound)
		assert.Equal(t, "owner not found", he.Message)

		animals, err := c.ListAnimals(ctx)
		require.NoError(t, err)
		assert.Empty(t, animals)
	})

	t.Run("duplicate license", func(t *testing.T) {
		_, err := c.CreateVeterinarian(ctx, httpclient.CreateVeterinarianRequest{Name: "Dr. Lee", Phone: "222", LicenseNumber: "CRMV-9"})
		require.NoError(t, err)

		_, err = c.CreateVeterinarian(ctx, httpclient.CreateVeterinarianRequest{Name: "Dr. Kim", Phone: "333", LicenseNumber: "CRMV-9"})
		he := requireStatus(t, err, http.StatusBadRequest)
		assert.Equal(t, "license_number already registered", he.Message)
	})

	t.Run("appointment missing fields", func(t *testing.T) {
		_, err := c.ScheduleAppointment(ctx, map[string]any{"reason": "x"})
		he := requireStatus(t, err, http.StatusBadRequest)
		assert.Equal(t, "date_time (or date and time), animal_id and veterinarian_id are required", he.Message)
		assert.Contains(t, he.Details, "animal_id")
	})

	t.Run("appointment unknown animal", func(t *testing.T) {
		_, err := c.ScheduleAppointment(ctx, httpclient.ScheduleRequest{DateTime: "2024-06-01T09:00", AnimalID: 42, VeterinarianID: 1})
		he := requireStatus(t, err, http.StatusNotFound)
		assert.Equal(t, "animal not found", he.Message)
	})

	t.Run("invalid id in path", func(t *testing.T) {
		err := c.DoJSON(ctx, http.MethodDelete, "/appointments/abc", nil, nil, nil)
		requireStatus(t, err, http.StatusBadRequest)
	})
}

func TestHTTP_MalformedBody(t *testing.T) {
	_, ts := newTestClient(t, router.Options{})

	resp, err := http.Post(ts.URL+"/clients", "application/json", strings.NewReader(`{"name":`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "invalid json")
}

func TestHTTP_TrailingDataRejected(t *testing.T) {
	c, ts := newTestClient(t, router.Options{})
	ctx := context.Background()

	client, err := c.CreateClient(ctx, httpclient.CreateClientRequest{Name: "Ana", Phone: "111", Email: "a@b.com"})
	require.NoError(t, err)
	_, err = c.CreateAnimal(ctx, httpclient.CreateAnimalRequest{Name: "Rex", Species: "dog", OwnerID: client.ID})
	require.NoError(t, err)
	_, err = c.CreateVeterinarian(ctx, httpclient.CreateVeterinarianRequest{Name: "Dr. Lee", Phone: "222", LicenseNumber: "CRMV-1"})
	require.NoError(t, err)

	body := `{"date_time":"2024-06-04T10:00","animal_id":1,"veterinarian_id":1}{"x":1}`
	resp, err := http.Post(ts.URL+"/appointments", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	list, err := c.ListAppointments(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestHTTP_AnimalCreateEmbedsOwner(t *testing.T) {
	c, _ := newTestClient(t, router.Options{})
	ctx := context.Background()

	client, err := c.CreateClient(ctx, httpclient.CreateClientRequest{Name: "Ana", Phone: "111", Email: "a@b.com"})
	require.NoError(t, err)

	animal, err := c.CreateAnimal(ctx, httpclient.CreateAnimalRequest{Name: "Rex", Species: "dog", OwnerID: client.ID})
	require.NoError(t, err)
	require.NotNil(t, animal.Owner)
	assert.Equal(t, "Ana", animal.Owner.Name)

	err = c.DoJSON(ctx, http.MethodPost, "/animals", nil, map[string]any{"name": "Tom", "species": "cat", "owner_id": "x1"}, nil)
	he := requireStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, he.Details, "owner_id")
}

func TestHTTP_Health(t *testing.T) {
	_, ts := newTestClient(t, router.Options{
		ReadinessChecks: map[string]router.Check{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		},
	})

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/health/ready")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body struct {
		Status       string `json:"status"`
		Dependencies map[string]struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		} `json:"dependencies"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "ok", body.Dependencies["postgres"].Status)
	assert.Equal(t, "unhealthy", body.Dependencies["redis"].Status)
	assert.Equal(t, "connection refused", body.Dependencies["redis"].Error)
}

func TestHTTP_Metrics(t *testing.T) {
	_, ts := newTestClient(t, router.Options{})

	resp, err := http.Get(ts.URL + "/clients")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "clinic_http_requests_total")
}
