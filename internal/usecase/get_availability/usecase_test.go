package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/domain"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/integrations/venueservice"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/ptr"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/types"
)

// --- Фейки ---

type fakeVenueClient struct {
	venue *venueservice.Venue
}

func (c *fakeVenueClient) GetVenue(_ context.Context, venueID int64) (*venueservice.Venue, error) {
	if c.venue == nil || c.venue.ID != venueID {
		return nil, venueservice.ErrVenueNotFound
	}
	return c.venue, nil
}

type fakeRepo struct {
	reservations []*domain.Reservation
}

func (r *fakeRepo) GetByVenueWithFilter(_ context.Context, filter domain.VenueReservationsFilter) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, res := range r.reservations {
		if res.VenueID != filter.VenueID {
			continue
		}
		if filter.ResourceType != nil && res.ResourceType != *filter.ResourceType {
			continue
		}
		if !filter.IncludeInactive && !res.OccupiesSlot() {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Хелперы ---

func testVenue() *venueservice.Venue {
	return &venueservice.Venue{
		ID:          10,
		Name:        "Neon Arena",
		OwnerID:     77,
		OpeningTime: "09:00",
		ClosingTime: "22:00",
		Pools: []venueservice.ResourcePool{
			{ResourceType: "pc", Capacity: 5, HourlyRate: 120},
			{ResourceType: "console", ConsoleModel: ptr.Ptr("PS5"), Capacity: 2, HourlyRate: 200},
		},
	}
}

func reservation(unit int, start, end string, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		VenueID:      10,
		ResourceType: domain.ResourcePC,
		UnitIndex:    unit,
		StartTime:    types.TimeString(start),
		EndTime:      types.TimeString(end),
		Status:       status,
	}
}

func validRequest() *Request {
	return &Request{
		VenueID:      10,
		ResourceType: domain.ResourcePC,
		Date:         time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:    types.TimeString("14:00"),
		EndTime:      types.TimeString("16:00"),
	}
}

// --- Тесты ---

func TestExecute_AllUnitsFree(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, &fakeVenueClient{venue: testVenue()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, resp.FreeUnits)
	assert.Equal(t, 5, resp.Capacity)
	assert.Equal(t, 1, resp.FirstFree)
}

func TestExecute_TakenUnitExcluded(t *testing.T) {
	repo := &fakeRepo{reservations: []*domain.Reservation{
		reservation(2, "14:00", "17:00", domain.StatusConfirmed),
		reservation(4, "15:00", "16:00", domain.StatusPending),
	}}
	uc := NewUseCase(repo, &fakeVenueClient{venue: testVenue()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, resp.FreeUnits)
	assert.Equal(t, 1, resp.FirstFree)
}

func TestExecute_AllUnitsTaken(t *testing.T) {
	repo := &fakeRepo{reservations: []*domain.Reservation{
		reservation(1, "14:00", "17:00", domain.StatusConfirmed),
		reservation(2, "14:00", "17:00", domain.StatusConfirmed),
	}}

	venue := testVenue()
	venue.Pools[0].Capacity = 2

	uc := NewUseCase(repo, &fakeVenueClient{venue: venue}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Empty(t, resp.FreeUnits)
	assert.Equal(t, 0, resp.FirstFree)
}

func TestExecute_InactiveReservationsIgnored(t *testing.T) {
	repo := &fakeRepo{reservations: []*domain.Reservation{
		reservation(1, "14:00", "17:00", domain.StatusCancelled),
		reservation(2, "14:00", "17:00", domain.StatusCompleted),
	}}
	uc := NewUseCase(repo, &fakeVenueClient{venue: testVenue()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, resp.FreeUnits)
}

// Бронь целиком после полуночи видна занятой для пересекающегося
// послеполуночного запроса в заведении с окном через полночь
func TestExecute_AfterMidnightReservationShownTaken(t *testing.T) {
	venue := testVenue()
	venue.ID = 11
	venue.OpeningTime = "20:00"
	venue.ClosingTime = "03:00"
	venue.Pools = []venueservice.ResourcePool{
		{ResourceType: "pc", Capacity: 3, HourlyRate: 150},
	}

	taken := reservation(1, "00:30", "01:30", domain.StatusConfirmed)
	taken.VenueID = 11

	repo := &fakeRepo{reservations: []*domain.Reservation{taken}}
	uc := NewUseCase(repo, &fakeVenueClient{venue: venue}, nopLogger{})

	req := validRequest()
	req.VenueID = 11
	req.StartTime = types.TimeString("00:45")
	req.EndTime = types.TimeString("01:15")

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, resp.FreeUnits)
	assert.Equal(t, 2, resp.FirstFree)
}

func TestExecute_VenueNotFound(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, &fakeVenueClient{venue: testVenue()}, nopLogger{})

	req := validRequest()
	req.VenueID = 999

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestExecute_ResourceNotOffered(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, &fakeVenueClient{venue: testVenue()}, nopLogger{})

	req := validRequest()
	req.ResourceType = domain.ResourceConsole
	req.ConsoleModel = ptr.Ptr("Xbox Series X")

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrResourceNotOffered)
}

func TestExecute_OutsideOperatingHours(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, &fakeVenueClient{venue: testVenue()}, nopLogger{})

	req := validRequest()
	req.StartTime = types.TimeString("21:00")
	req.EndTime = types.TimeString("23:00")

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrOutsideOperatingHours)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{name: "zero venue", mutate: func(r *Request) { r.VenueID = 0 }},
		{name: "unknown resource type", mutate: func(r *Request) { r.ResourceType = "arcade" }},
		{name: "console without model", mutate: func(r *Request) { r.ResourceType = domain.ResourceConsole }},
		{name: "bad start time", mutate: func(r *Request) { r.StartTime = "25:00" }},
		{name: "missing end time", mutate: func(r *Request) { r.EndTime = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(&fakeRepo{}, &fakeVenueClient{venue: testVenue()}, nopLogger{})
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// Ответ доступности - рекомендация: бронь, созданная между запросом
// доступности и созданием, делает список устаревшим
func TestExecute_StaleAfterNewReservation(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewUseCase(repo, &fakeVenueClient{venue: testVenue()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Contains(t, resp.FreeUnits, 3)

	// Кто-то бронирует юнит 3 на пересекающееся время
	repo.reservations = append(repo.reservations,
		reservation(3, "15:00", "17:00", domain.StatusPending))

	resp, err = uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotContains(t, resp.FreeUnits, 3)
}
