package create_reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/domain"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/integrations/venueservice"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/ptr"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/timeslot"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/types"
)

// --- Фейки ---

type fakeVenueClient struct {
	venue *venueservice.Venue
	err   error
}

func (c *fakeVenueClient) GetVenue(_ context.Context, venueID int64) (*venueservice.Venue, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.venue == nil || c.venue.ID != venueID {
		return nil, venueservice.ErrVenueNotFound
	}
	return c.venue, nil
}

// fakeRepo хранит брони в памяти и повторяет фильтрацию активных броней
type fakeRepo struct {
	mu           sync.Mutex
	reservations []*domain.Reservation
	nextID       int64
	createErr    error
}

func (r *fakeRepo) GetByVenueWithFilter(_ context.Context, filter domain.VenueReservationsFilter) ([]*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

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

func (r *fakeRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return nil, r.createErr
	}

	r.nextID++
	res.ID = r.nextID
	res.CreatedAt = time.Now()
	res.UpdatedAt = time.Now()
	r.reservations = append(r.reservations, res)
	return res, nil
}

// fakeTxManager сериализует функции мьютексом: чтение занятости и вставка
// выполняются атомарно, как в настоящей сериализуемой транзакции
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
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

func nightVenue() *venueservice.Venue {
	return &venueservice.Venue{
		ID:          11,
		Name:        "After Dark",
		OwnerID:     78,
		OpeningTime: "20:00",
		ClosingTime: "03:00",
		Pools: []venueservice.ResourcePool{
			{ResourceType: "pc", Capacity: 3, HourlyRate: 150},
		},
	}
}

func newTestUseCase(repo *fakeRepo, venue *venueservice.Venue) *UseCase {
	uc := NewUseCase(repo, &fakeVenueClient{venue: venue}, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest() *Request {
	return &Request{
		UserID:       1,
		VenueID:      10,
		ResourceType: domain.ResourcePC,
		UnitIndex:    2,
		Date:         time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:    types.TimeString("14:00"),
		EndTime:      types.TimeString("16:00"),
	}
}

// --- Тесты ---

func TestExecute_Success(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo, testVenue())

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "unpaid", resp.PaymentStatus)
	assert.Equal(t, 120, resp.DurationMinutes)
	assert.Equal(t, 120.0, resp.HourlyRate)
	assert.Equal(t, 240.0, resp.TotalCost) // 120 руб/час * 2 часа
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(req *Request)
		expected error
	}{
		{name: "zero user", mutate: func(r *Request) { r.UserID = 0 }, expected: ErrInvalidInput},
		{name: "zero venue", mutate: func(r *Request) { r.VenueID = 0 }, expected: ErrInvalidInput},
		{name: "unknown resource type", mutate: func(r *Request) { r.ResourceType = "arcade" }, expected: ErrInvalidInput},
		{name: "console without model", mutate: func(r *Request) { r.ResourceType = domain.ResourceConsole }, expected: ErrInvalidInput},
		{name: "zero unit index", mutate: func(r *Request) { r.UnitIndex = 0 }, expected: ErrInvalidInput},
		{name: "bad start time", mutate: func(r *Request) { r.StartTime = "25:00" }, expected: ErrInvalidInput},
		{name: "bad end time", mutate: func(r *Request) { r.EndTime = "12:61" }, expected: ErrInvalidInput},
		{name: "past date", mutate: func(r *Request) { r.Date = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC) }, expected: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeRepo{}, testVenue())
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestExecute_VenueNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, testVenue())

	req := validRequest()
	req.VenueID = 999

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestExecute_ResourceNotOffered(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, testVenue())

	req := validRequest()
	req.ResourceType = domain.ResourceConsole
	req.ConsoleModel = ptr.Ptr("Xbox Series X") // заведение предлагает только PS5
	req.UnitIndex = 1

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrResourceNotOffered)
}

func TestExecute_UnitIndexOutOfRange(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, testVenue())

	req := validRequest()
	req.UnitIndex = 6 // ёмкость пула ПК - 5

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrUnitIndexOutOfRange)
}

func TestExecute_OutsideOperatingHours(t *testing.T) {
	tests := []struct {
		name      string
		startTime string
		endTime   string
	}{
		{name: "before opening", startTime: "08:00", endTime: "10:00"},
		{name: "after closing", startTime: "21:00", endTime: "23:00"},
		{name: "entirely outside", startTime: "23:00", endTime: "23:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeRepo{}, testVenue())

			req := validRequest()
			req.StartTime = types.TimeString(tt.startTime)
			req.EndTime = types.TimeString(tt.endTime)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrOutsideOperatingHours)
		})
	}
}

func TestExecute_CrossMidnightVenue(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo, nightVenue())

	// 23:00 - 01:00 через полночь: принимается, длительность 120 минут
	req := validRequest()
	req.VenueID = 11
	req.UnitIndex = 1
	req.StartTime = types.TimeString("23:00")
	req.EndTime = types.TimeString("01:00")

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 120, resp.DurationMinutes)

	// 00:30 - 01:30 после полуночи: тоже внутри окна 20:00-03:00
	req2 := validRequest()
	req2.VenueID = 11
	req2.UnitIndex = 2
	req2.StartTime = types.TimeString("00:30")
	req2.EndTime = types.TimeString("01:30")

	resp2, err := uc.Execute(context.Background(), req2)

	require.NoError(t, err)
	assert.Equal(t, 60, resp2.DurationMinutes)

	// 03:30 - 04:30 после закрытия: отклоняется
	req3 := validRequest()
	req3.VenueID = 11
	req3.UnitIndex = 3
	req3.StartTime = types.TimeString("03:30")
	req3.EndTime = types.TimeString("04:30")

	_, err = uc.Execute(context.Background(), req3)

	assert.ErrorIs(t, err, ErrOutsideOperatingHours)
}

// Две брони целиком после полуночи хранятся с численно малыми минутами,
// но при окне через полночь живут на сдвинутой шкале и конфликтуют
func TestExecute_AfterMidnightConflict(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo, nightVenue())

	// Юнит 1 занят на 00:30-01:30
	req := validRequest()
	req.VenueID = 11
	req.UnitIndex = 1
	req.StartTime = types.TimeString("00:30")
	req.EndTime = types.TimeString("01:30")

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Пересекающийся запрос 00:45-01:15 того же юнита: конфликт
	req2 := validRequest()
	req2.UserID = 2
	req2.VenueID = 11
	req2.UnitIndex = 1
	req2.StartTime = types.TimeString("00:45")
	req2.EndTime = types.TimeString("01:15")

	_, err = uc.Execute(context.Background(), req2)

	require.ErrorIs(t, err, ErrUnitNotAvailable)

	var conflict *SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, conflict.UnitIndex)
	assert.Equal(t, []int{2, 3}, conflict.FreeUnits)

	// Вечерняя бронь 23:00-01:00 на юните 2 тоже пересекает 00:30-01:30
	req3 := validRequest()
	req3.UserID = 3
	req3.VenueID = 11
	req3.UnitIndex = 2
	req3.StartTime = types.TimeString("23:00")
	req3.EndTime = types.TimeString("01:00")

	_, err = uc.Execute(context.Background(), req3)
	require.NoError(t, err)

	req4 := validRequest()
	req4.UserID = 4
	req4.VenueID = 11
	req4.UnitIndex = 2
	req4.StartTime = types.TimeString("00:30")
	req4.EndTime = types.TimeString("01:30")

	_, err = uc.Execute(context.Background(), req4)

	assert.ErrorIs(t, err, ErrUnitNotAvailable)
}

func TestExecute_SlotConflict(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo, testVenue())

	// Первая бронь юнита 2 на 14:00-16:00 проходит
	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Пересекающийся запрос того же юнита: конфликт со списком свободных
	req := validRequest()
	req.UserID = 2
	req.StartTime = types.TimeString("15:00")
	req.EndTime = types.TimeString("17:00")

	_, err = uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrUnitNotAvailable)

	var conflict *SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 2, conflict.UnitIndex)
	assert.Equal(t, []int{1, 3, 4, 5}, conflict.FreeUnits)
}

func TestExecute_AdjacentReservationsDoNotConflict(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo, testVenue())

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Бронь впритык с 16:00 на том же юните: границы соприкасаются,
	// пересечения нет
	req := validRequest()
	req.UserID = 2
	req.StartTime = types.TimeString("16:00")
	req.EndTime = types.TimeString("18:00")

	_, err = uc.Execute(context.Background(), req)

	assert.NoError(t, err)
}

func TestExecute_CancelledReservationFreesUnit(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo, testVenue())

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Отменяем бронь напрямую в хранилище
	repo.mu.Lock()
	repo.reservations[0].Status = domain.StatusCancelled
	repo.mu.Unlock()

	// Тот же юнит на то же время снова свободен
	req := validRequest()
	req.UserID = 2

	_, err = uc.Execute(context.Background(), req)

	assert.NoError(t, err)
}

// Два конкурентных запроса на один юнит и пересекающееся время:
// ровно один выигрывает, второй получает конфликт со списком свободных
func TestExecute_ConcurrentRequests_OneWinner(t *testing.T) {
	for i := 0; i < 100; i++ {
		repo := &fakeRepo{}
		uc := newTestUseCase(repo, testVenue())

		var wg sync.WaitGroup
		errs := make([]error, 2)

		for j := 0; j < 2; j++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				req := validRequest()
				req.UserID = int64(idx + 1)
				_, errs[idx] = uc.Execute(context.Background(), req)
			}(j)
		}
		wg.Wait()

		winners := 0
		for _, err := range errs {
			if err == nil {
				winners++
			} else {
				assert.ErrorIs(t, err, ErrUnitNotAvailable)
			}
		}

		require.Equal(t, 1, winners, "iteration %d: exactly one request must win", i)
		assert.Len(t, repo.reservations, 1)
	}
}

func TestExecute_DurationLimits(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, testVenue())

	// Короче минимума в 30 минут
	req := validRequest()
	req.StartTime = types.TimeString("14:00")
	req.EndTime = types.TimeString("14:15")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// Интервал запроса и окна нормализуются одним правилом +1440
func TestExecute_NormalizedScaleConsistency(t *testing.T) {
	window := timeslot.NewWindow("22:00", "02:00")
	start, end := window.Align(timeslot.ToMinutes("23:00"), timeslot.ToMinutes("01:00"))

	assert.Equal(t, 1380, start)
	assert.Equal(t, 1500, end)
	assert.True(t, window.Contains(start, end))
}
