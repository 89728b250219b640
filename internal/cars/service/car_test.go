package service

import (
	"context"
	"io"
	"testing"
	"time"

	bookingsrepo "dealership/internal/bookings/repository"
	carsrepo "dealership/internal/cars/repository"
	"dealership/internal/cars/validator"
	dealersrepo "dealership/internal/dealers/repository"
	"dealership/pkg/config"
	apperrors "dealership/pkg/errors"
	"dealership/pkg/logger"
	"dealership/pkg/model"
	"dealership/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service      CarService
	dealerStore  *store.Store[*model.Dealer]
	bookingStore *store.Store[*model.Booking]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{
		Log: logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard}),
	}

	dealerStore := store.New[*model.Dealer]()
	bookingStore := store.New[*model.Booking]()

	service := NewCarService(
		carsrepo.NewMemoryCarRepository(store.New[*model.Car]()),
		dealersrepo.NewMemoryDealerRepository(dealerStore),
		bookingsrepo.NewMemoryBookingRepository(bookingStore),
		validator.NewCarValidator(cfg.Log),
		cfg,
	)

	return &fixture{
		service:      service,
		dealerStore:  dealerStore,
		bookingStore: bookingStore,
	}
}

func (f *fixture) addDealer(t *testing.T) *model.Dealer {
	t.Helper()
	dealer, err := f.dealerStore.Create(&model.Dealer{Name: "Oscar Mobility Main"})
	require.NoError(t, err)
	return dealer
}

func sampleCar(dealerID int, vin string) *model.Car {
	return &model.Car{
		Brand:      "Toyota",
		Model:      "Camry",
		Year:       2023,
		Color:      "Blue",
		DailyPrice: 35.0,
		VIN:        vin,
		Status:     model.StatusAvailable,
		DealerID:   dealerID,
	}
}

const (
	vinOne = "1HGBH41JXMN109186"
	vinTwo = "2HGBH41JXMN109187"
)

func TestCreate_Success(t *testing.T) {
	f := newFixture(t)
	dealer := f.addDealer(t)

	created, err := f.service.Create(context.Background(), sampleCar(dealer.ID, vinOne))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, model.StatusAvailable, created.Status)
}

func TestCreate_DefaultsToAvailable(t *testing.T) {
	f := newFixture(t)
	dealer := f.addDealer(t)

	car := sampleCar(dealer.ID, vinOne)
	car.Status = ""

	created, err := f.service.Create(context.Background(), car)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, created.Status)
}

func TestCreate_DealerMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), sampleCar(42, vinOne))
	requireCode(t, err, apperrors.CodeNotFound)
}

func TestCreate_DuplicateVIN(t *testing.T) {
	f := newFixture(t)
	dealer := f.addDealer(t)

	_, err := f.service.Create(context.Background(), sampleCar(dealer.ID, vinOne))
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), sampleCar(dealer.ID, vinOne))
	requireCode(t, err, apperrors.CodeConflict)
}

func TestCreate_RejectsFutureYear(t *testing.T) {
	f := newFixture(t)
	dealer := f.addDealer(t)

	car := sampleCar(dealer.ID, vinOne)
	car.Year = time.Now().Year() + 2

	_, err := f.service.Create(context.Background(), car)
	requireCode(t, err, apperrors.CodeValidation)
}

func TestCreate_RejectsShortVIN(t *testing.T) {
	f := newFixture(t)
	dealer := f.addDealer(t)

	_, err := f.service.Create(context.Background(), sampleCar(dealer.ID, "TOOSHORT"))
	requireCode(t, err, apperrors.CodeValidation)
}

func TestUpdate_EmptyPayloadIsIdempotent(t *testing.T) {
	f := newFixture(t)
	dealer := f.addDealer(t)

	created, err := f.service.Create(context.Background(), sampleCar(dealer.ID, vinOne))
	require.NoError(t, err)
	before := *created

	updated, err := f.service.Update(context.Background(), created.ID, &model.CarUpdate{})
	require.NoError(t, err)
	assert.Equal(t, before, *updated)
}

func TestUpdate_OnlySuppliedFieldsChange(t *testing.T) {
	f := newFixture(t)
	dealer := f.addDealer(t)

	created, err := f.service.Create(context.Background(), sampleCar(dealer.ID, vinOne))
	require.NoError(t, err)

	color := "Red"
	updated, err := f.service.Update(context.Background(), created.ID, &model.CarUpdate{Color: &color})
	require.NoError(t, err)

	assert.Equal(t, "Red", updated.Color)
	assert.Equal(t, created.Brand, updated.Brand)
	assert.Equal(t, created.VIN, updated.VIN)
	assert.Equal(t, created.DailyPrice, updated.DailyPrice)
}

func TestUpdate_VINCollision(t *testing.T) {
	f := newFixture(t)
	dealer := f.addDealer(t)

	_, err := f.service.Create(context.Background(), sampleCar(dealer.ID, vinOne))
	require.NoError(t, err)
	second, err := f.service.Create(context.Background(), sampleCar(dealer.ID, vinTwo))
	require.NoError(t, err)

	taken := vinOne
	_, err = f.service.Update(context.Background(), second.ID, &model.CarUpdate{VIN: &taken})
	requireCode(t, err, apperrors.CodeConflict)
}

func TestUpdate_SameVINIsNotACollision(t *testing.T) {
	f := newFixture(t)
	dealer := f.addDealer(t)

	created, err := f.service.Create(context.Background(), sampleCar(dealer.ID, vinOne))
	require.NoError(t, err)

	same := vinOne
	_, err = f.service.Update(context.Background(), created.ID, &model.CarUpdate{VIN: &same})
	assert.NoError(t, err)
}

func TestUpdate_NewDealerMustExist(t *testing.T) {
	f := newFixture(t)
	dealer := f.addDealer(t)

	created, err := f.service.Create(context.Background(), sampleCar(dealer.ID, vinOne))
	require.NoError(t, err)

	ghost := 42
	_, err = f.service.Update(context.Background(), created.ID, &model.CarUpdate{DealerID: &ghost})
	requireCode(t, err, apperrors.CodeNotFound)
}

func TestUpdate_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Update(context.Background(), 99, &model.CarUpdate{})
	requireCode(t, err, apperrors.CodeNotFound)
}

func TestDelete_Success(t *testing.T) {
	f := newFixture(t)
	dealer := f.addDealer(t)

	created, err := f.service.Create(context.Background(), sampleCar(dealer.ID, vinOne))
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(context.Background(), created.ID))
	_, err = f.service.GetByID(context.Background(), created.ID)
	requireCode(t, err, apperrors.CodeNotFound)
}

func TestDelete_BlockedByBookings(t *testing.T) {
	f := newFixture(t)
	dealer := f.addDealer(t)

	created, err := f.service.Create(context.Background(), sampleCar(dealer.ID, vinOne))
	require.NoError(t, err)

	// A past booking blocks deletion just like a future one.
	_, err = f.bookingStore.Create(&model.Booking{
		CarID:         created.ID,
		CustomerName:  "John Doe",
		CustomerEmail: "john.doe@example.com",
		StartDatetime: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDatetime:   time.Date(2020, time.January, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	err = f.service.Delete(context.Background(), created.ID)
	requireCode(t, err, apperrors.CodeConflict)

	// Both the car and its bookings survive the refusal.
	car, err := f.service.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.VIN, car.VIN)
	assert.Equal(t, 1, f.bookingStore.Len())
}

func TestDelete_NotFound(t *testing.T) {
	f := newFixture(t)

	err := f.service.Delete(context.Background(), 99)
	requireCode(t, err, apperrors.CodeNotFound)
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	require.Equal(t, code, appErr.Code, "unexpected error: %v", err)
}
