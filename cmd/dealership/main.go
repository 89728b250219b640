package main

import (
	"context"

	bookingshandler "dealership/internal/bookings/handler"
	bookingsrepo "dealership/internal/bookings/repository"
	bookingsservice "dealership/internal/bookings/service"
	bookingsvalidator "dealership/internal/bookings/validator"
	carshandler "dealership/internal/cars/handler"
	carsrepo "dealership/internal/cars/repository"
	carsservice "dealership/internal/cars/service"
	carsvalidator "dealership/internal/cars/validator"
	dealershandler "dealership/internal/dealers/handler"
	dealersrepo "dealership/internal/dealers/repository"
	dealersservice "dealership/internal/dealers/service"
	"dealership/pkg/app"
	"dealership/pkg/config"
	"dealership/pkg/model"
	"dealership/pkg/store"
)

const ServiceName = "dealership"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting dealership service")

	// The stores are the only holders of state. Owned here and handed to the
	// repositories; nothing else reaches them directly.
	carStore := store.New[*model.Car]()
	bookingStore := store.New[*model.Booking]()
	dealerStore := store.New[*model.Dealer]()

	carRepo := carsrepo.NewMemoryCarRepository(carStore)
	bookingRepo := bookingsrepo.NewMemoryBookingRepository(bookingStore)
	dealerRepo := dealersrepo.NewMemoryDealerRepository(dealerStore)

	dealerService := dealersservice.NewDealerService(dealerRepo, cfg)
	carService := carsservice.NewCarService(
		carRepo,
		dealerRepo,
		bookingRepo,
		carsvalidator.NewCarValidator(cfg.Log),
		cfg,
	)
	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		carRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		cfg,
	)

	if err := dealerService.EnsureSeeded(context.Background()); err != nil {
		cfg.Log.Fatal("Failed to seed initial dealer", "error", err)
	}

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		carshandler.NewCarHandler(carService, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
		dealershandler.NewDealerHandler(dealerService, cfg.Log),
	)
	serverApp.Run()
}
