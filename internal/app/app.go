package app

import (
	"moveit/internal/handlers/kafka-consumer/booking_status_changed"
	"moveit/internal/handlers/rest/booking_get"
	"moveit/internal/handlers/rest/booking_post"
	"moveit/internal/handlers/rest/booking_status_put"
	"moveit/internal/handlers/rest/bookings_get"
	"moveit/internal/handlers/rest/driver_get"
	"moveit/internal/handlers/rest/driver_post"
	"moveit/internal/handlers/rest/driver_put"
	"moveit/internal/handlers/rest/drivers_get"
	"moveit/internal/handlers/rest/slots_get"
	"moveit/internal/handlers/rest/slots_stream_get"
	"moveit/pkg/background"
)

type Application struct {
	ServiceDriver       ServiceDriver
	ServiceBooking      ServiceBooking
	ServiceAvailability ServiceAvailability
	BackgroundWorkers   *background.Worker
}

type ServiceDriver interface {
	drivers_get.Service
	driver_get.Service
	driver_post.Service
	driver_put.Service
}

type ServiceBooking interface {
	booking_post.Service
	bookings_get.Service
	booking_get.Service
	booking_status_put.Service
}

type ServiceAvailability interface {
	slots_get.Service
	slots_stream_get.Service
}

type StatusWorkerApp struct {
	BookingService booking_status_changed.Service
}
