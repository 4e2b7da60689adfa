package booking_status_changed

// statusChangedEvent - сообщение топика со сменой статуса брони от
// приложения водителя.
type statusChangedEvent struct {
	BookingID string `json:"booking_id"`
	DriverID  string `json:"driver_id"`
	Status    string `json:"status"`
}
