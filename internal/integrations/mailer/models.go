package mailer

// ReminderEmail payload вебхука почтовой автоматизации
// Сервис автоматизации сам собирает письмо из этих полей
type ReminderEmail struct {
	BookingID        int64  `json:"bookingId"`
	ReminderType     string `json:"reminderType"` // balance или deposit
	ClientName       string `json:"clientName"`
	ClientEmail      string `json:"clientEmail"`
	VehicleModel     string `json:"vehicleModel"`
	VehiclePlate     string `json:"vehiclePlate"`
	DeliveryDatetime string `json:"deliveryDatetime"` // ISO 8601
	BalanceDue       string `json:"balanceDue,omitempty"`
	DepositAmount    string `json:"depositAmount,omitempty"`
}

// ErrorResponse модель ошибки от сервиса автоматизации
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
