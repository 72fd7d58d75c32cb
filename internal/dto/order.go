package dto

type TrackOrderRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type SaveOrderRequest struct {
	OrderID string `json:"order_id"`
}

type UpdateOrderStatusRequest struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
