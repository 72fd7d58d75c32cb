package dto

// GatewayTransaction is the normalized success result of a gateway
// transaction-creation call.
type GatewayTransaction struct {
	Token   string
	OrderID string
}

type CheckoutRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

type CheckoutResponse struct {
	Success   bool   `json:"success"`
	SnapToken string `json:"snap_token"`
	OrderID   string `json:"order_id"`
}

type PaymentSuccessRequest struct {
	OrderID       string `json:"order_id"`
	TransactionID string `json:"transaction_id"`
}

type VerifyPaymentResponse struct {
	Success     bool   `json:"success"`
	Paid        bool   `json:"paid"`
	InDatabase  bool   `json:"in_database"`
	OrderStatus string `json:"order_status,omitempty"`
}
