package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/config"
	"github.com/LilGuiGui/awesome-catering/internal/domain"
	"github.com/LilGuiGui/awesome-catering/internal/dto"
	apperrors "github.com/LilGuiGui/awesome-catering/internal/errors"
)

// Gateway field limit for item ids, names and the customer name.
const maxFieldLen = 50

// Client talks to the payment gateway's Snap transaction-creation endpoint
// and its read-only status endpoint. Creation is never retried here: a
// duplicate remote transaction is worse than a visible failure.
type Client struct {
	serverKey    string
	snapURL      string
	statusURL    string
	createClient *http.Client
	statusClient *http.Client
	logger       *zap.Logger
}

func NewClient(cfg config.PaymentConfig, logger *zap.Logger) *Client {
	return &Client{
		serverKey:    cfg.ServerKey,
		snapURL:      cfg.SnapURL,
		statusURL:    cfg.StatusURL,
		createClient: &http.Client{Timeout: cfg.CreateTimeout},
		statusClient: &http.Client{Timeout: cfg.StatusTimeout},
		logger:       logger,
	}
}

type transactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type customerDetails struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type itemDetail struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}

type callbacks struct {
	Finish string `json:"finish"`
}

type snapRequest struct {
	TransactionDetails transactionDetails `json:"transaction_details"`
	CustomerDetails    customerDetails    `json:"customer_details"`
	ItemDetails        []itemDetail       `json:"item_details"`
	Callbacks          callbacks          `json:"callbacks"`
}

type snapResponse struct {
	Token string `json:"token"`
}

type snapErrorResponse struct {
	ErrorMessages []string `json:"error_messages"`
}

// CreateTransaction validates the tagged cart lines and customer block,
// builds the gateway payload and posts it. Validation failures happen before
// any network call and leave no side effect.
func (c *Client) CreateTransaction(ctx context.Context, lines []domain.TaggedLine, customer domain.Customer, baseURL string) (*dto.GatewayTransaction, error) {
	if len(lines) == 0 {
		return nil, apperrors.NewValidationError("cart is empty")
	}

	var total int64
	items := make([]itemDetail, 0, len(lines))
	for _, line := range lines {
		if line.UnitPrice <= 0 || line.Quantity <= 0 {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("invalid price or quantity for %s", line.Name),
				apperrors.ValidationDetail{Field: "items", Message: "price and quantity must be positive integers"},
			)
		}
		total += line.LineTotal
		items = append(items, itemDetail{
			ID:       truncate(line.ItemID, maxFieldLen),
			Price:    line.UnitPrice,
			Quantity: line.Quantity,
			Name:     truncate(line.Name, maxFieldLen),
		})
	}
	if total <= 0 {
		return nil, apperrors.NewValidationError("cart total must be greater than 0")
	}

	name := truncate(strings.TrimSpace(customer.Name), maxFieldLen)
	if name == "" {
		return nil, apperrors.NewValidationError("customer name is required")
	}
	phone, err := NormalizePhone(customer.Phone)
	if err != nil {
		return nil, err
	}
	email := truncate(strings.TrimSpace(customer.Email), maxFieldLen)
	if !strings.Contains(email, "@") {
		email = "customer@example.com"
	}

	if c.serverKey == "" {
		return nil, apperrors.NewInternalError("payment gateway server key not configured", nil)
	}

	orderID := newOrderID()
	payload := snapRequest{
		TransactionDetails: transactionDetails{
			OrderID:     orderID,
			GrossAmount: total,
		},
		CustomerDetails: customerDetails{
			FirstName: name,
			Email:     email,
			Phone:     phone,
		},
		ItemDetails: items,
		Callbacks: callbacks{
			Finish: fmt.Sprintf("%s/order-success/%s", baseURL, orderID),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewInternalError("encoding gateway payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.snapURL, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError("building gateway request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.serverKey, "")

	c.logger.Info("creating gateway transaction",
		zap.String("orderId", orderID),
		zap.Int64("grossAmount", total),
		zap.Int("itemCount", len(items)),
	)

	resp, err := c.createClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err, "payment service timeout - please try again")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, c.upstreamError(resp)
	}

	var result snapResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || result.Token == "" {
		c.logger.Error("unparsable gateway success response", zap.String("orderId", orderID), zap.Error(err))
		return nil, apperrors.NewUpstreamMalformedError("invalid response from payment service")
	}

	return &dto.GatewayTransaction{Token: result.Token, OrderID: orderID}, nil
}

// VerifyStatus is a read-only, advisory status probe. The gateway vocabulary
// collapses to a paid/unpaid boolean; it is never authoritative over the
// durable order record.
func (c *Client) VerifyStatus(ctx context.Context, orderID string) (bool, error) {
	url := fmt.Sprintf("%s/%s/status", c.statusURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, apperrors.NewInternalError("building status request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.serverKey, "")

	resp, err := c.statusClient.Do(req)
	if err != nil {
		return false, classifyTransportError(err, "payment status check timed out")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}

	var result struct {
		TransactionStatus string `json:"transaction_status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Warn("unparsable status response", zap.String("orderId", orderID), zap.Error(err))
		return false, nil
	}

	switch result.TransactionStatus {
	case "settlement", "capture", "pending":
		return true, nil
	}
	return false, nil
}

// NormalizePhone strips non-digit characters and prefixes a leading 0 when
// absent. A number with no digits at all is a validation failure.
func NormalizePhone(phone string) (string, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(phone) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return "", apperrors.NewValidationError("invalid phone number format", apperrors.ValidationDetail{
			Field:   "phone",
			Message: "phone must contain at least one digit",
		})
	}
	if !strings.HasPrefix(digits, "0") {
		digits = "0" + digits
	}
	return digits, nil
}

// newOrderID combines a time prefix with uuid-derived randomness. The store
// never verifies uniqueness before use; the suffix carries the collision
// resistance.
func newOrderID() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("ORDER-%d-%s", time.Now().Unix(), suffix)
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

func classifyTransportError(err error, timeoutMsg string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewUpstreamTimeoutError(timeoutMsg)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.NewUpstreamTimeoutError(timeoutMsg)
	}
	return apperrors.NewUpstreamUnavailableError("cannot connect to payment service", err)
}

func (c *Client) upstreamError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	message := string(body)
	var parsed snapErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.ErrorMessages) > 0 {
		message = strings.Join(parsed.ErrorMessages, ", ")
	}

	c.logger.Warn("gateway rejected transaction",
		zap.Int("status", resp.StatusCode),
		zap.String("message", message),
	)
	return apperrors.NewUpstreamError(resp.StatusCode, message)
}
