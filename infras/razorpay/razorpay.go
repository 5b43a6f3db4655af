package razorpay

//go:generate go run go.uber.org/mock/mockgen -source=./razorpay.go -destination=./mocks/razorpay_mock.go -package=mocks

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"hallbook/config"
	"hallbook/infras/otel"
	"hallbook/shared/constant"
)

const (
	defaultTimeoutSeconds = 30

	otelAttrOrderID = "order_id"
	otelAttrAmount  = "amount"
)

var (
	ErrSignatureMismatch = errors.New("payment signature mismatch")
)

// Order is a payment order created on the gateway. Amount is in the
// smallest currency unit (paise for INR).
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, receipt string) (order Order, err error)
	VerifySignature(orderID, paymentID, signature string) error
	KeyID() string
}

type gatewayImpl struct {
	config *config.Config
	client *http.Client
	otel   otel.Otel
}

func New(config *config.Config, ot otel.Otel) Gateway {
	return &gatewayImpl{
		config: config,
		client: &http.Client{Timeout: defaultTimeoutSeconds * time.Second},
		otel:   ot,
	}
}

func (g *gatewayImpl) KeyID() string {
	return g.config.External.Razorpay.KeyID
}

// CreateOrder registers a payment order on the gateway and returns its identifier.
func (g *gatewayImpl) CreateOrder(ctx context.Context, amount int64, receipt string) (order Order, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".CreateOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrAmount, fmt.Sprintf("%d", amount))

	payload := map[string]any{
		"amount":   amount,
		"currency": g.config.External.Razorpay.Currency,
		"receipt":  receipt,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return order, fmt.Errorf("failed to marshal order payload: %w", err)
	}

	url := g.config.External.Razorpay.BaseURL + "/orders"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return order, fmt.Errorf("failed to build order request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	req.SetBasicAuth(g.config.External.Razorpay.KeyID, g.config.External.Razorpay.KeySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("Failed to reach payment gateway")

		return order, fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
		log.Error().Int("status", resp.StatusCode).Msg("Payment gateway rejected order creation")

		return order, err
	}

	if err = json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return order, fmt.Errorf("failed to decode order response: %w", err)
	}

	scope.SetAttribute(otelAttrOrderID, order.ID)
	log.Info().Str("order_id", order.ID).Int64("amount", amount).Msg("Payment order created")

	return order, nil
}

// VerifySignature checks the HMAC-SHA256 signature the gateway sends back after
// checkout. The signature is computed over "<orderID>|<paymentID>" with the key
// secret and compared in constant time.
func (g *gatewayImpl) VerifySignature(orderID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, []byte(g.config.External.Razorpay.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))

	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}

	return nil
}
