package bkash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"brave-registration/pkg/apperror"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StatusSuccess is the gateway statusCode for an accepted operation.
const StatusSuccess = "0000"

const (
	checkoutModeURL = "0011"
	intentSale      = "sale"
	maxBodyBytes    = 1 << 20
)

type Config struct {
	GrantTokenURL     string
	CreatePaymentURL  string
	ExecutePaymentURL string
	AppKey            string
	AppSecret         string
	Username          string
	Password          string
	Timeout           time.Duration
}

type AccessToken struct {
	IDToken      string `json:"id_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

type grantTokenResponse struct {
	AccessToken
	StatusCode    string `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
}

type CreatePaymentRequest struct {
	Amount        decimal.Decimal
	Currency      string
	CallbackURL   string
	InvoiceNumber string
}

type createPaymentBody struct {
	Mode                  string `json:"mode"`
	PayerReference        string `json:"payerReference"`
	CallbackURL           string `json:"callbackURL"`
	Amount                string `json:"amount"`
	Currency              string `json:"currency"`
	Intent                string `json:"intent"`
	MerchantInvoiceNumber string `json:"merchantInvoiceNumber"`
}

type CreatePaymentResponse struct {
	StatusCode            string `json:"statusCode"`
	StatusMessage         string `json:"statusMessage"`
	PaymentID             string `json:"paymentID"`
	BkashURL              string `json:"bkashURL"`
	Amount                string `json:"amount"`
	Currency              string `json:"currency"`
	MerchantInvoiceNumber string `json:"merchantInvoiceNumber"`
	TransactionStatus     string `json:"transactionStatus"`
}

type ExecutePaymentResponse struct {
	StatusCode            string `json:"statusCode"`
	StatusMessage         string `json:"statusMessage"`
	PaymentID             string `json:"paymentID"`
	TrxID                 string `json:"trxID"`
	TransactionStatus     string `json:"transactionStatus"`
	Amount                string `json:"amount"`
	Currency              string `json:"currency"`
	CustomerMsisdn        string `json:"customerMsisdn"`
	MerchantInvoiceNumber string `json:"merchantInvoiceNumber"`
	PaymentExecuteTime    string `json:"paymentExecuteTime"`
}

// Succeeded reports whether the gateway confirmed the payment.
func (r *ExecutePaymentResponse) Succeeded() bool {
	return r.StatusCode == StatusSuccess
}

// Client talks to the tokenized checkout API. It never retries; every call
// is bounded by Config.Timeout.
type Client struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log.With(zap.String("client", "bkash")),
	}
}

// GrantToken exchanges the merchant credentials for a short-lived id_token.
func (c *Client) GrantToken(ctx context.Context) (*AccessToken, error) {
	body := map[string]string{
		"app_key":    c.cfg.AppKey,
		"app_secret": c.cfg.AppSecret,
	}
	headers := map[string]string{
		"username": c.cfg.Username,
		"password": c.cfg.Password,
	}

	var resp grantTokenResponse
	if err := c.post(ctx, c.cfg.GrantTokenURL, headers, body, &resp); err != nil {
		return nil, apperror.NewGatewayAuthError("grant token", err)
	}

	if resp.IDToken == "" {
		c.log.Warn("Grant token returned no id_token",
			zap.String("status_code", resp.StatusCode),
			zap.String("status_message", resp.StatusMessage),
		)
		return nil, apperror.NewGatewayAuthError(
			fmt.Sprintf("grant token rejected: %s %s", resp.StatusCode, resp.StatusMessage), nil)
	}

	return &resp.AccessToken, nil
}

// CreatePayment opens a payment session; the caller redirects the payer to BkashURL.
func (c *Client) CreatePayment(ctx context.Context, token string, req CreatePaymentRequest) (*CreatePaymentResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.NewGatewayRequestError(fmt.Sprintf("invalid amount %s", req.Amount), nil)
	}

	body := createPaymentBody{
		Mode:                  checkoutModeURL,
		PayerReference:        " ",
		CallbackURL:           req.CallbackURL,
		Amount:                req.Amount.String(),
		Currency:              req.Currency,
		Intent:                intentSale,
		MerchantInvoiceNumber: req.InvoiceNumber,
	}

	var resp CreatePaymentResponse
	if err := c.post(ctx, c.cfg.CreatePaymentURL, c.authHeaders(token), body, &resp); err != nil {
		return nil, apperror.NewGatewayRequestError("create payment", err)
	}

	if resp.StatusCode != StatusSuccess || resp.PaymentID == "" || resp.BkashURL == "" {
		return nil, apperror.NewGatewayRequestError(
			fmt.Sprintf("create payment rejected: %s %s", resp.StatusCode, resp.StatusMessage), nil)
	}

	return &resp, nil
}

// ExecutePayment confirms a payment after the payer approved it. A non-success
// StatusCode is returned as a normal response, not as an error.
func (c *Client) ExecutePayment(ctx context.Context, token, paymentID string) (*ExecutePaymentResponse, error) {
	body := map[string]string{"paymentID": paymentID}

	var resp ExecutePaymentResponse
	if err := c.post(ctx, c.cfg.ExecutePaymentURL, c.authHeaders(token), body, &resp); err != nil {
		return nil, apperror.NewGatewayRequestError("execute payment "+paymentID, err)
	}

	return &resp, nil
}

func (c *Client) authHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": token,
		"X-App-Key":     c.cfg.AppKey,
	}
}

func (c *Client) post(ctx context.Context, url string, headers map[string]string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.log.Error("Gateway call failed",
			zap.Error(err),
			zap.String("url", url),
			zap.Duration("duration", time.Since(start)),
		)
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("Gateway call",
		zap.String("url", url),
		zap.Int("status", res.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d: %s", res.StatusCode, string(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
