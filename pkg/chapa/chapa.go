package chapa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/KALU56/E-Self/pkg/httpclient"
)

const (
	InitializeEndpoint = "/v1/transaction/initialize"
	VerifyEndpoint     = "/v1/transaction/verify/"
)

// Gateway talks to Chapa. HTTP success only means the request was accepted;
// the verify payload's status field is the sole source of truth for the
// payment outcome.
type Gateway interface {
	Initialize(ctx context.Context, request InitializeRequest) (InitializeResponse, error)
	Verify(ctx context.Context, txRef string) (VerifyResponse, error)
}

type gateway struct {
	client httpclient.HTTPClient
	config Config
}

func NewGateway(cfg Config, client httpclient.HTTPClient) Gateway {
	return &gateway{config: cfg, client: client}
}

func (g *gateway) Initialize(ctx context.Context, request InitializeRequest) (InitializeResponse, error) {
	payload := initializePayload{
		Amount:      formatAmount(request.Amount),
		Currency:    request.Currency,
		Email:       request.Email,
		FirstName:   request.FirstName,
		LastName:    request.LastName,
		TxRef:       request.TxRef,
		CallbackURL: request.CallbackURL,
		ReturnURL:   request.ReturnURL,
		Custom:      customization{Title: request.Title, Description: request.Description},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return InitializeResponse{}, fmt.Errorf("encoding error: %w", err)
	}

	resp, err := g.client.Post(ctx, g.config.BaseURL+InitializeEndpoint, &buf, g.headers())
	if err != nil {
		// network failures and context.DeadlineExceeded both mean the
		// gateway could not answer in time
		return InitializeResponse{}, ErrUnavailable
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return InitializeResponse{}, MapStatusToError(resp.StatusCode)
	}

	var envelope initializeEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return InitializeResponse{}, fmt.Errorf("decoding error: %w", err)
	}

	return InitializeResponse{CheckoutURL: envelope.Data.CheckoutURL}, nil
}

func (g *gateway) Verify(ctx context.Context, txRef string) (VerifyResponse, error) {
	resp, err := g.client.Get(ctx, g.config.BaseURL+VerifyEndpoint+txRef, g.headers())
	if err != nil {
		return VerifyResponse{}, ErrUnavailable
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return VerifyResponse{}, MapStatusToError(resp.StatusCode)
	}

	var envelope verifyEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return VerifyResponse{}, fmt.Errorf("decoding error: %w", err)
	}

	status := envelope.Data.Status
	switch status {
	case TransactionSuccess, TransactionFailed:
	default:
		status = TransactionPending
	}

	return VerifyResponse{Status: status, ReceiptURL: envelope.Data.ReceiptURL}, nil
}

func (g *gateway) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + g.config.SecretKey,
		"Content-Type":  "application/json",
	}
}

// formatAmount renders minor units as the decimal string Chapa expects.
func formatAmount(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}
