// Package erp implements the ERPClient port against the Epicor Kinetic BAQ
// REST endpoints the portal mirrors from.
package erp

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/softtronics/msw-portal/internal/core/domain"
)

const defaultTimeout = 30 * time.Second

// Config captures the upstream API location and its basic-auth credentials.
type Config struct {
	BaseURL         string
	Username        string
	Password        string
	InventoryPath   string
	TransactionPath string
	Timeout         time.Duration
}

// Client fetches BAQ report rows. Responses arrive wrapped in a {"value":[...]}
// envelope.
type Client struct {
	http            *resty.Client
	inventoryPath   string
	transactionPath string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetBasicAuth(cfg.Username, cfg.Password).
		SetTimeout(timeout)

	return &Client{
		http:            httpClient,
		inventoryPath:   cfg.InventoryPath,
		transactionPath: cfg.TransactionPath,
	}
}

func (c *Client) FetchInventory(ctx context.Context) ([]domain.InventoryRow, error) {
	var envelope struct {
		Value []domain.InventoryRow `json:"value"`
	}
	if err := c.fetch(ctx, c.inventoryPath, &envelope); err != nil {
		return nil, err
	}
	return envelope.Value, nil
}

func (c *Client) FetchTransactions(ctx context.Context) ([]domain.TransactionRow, error) {
	var envelope struct {
		Value []domain.TransactionRow `json:"value"`
	}
	if err := c.fetch(ctx, c.transactionPath, &envelope); err != nil {
		return nil, err
	}
	return envelope.Value, nil
}

func (c *Client) fetch(ctx context.Context, path string, out interface{}) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(out).
		Get(path)
	if err != nil {
		return fmt.Errorf("erp request %s: %w", path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("erp request %s: upstream responded %s", path, resp.Status())
	}
	return nil
}
