// Package httpstore is the REST client for a remote Billed document store.
// The wire contract is JSON for records, multipart/form-data for the receipt
// upload, and Bearer authentication with the session token. Failures carry
// "Erreur <code>" messages, which containers surface verbatim.
package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/billed-app/billed/internal/metrics"
	"github.com/billed-app/billed/internal/models"
	"github.com/billed-app/billed/internal/session"
	"github.com/billed-app/billed/internal/store"
)

// Client implements store.Store against a Billed REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *session.Manager
}

var _ store.Store = (*Client)(nil)

// New creates a client for the API at baseURL. The session manager supplies
// the Bearer token; requests before login go out unauthenticated and the
// server answers 401.
func New(baseURL string, sessions *session.Manager) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		sessions:   sessions,
	}
}

// Bills returns the bills collection client.
func (c *Client) Bills() store.BillsClient {
	return &billsAPI{client: c}
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}

	var result struct {
		JWT string `json:"jwt"`
	}
	err = c.do(ctx, http.MethodPost, "/auth/login", "application/json", bytes.NewReader(payload), &result)
	metrics.ObserveStoreRequest("login", err)
	if err != nil {
		return "", err
	}
	return result.JWT, nil
}

// do issues one request and decodes the JSON response into out (which may be
// nil). Non-2xx statuses map to "Erreur <code>" errors.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token, ok := c.sessions.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("Erreur %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type billsAPI struct {
	client *Client
}

func (b *billsAPI) List(ctx context.Context) ([]models.Bill, error) {
	var bills []models.Bill
	err := b.client.do(ctx, http.MethodGet, "/bills", "", nil, &bills)
	metrics.ObserveStoreRequest("list", err)
	if err != nil {
		return nil, err
	}
	return bills, nil
}

func (b *billsAPI) UploadReceipt(ctx context.Context, receipt store.Receipt) (store.Upload, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("email", receipt.Email); err != nil {
		return store.Upload{}, err
	}
	part, err := form.CreateFormFile("file", receipt.FileName)
	if err != nil {
		return store.Upload{}, err
	}
	if _, err := part.Write(receipt.Content); err != nil {
		return store.Upload{}, err
	}
	if err := form.Close(); err != nil {
		return store.Upload{}, err
	}

	var upload store.Upload
	err = b.client.do(ctx, http.MethodPost, "/bills", form.FormDataContentType(), &body, &upload)
	metrics.ObserveStoreRequest("upload_receipt", err)
	if err != nil {
		return store.Upload{}, err
	}
	return upload, nil
}

func (b *billsAPI) FinalizeBill(ctx context.Context, bill models.Bill) (models.Bill, error) {
	payload, err := json.Marshal(bill)
	if err != nil {
		return models.Bill{}, err
	}

	var stored models.Bill
	err = b.client.do(ctx, http.MethodPatch, "/bills/"+bill.ID, "application/json", bytes.NewReader(payload), &stored)
	metrics.ObserveStoreRequest("finalize_bill", err)
	if err != nil {
		return models.Bill{}, err
	}
	return stored, nil
}
