// file: internals/features/accounting/xero/service/client.go
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

/* =========================
   Remote entity payloads
   ========================= */

type Contact struct {
	ContactID    string `json:"ContactID,omitempty"`
	Name         string `json:"Name,omitempty"`
	EmailAddress string `json:"EmailAddress,omitempty"`
}

type Employee struct {
	EmployeeID             string `json:"EmployeeID,omitempty"`
	FirstName              string `json:"FirstName,omitempty"`
	LastName               string `json:"LastName,omitempty"`
	Email                  string `json:"Email,omitempty"`
	OrdinaryEarningsRateID string `json:"OrdinaryEarningsRateID,omitempty"`
}

type InvoiceLineItem struct {
	Description string  `json:"Description"`
	Quantity    float64 `json:"Quantity"`
	UnitAmount  float64 `json:"UnitAmount"`
}

type Invoice struct {
	Type      string            `json:"Type"`
	Contact   Contact           `json:"Contact"`
	Date      string            `json:"Date"`
	DueDate   string            `json:"DueDate"`
	Reference string            `json:"Reference,omitempty"`
	Status    string            `json:"Status,omitempty"`
	LineItems []InvoiceLineItem `json:"LineItems"`
}

type TimesheetLine struct {
	EarningsRateID string    `json:"EarningsRateID"`
	NumberOfUnits  []float64 `json:"NumberOfUnits"`
}

type Timesheet struct {
	EmployeeID     string          `json:"EmployeeID"`
	StartDate      string          `json:"StartDate"`
	EndDate        string          `json:"EndDate"`
	Status         string          `json:"Status,omitempty"`
	TimesheetLines []TimesheetLine `json:"TimesheetLines"`
}

// RemoteError carries the raw body of a non-success response; the export
// reconciler records it verbatim as the per-line error.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("xero responded %d: %s", e.StatusCode, e.Body)
}

/* =========================
   Client
   ========================= */

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) doJSON(ctx context.Context, method, path, token, tenantID string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Xero-Tenant-Id", tenantID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}

// ListContacts fetches the contact directory (first page only).
func (c *Client) ListContacts(ctx context.Context, token, tenantID string) ([]Contact, error) {
	var payload struct {
		Contacts []Contact `json:"Contacts"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api.xro/2.0/Contacts", token, tenantID, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Contacts, nil
}

// ListEmployees fetches the payroll employee directory (first page only).
func (c *Client) ListEmployees(ctx context.Context, token, tenantID string) ([]Employee, error) {
	var payload struct {
		Employees []Employee `json:"Employees"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/payroll.xro/1.0/Employees", token, tenantID, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Employees, nil
}

// CreateInvoice submits one accounts-receivable invoice and returns the
// remote invoice id.
func (c *Client) CreateInvoice(ctx context.Context, token, tenantID string, inv Invoice) (string, error) {
	var payload struct {
		Invoices []struct {
			InvoiceID string `json:"InvoiceID"`
		} `json:"Invoices"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api.xro/2.0/Invoices", token, tenantID, inv, &payload); err != nil {
		return "", err
	}
	if len(payload.Invoices) == 0 {
		return "", fmt.Errorf("xero returned no invoice in response")
	}
	return payload.Invoices[0].InvoiceID, nil
}

// CreateTimesheet submits one payroll timesheet and returns the remote id.
func (c *Client) CreateTimesheet(ctx context.Context, token, tenantID string, ts Timesheet) (string, error) {
	var payload struct {
		Timesheets []struct {
			TimesheetID string `json:"TimesheetID"`
		} `json:"Timesheets"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/payroll.xro/1.0/Timesheets", token, tenantID, ts, &payload); err != nil {
		return "", err
	}
	if len(payload.Timesheets) == 0 {
		return "", fmt.Errorf("xero returned no timesheet in response")
	}
	return payload.Timesheets[0].TimesheetID, nil
}
