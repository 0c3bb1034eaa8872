package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

const defaultKhaltiAPIBase = "https://a.khalti.com/api/v2"

// KhaltiClient talks to Khalti's ePayment API: initiate builds the hosted
// payment redirect, lookup is the server-to-server confirmation. Amounts on
// the wire are in paisa.
type KhaltiClient struct {
	APIBase    string
	SecretKey  string
	ReturnURL  string
	WebsiteURL string
	HTTP       *http.Client
}

// NewKhaltiClient builds a client from the environment.
func NewKhaltiClient() *KhaltiClient {
	apiBase := os.Getenv("KHALTI_API_BASE")
	if apiBase == "" {
		apiBase = defaultKhaltiAPIBase
	}
	return &KhaltiClient{
		APIBase:    apiBase,
		SecretKey:  os.Getenv("KHALTI_SECRET_KEY"),
		ReturnURL:  os.Getenv("KHALTI_RETURN_URL"),
		WebsiteURL: os.Getenv("KHALTI_WEBSITE_URL"),
		HTTP:       &http.Client{Timeout: 15 * time.Second},
	}
}

// KhaltiInitiateRequest is the payload for creating a hosted payment.
type KhaltiInitiateRequest struct {
	ReturnURL         string             `json:"return_url"`
	WebsiteURL        string             `json:"website_url"`
	Amount            int64              `json:"amount"` // paisa
	PurchaseOrderID   string             `json:"purchase_order_id"`
	PurchaseOrderName string             `json:"purchase_order_name"`
	CustomerInfo      KhaltiCustomerInfo `json:"customer_info"`
}

type KhaltiCustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// KhaltiInitiateResponse carries the redirect URL and the pidx used later
// for lookup.
type KhaltiInitiateResponse struct {
	Pidx       string `json:"pidx"`
	PaymentURL string `json:"payment_url"`
}

// KhaltiLookupResponse is the provider's view of a payment. Status
// "Completed" is the only success marker.
type KhaltiLookupResponse struct {
	Pidx            string `json:"pidx"`
	Status          string `json:"status"`
	TotalAmount     int64  `json:"total_amount"`
	TransactionID   string `json:"transaction_id"`
	PurchaseOrderID string `json:"purchase_order_id"`
}

func (c *KhaltiClient) post(path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.APIBase+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Key "+c.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &VerificationError{Provider: "khalti", Reason: "provider unreachable", Retriable: true, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return &VerificationError{
			Provider:  "khalti",
			Reason:    fmt.Sprintf("provider returned %s", resp.Status),
			Retriable: resp.StatusCode >= 500,
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &VerificationError{Provider: "khalti", Reason: "failed to decode response", Retriable: true, Err: err}
	}
	return nil
}

// Initiate creates a hosted payment and returns the redirect URL. The
// return URL embeds the order id so the client lands back on the right
// order after paying.
func (c *KhaltiClient) Initiate(orderID uint, amount float64, customerName, customerPhone string) (*KhaltiInitiateResponse, error) {
	payload := KhaltiInitiateRequest{
		ReturnURL:         fmt.Sprintf("%s?orderId=%d", c.ReturnURL, orderID),
		WebsiteURL:        c.WebsiteURL,
		Amount:            int64(amount * 100),
		PurchaseOrderID:   fmt.Sprintf("%d", orderID),
		PurchaseOrderName: fmt.Sprintf("Order %d", orderID),
		CustomerInfo: KhaltiCustomerInfo{
			Name:  customerName,
			Phone: customerPhone,
		},
	}

	var out KhaltiInitiateResponse
	if err := c.post("/epayment/initiate/", payload, &out); err != nil {
		return nil, err
	}
	if out.PaymentURL == "" {
		return nil, &VerificationError{Provider: "khalti", Reason: "empty payment url", Retriable: false}
	}
	return &out, nil
}

// Lookup fetches the payment state for a pidx. Callers must treat any
// status other than "Completed" as not paid.
func (c *KhaltiClient) Lookup(pidx string) (*KhaltiLookupResponse, error) {
	var out KhaltiLookupResponse
	if err := c.post("/epayment/lookup/", map[string]string{"pidx": pidx}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
