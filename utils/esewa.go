package utils

import (
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const defaultEsewaVerifyURL = "https://uat.esewa.com.np/epay/transrec"

// EsewaClient performs server-to-server transaction verification against
// eSewa's transrec endpoint. The HTTP timeout bounds every call; a timeout
// is reported as a retriable verification failure and never mutates state.
type EsewaClient struct {
	VerifyURL    string
	MerchantCode string
	HTTP         *http.Client
}

// NewEsewaClient builds a client from the environment.
func NewEsewaClient() *EsewaClient {
	verifyURL := os.Getenv("ESEWA_VERIFY_URL")
	if verifyURL == "" {
		verifyURL = defaultEsewaVerifyURL
	}
	return &EsewaClient{
		VerifyURL:    verifyURL,
		MerchantCode: os.Getenv("ESEWA_MERCHANT_CODE"),
		HTTP:         &http.Client{Timeout: 15 * time.Second},
	}
}

// VerifyTransaction asks eSewa whether the referenced payment succeeded.
// eSewa answers with an XML fragment; the only accepted success marker is
// <response_code>Success</response_code>. Anything else fails closed.
func (c *EsewaClient) VerifyTransaction(orderRef, amount, refID string) error {
	params := url.Values{
		"amt": {amount},
		"rid": {refID},
		"pid": {orderRef},
		"scd": {c.MerchantCode},
	}

	resp, err := c.HTTP.PostForm(c.VerifyURL, params)
	if err != nil {
		return &VerificationError{Provider: "esewa", Reason: "provider unreachable", Retriable: true, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return &VerificationError{Provider: "esewa", Reason: "failed to read response", Retriable: true, Err: err}
	}

	if !strings.Contains(string(body), "<response_code>Success</response_code>") {
		return &VerificationError{Provider: "esewa", Reason: "payment not verified", Retriable: false}
	}
	return nil
}
