package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultStripeTolerance bounds how old a webhook timestamp may be before
// the event is rejected as a possible replay.
const DefaultStripeTolerance = 5 * time.Minute

// StripeEvent is the subset of a webhook event the settlement path needs.
type StripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object StripeCheckoutSession `json:"object"`
	} `json:"data"`
}

// StripeCheckoutSession carries the order reference embedded at session
// creation plus the payment intent recorded on the order.
type StripeCheckoutSession struct {
	ID            string            `json:"id"`
	PaymentIntent string            `json:"payment_intent"`
	Metadata      map[string]string `json:"metadata"`
}

// VerifyStripeSignature checks the Stripe-Signature header against the raw
// request body: the header carries a timestamp and one or more v1 HMAC
// signatures over "timestamp.body". Verification must run on the raw bytes,
// never a re-serialized payload. An invalid signature is a hard reject; the
// payload is not to be processed.
func VerifyStripeSignature(payload []byte, sigHeader, secret string, tolerance time.Duration) error {
	if sigHeader == "" {
		return fmt.Errorf("missing signature header")
	}

	var timestamp int64
	var signatures []string
	for _, part := range strings.Split(sigHeader, ",") {
		pair := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(pair) != 2 {
			continue
		}
		switch pair[0] {
		case "t":
			ts, err := strconv.ParseInt(pair[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid signature timestamp")
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, pair[1])
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return fmt.Errorf("malformed signature header")
	}

	if tolerance > 0 {
		age := time.Since(time.Unix(timestamp, 0))
		if age > tolerance || age < -tolerance {
			return fmt.Errorf("signature timestamp outside tolerance")
		}
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return nil
		}
	}
	return fmt.Errorf("no matching signature")
}

// ParseStripeEvent decodes a verified webhook payload.
func ParseStripeEvent(payload []byte) (*StripeEvent, error) {
	var event StripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse event: %v", err)
	}
	return &event, nil
}
