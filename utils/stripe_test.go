package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayload(payload []byte, secret string, ts int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyStripeSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	secret := "whsec_test"

	header := signPayload(payload, secret, time.Now().Unix())
	assert.NoError(t, VerifyStripeSignature(payload, header, secret, DefaultStripeTolerance))
}

func TestVerifyStripeSignatureWrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	header := signPayload(payload, "whsec_other", time.Now().Unix())

	assert.Error(t, VerifyStripeSignature(payload, header, "whsec_test", DefaultStripeTolerance))
}

func TestVerifyStripeSignatureTamperedBody(t *testing.T) {
	payload := []byte(`{"amount":100}`)
	secret := "whsec_test"
	header := signPayload(payload, secret, time.Now().Unix())

	tampered := []byte(`{"amount":99999}`)
	assert.Error(t, VerifyStripeSignature(tampered, header, secret, DefaultStripeTolerance))
}

func TestVerifyStripeSignatureStaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	secret := "whsec_test"
	header := signPayload(payload, secret, time.Now().Add(-time.Hour).Unix())

	assert.Error(t, VerifyStripeSignature(payload, header, secret, DefaultStripeTolerance))
}

func TestVerifyStripeSignatureMalformedHeader(t *testing.T) {
	payload := []byte(`{}`)
	secret := "whsec_test"

	assert.Error(t, VerifyStripeSignature(payload, "", secret, DefaultStripeTolerance))
	assert.Error(t, VerifyStripeSignature(payload, "garbage", secret, DefaultStripeTolerance))
	assert.Error(t, VerifyStripeSignature(payload, "t=abc,v1=deadbeef", secret, DefaultStripeTolerance))
}

func TestParseStripeEvent(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test", "payment_intent": "pi_test", "metadata": {"order_id": "12"}}}
	}`)

	event, err := ParseStripeEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, "checkout.session.completed", event.Type)
	assert.Equal(t, "cs_test", event.Data.Object.ID)
	assert.Equal(t, "pi_test", event.Data.Object.PaymentIntent)
	assert.Equal(t, "12", event.Data.Object.Metadata["order_id"])

	_, err = ParseStripeEvent([]byte("not json"))
	assert.Error(t, err)
}
