package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	payload := PaymentSignaturePayload("order_123", "pay_456")
	assert.Equal(t, []byte("order_123|pay_456"), payload)

	sig := GenerateSignature(payload, "secret")
	assert.Len(t, sig, 64)
	assert.True(t, VerifySignature(payload, sig, "secret"))
	assert.False(t, VerifySignature(payload, sig, "other"))
	assert.False(t, VerifySignature(PaymentSignaturePayload("order_123", "pay_457"), sig, "secret"))
}

func TestGenerateIdempotencyKey(t *testing.T) {
	a, err := GenerateIdempotencyKey()
	assert.NoError(t, err)
	b, err := GenerateIdempotencyKey()
	assert.NoError(t, err)

	assert.Regexp(t, `^ord_[0-9a-f]{32}$`, a)
	assert.NotEqual(t, a, b)
}
