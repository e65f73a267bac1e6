// AngelaMos | 2026
// signature.go

package webhook

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // GitHub's X-Hub-Signature is HMAC-SHA1
	"encoding/hex"
)

const (
	SignatureHeader = "X-Hub-Signature"
	DeliveryHeader  = "X-GitHub-Delivery"

	signaturePrefix = "sha1="
)

// Sign returns the X-Hub-Signature value for payload.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(payload)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares in constant time. An empty secret never
// verifies.
func VerifySignature(payload []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected := Sign(payload, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
