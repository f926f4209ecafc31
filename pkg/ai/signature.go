package ai

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SignatureHeader carries the payload signature of voice agent webhooks
const SignatureHeader = "X-Voice-Signature"

// SignHMAC returns the hex sha256 HMAC of payload
func SignHMAC(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHMAC verifies a sha256 HMAC hex signature against payload and secret.
// An optional "sha256=" prefix on the signature is accepted.
func VerifyHMAC(secret string, payload []byte, signatureHex string) bool {
	signatureHex = strings.TrimPrefix(strings.TrimSpace(signatureHex), "sha256=")
	if secret == "" || signatureHex == "" {
		return false
	}
	expected := SignHMAC(secret, payload)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signatureHex)))
}
