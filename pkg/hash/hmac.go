package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"github.com/pkg/errors"
)

// ComputeHmac256 computes HMAC-SHA256 of message and encodes it with URL-safe base64
func ComputeHmac256(message, secret string) (string, error) {
	h := hmac.New(sha256.New, []byte(secret))
	if _, err := h.Write([]byte(message)); err != nil {
		return "", errors.Wrap(err, "hmac.Write")
	}

	return base64.RawURLEncoding.EncodeToString(h.Sum(nil)), nil
}

// VerifyHmac256 reports whether hash is the HMAC-SHA256 of message, in constant time.
func VerifyHmac256(message, hash, secret string) (bool, error) {
	expected, err := ComputeHmac256(message, secret)
	if err != nil {
		return false, err
	}

	return hmac.Equal([]byte(expected), []byte(hash)), nil
}
