package auth

import (
	"encoding/base64"
	"strconv"
	"time"

	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"
)

// GetTimestampMs returns the current UTC time in milliseconds since the
// Unix epoch, as expected by the orderly-timestamp header.
func GetTimestampMs() uint64 {
	return uint64(time.Now().UnixMilli())
}

// Credentials identifies an Orderly account for signed REST requests.
type Credentials struct {
	AccountID string
	Signer    Signer
}

// SignRequest signs the canonical request string timestamp+method+path+body
// and returns the base64 encoded signature.
func SignRequest(signer Signer, timestamp uint64, method, path, body string) (string, error) {
	if signer == nil {
		return "", ErrSigningUnavailable
	}

	payload := strconv.FormatUint(timestamp, 10) + method + path + body

	sig, err := signer.Sign([]byte(payload))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign request")
	}

	return base64.StdEncoding.EncodeToString(sig), nil
}

// RequestHeaders returns the authentication headers for a signed request.
func (c Credentials) RequestHeaders(timestamp uint64, method, path, body string) (map[string]string, error) {
	signature, err := SignRequest(c.Signer, timestamp, method, path, body)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"orderly-timestamp":  strconv.FormatUint(timestamp, 10),
		"orderly-key":        "ed25519:" + base58.Encode(c.Signer.Public()),
		"orderly-signature":  signature,
		"orderly-account-id": c.AccountID,
	}, nil
}
