package signature

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strconv"
	"time"

	"slack-gateway/internal/common/errors"
)

const (
	// SignatureHeader carries the request signature computed by Slack
	SignatureHeader = "x-slack-signature"
	// TimestampHeader carries the Unix timestamp the request was signed at
	TimestampHeader = "x-slack-request-timestamp"

	// signaturePrefix is the signing scheme version marker
	signaturePrefix = "v0="

	// DefaultTolerance is the maximum allowed clock skew between the
	// request timestamp and verification time (replay window)
	DefaultTolerance = 5 * time.Minute
)

// Verifier validates the authenticity of inbound Slack requests using the
// app's signing secret. It is stateless and safe for concurrent use.
type Verifier struct {
	secret    []byte
	tolerance time.Duration

	// now is injectable for replay-window tests
	now func() time.Time
}

// NewVerifier creates a verifier for the given signing secret.
// An empty secret is a configuration error, not a per-request condition.
func NewVerifier(signingSecret string) (*Verifier, error) {
	if signingSecret == "" {
		return nil, errors.ConfigError("signing secret is required")
	}

	return &Verifier{
		secret:    []byte(signingSecret),
		tolerance: DefaultTolerance,
		now:       time.Now,
	}, nil
}

// GenerateSignature computes the expected signature for a timestamp and raw
// body: "v0=" + hex(HMAC-SHA256(secret, "v0:<timestamp>:<body>")).
func (v *Verifier) GenerateSignature(timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte("v0:" + timestamp + ":"))
	mac.Write(body)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// IsValid reports whether the provided signature matches the request body and
// timestamp. Malformed input never errors, it simply yields false:
//   - a non-integer timestamp is invalid
//   - a timestamp outside the replay window is invalid
//   - signatures are compared in constant time
func (v *Verifier) IsValid(timestamp string, body []byte, providedSignature string) bool {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}

	// Compare in whole seconds: converting the skew to a Duration wraps
	// for timestamps hundreds of years out, turning them valid again.
	// A negative skew after negation means the arithmetic wrapped, which
	// only happens far outside the window.
	skew := v.now().Unix() - ts
	if skew < 0 {
		skew = -skew
	}
	if skew < 0 || skew > int64(v.tolerance/time.Second) {
		return false
	}

	expected := v.GenerateSignature(timestamp, body)
	return hmac.Equal([]byte(expected), []byte(providedSignature))
}

// VerifyRequest validates the signature headers of an inbound HTTP request
// against the already-read raw body. Returns a typed authentication error for
// the handler layer to translate into a 401.
func (v *Verifier) VerifyRequest(r *http.Request, body []byte) error {
	timestamp := r.Header.Get(TimestampHeader)
	if timestamp == "" {
		return errors.AuthError("missing request timestamp header").
			WithContext("header", TimestampHeader)
	}

	provided := r.Header.Get(SignatureHeader)
	if provided == "" {
		return errors.AuthError("missing request signature header").
			WithContext("header", SignatureHeader)
	}

	if !v.IsValid(timestamp, body, provided) {
		return errors.AuthError("invalid request signature")
	}

	return nil
}

// PreserveRequestBody reads and preserves the request body so it can be used
// both for signature verification and downstream parsing
func PreserveRequestBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}
