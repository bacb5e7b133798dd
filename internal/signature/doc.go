// Package signature verifies the authenticity of inbound Slack requests.
//
// Slack signs every request it sends to an app with an HMAC-SHA256 of the
// request timestamp and raw body, keyed by the app's signing secret:
//
//	base  = "v0:" + timestamp + ":" + body
//	value = "v0=" + hex(HMAC-SHA256(secret, base))
//
// The signature arrives in the x-slack-signature header and the timestamp in
// x-slack-request-timestamp. Verification recomputes the expected value and
// compares it in constant time, and rejects requests whose timestamp is more
// than five minutes away from the verifier's clock to block replays.
//
// # Usage
//
//	verifier, err := signature.NewVerifier(cfg.SigningSecret)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	body, _ := signature.PreserveRequestBody(r)
//	if err := verifier.VerifyRequest(r, body); err != nil {
//	    http.Error(w, "invalid signature", http.StatusUnauthorized)
//	    return
//	}
//
// Malformed input (non-numeric timestamp, truncated signature) is treated as
// an invalid request, never as an internal error.
package signature
