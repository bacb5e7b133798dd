// Package oauth implements the Slack OAuth v2 install flow: building the
// authorize redirect URL, issuing and redeeming anti-CSRF state tokens, and
// exchanging callback codes for tokens.
//
// An install attempt moves through:
//
//	REQUESTED -> REDIRECTED -> CALLBACK_RECEIVED -> TOKEN_EXCHANGED | REJECTED
//
// The gateway issues a state token and answers the install request with a 302
// to the authorize URL. When Slack redirects back, the state must redeem
// against the same StateStore before the code is exchanged; an unknown, stale
// or reused state rejects the attempt.
//
// Three StateStore implementations cover the deployment spectrum:
// MemoryStateStore (single instance), RedisStateStore (shared, one-time-use),
// and SignedStateStore (stateless HS256 tokens, no shared storage).
//
// The Installation produced by the exchange is passed to the application's
// install callback and not persisted here.
package oauth
