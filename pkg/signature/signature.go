// Package signature creates and verifies timestamped HMAC-SHA256 proofs used by
// unattended callers (the serverless function) to authenticate against the backend.
//
// Wire form:
//
//	<unix-seconds>:<base64(HMAC-SHA256(secret, "<unix-seconds>:" + context))>
//
// The context is a value both sides know, normally the full URL being requested.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Delimiter separates the timestamp from the digest, and the timestamp from the
// context inside the signed payload.
const Delimiter = ":"

// DefaultMaxSkew is the accepted distance between a signature timestamp and the
// verifier clock when no other value is configured.
const DefaultMaxSkew = 300 * time.Second

var (
	// ErrRejected is the parent of every verification failure.
	ErrRejected = errors.New("signature rejected")
	// ErrMalformed means the presented value is not "<timestamp>:<digest>".
	ErrMalformed = fmt.Errorf("%w: malformed", ErrRejected)
	// ErrStale means the timestamp lies outside the skew window.
	ErrStale = fmt.Errorf("%w: outside skew window", ErrRejected)
	// ErrMismatch means the digest does not match the recomputed one.
	ErrMismatch = fmt.Errorf("%w: digest mismatch", ErrRejected)

	// ErrSecretUnavailable is returned when the shared secret cannot be read.
	ErrSecretUnavailable = errors.New("signature: shared secret unavailable")
)

// SecretProvider supplies the shared secret. A rotating or PKI backed source can
// replace StaticSecret without touching Sign or Verify.
type SecretProvider interface {
	Secret() ([]byte, error)
}

// StaticSecret is a SecretProvider over a fixed, pre-shared key.
type StaticSecret []byte

// Secret implements SecretProvider.
func (s StaticSecret) Secret() ([]byte, error) {
	if len(s) == 0 {
		return nil, ErrSecretUnavailable
	}
	return s, nil
}

// Authority binds a secret source, a clock and a skew window.
// It holds no mutable state and is safe for concurrent use.
type Authority struct {
	secrets SecretProvider
	maxSkew time.Duration
	now     func() time.Time
}

// Option customises an Authority.
type Option func(*Authority)

// WithMaxSkew sets the accepted clock skew. Non-positive values are ignored.
func WithMaxSkew(d time.Duration) Option {
	return func(a *Authority) {
		if d > 0 {
			a.maxSkew = d
		}
	}
}

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Authority) {
		if now != nil {
			a.now = now
		}
	}
}

// New returns an Authority. It fails when the secret cannot be read, since such
// an Authority could never produce or accept a valid signature.
func New(secrets SecretProvider, opts ...Option) (*Authority, error) {
	if secrets == nil {
		return nil, ErrSecretUnavailable
	}
	if _, err := secrets.Secret(); err != nil {
		return nil, fmt.Errorf("signature: %w", err)
	}

	a := &Authority{
		secrets: secrets,
		maxSkew: DefaultMaxSkew,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// MaxSkew reports the configured skew window.
func (a *Authority) MaxSkew() time.Duration {
	return a.maxSkew
}

// Sign captures the current Unix time and returns "<timestamp>:<digest>" for context.
func (a *Authority) Sign(context string) (string, error) {
	secret, err := a.secrets.Secret()
	if err != nil {
		return "", err
	}
	ts := a.now().Unix()
	return strconv.FormatInt(ts, 10) + Delimiter + Compute(secret, ts, context), nil
}

// Verify reports whether presented is a fresh, valid signature over context.
func (a *Authority) Verify(context, presented string) bool {
	_, err := a.Check(context, presented)
	return err == nil
}

// Check verifies presented and returns its embedded timestamp. The returned error
// wraps ErrRejected and tells why the signature was refused.
func (a *Authority) Check(context, presented string) (time.Time, error) {
	ts, digest, err := Parse(presented)
	if err != nil {
		return time.Time{}, err
	}

	signedAt := time.Unix(ts, 0)
	skew := a.now().Sub(signedAt)
	if skew < 0 {
		skew = -skew
	}
	if skew > a.maxSkew {
		return signedAt, ErrStale
	}

	secret, err := a.secrets.Secret()
	if err != nil {
		return signedAt, fmt.Errorf("%w: %v", ErrRejected, err)
	}

	expected := Compute(secret, ts, context)
	if !hmac.Equal([]byte(expected), []byte(digest)) {
		return signedAt, ErrMismatch
	}
	return signedAt, nil
}

// Compute returns base64(HMAC-SHA256(secret, "<ts>:" + context)).
func Compute(secret []byte, ts int64, context string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(strconv.FormatInt(ts, 10) + Delimiter + context))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Parse splits a presented signature into timestamp and digest.
func Parse(presented string) (int64, string, error) {
	rawTS, digest, ok := strings.Cut(strings.TrimSpace(presented), Delimiter)
	if !ok || rawTS == "" || digest == "" {
		return 0, "", ErrMalformed
	}
	ts, err := strconv.ParseInt(rawTS, 10, 64)
	if err != nil || ts <= 0 {
		return 0, "", ErrMalformed
	}
	return ts, digest, nil
}
