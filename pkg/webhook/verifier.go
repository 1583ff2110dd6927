// Package webhook verifies identity-provider webhooks signed with the Svix scheme.
package webhook

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	svix "github.com/svix/svix-webhooks/go"
)

const (
	HeaderID        = "svix-id"
	HeaderTimestamp = "svix-timestamp"
	HeaderSignature = "svix-signature"

	secretPrefix = "whsec_"
)

var (
	ErrMissingHeaders   = errors.New("missing webhook signature headers")
	ErrInvalidTimestamp = errors.New("webhook timestamp outside tolerance")
	ErrNoMatch          = errors.New("no matching webhook signature")
)

// Verifier wraps svix.Webhook with a configurable timestamp tolerance
type Verifier struct {
	wh        *svix.Webhook
	tolerance time.Duration
	now       func() time.Time
}

// NewVerifier accepts the dashboard form "whsec_<base64>" or a raw secret
func NewVerifier(secret string, tolerance time.Duration) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("webhook signing secret is empty")
	}

	var (
		wh  *svix.Webhook
		err error
	)
	if strings.HasPrefix(secret, secretPrefix) {
		wh, err = svix.NewWebhook(secret)
	} else {
		wh, err = svix.NewWebhookRaw([]byte(secret))
	}
	if err != nil {
		return nil, fmt.Errorf("decode webhook secret: %w", err)
	}
	return &Verifier{wh: wh, tolerance: tolerance, now: time.Now}, nil
}

// Verify checks the signature headers against the raw request body.
// A zero tolerance disables the timestamp window.
func (v *Verifier) Verify(msgID, timestamp, signatures string, payload []byte) error {
	if msgID == "" || timestamp == "" || signatures == "" {
		return ErrMissingHeaders
	}

	sec, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrInvalidTimestamp
	}
	if v.tolerance > 0 {
		sentAt := time.Unix(sec, 0)
		now := v.now()
		if now.Sub(sentAt) > v.tolerance || sentAt.Sub(now) > v.tolerance {
			return ErrInvalidTimestamp
		}
	}

	headers := http.Header{}
	headers.Set(HeaderID, msgID)
	headers.Set(HeaderTimestamp, timestamp)
	headers.Set(HeaderSignature, signatures)
	if err := v.wh.VerifyIgnoringTimestamp(payload, headers); err != nil {
		return fmt.Errorf("%w: %v", ErrNoMatch, err)
	}
	return nil
}

// Sign produces the signature header value for a payload
func (v *Verifier) Sign(msgID string, sentAt time.Time, payload []byte) (string, error) {
	return v.wh.Sign(msgID, sentAt, payload)
}
