package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingSignature = errors.New("missing webhook signature headers")
	ErrBadSignature     = errors.New("webhook signature mismatch")
	ErrStaleWebhook     = errors.New("webhook timestamp outside tolerance")
)

// WebhookTolerance bounds the age of a delivery's timestamp.
const WebhookTolerance = 5 * time.Minute

// WebhookVerifier checks Clerk (svix) webhook signatures.
type WebhookVerifier struct {
	secret []byte
	now    func() time.Time
}

// NewWebhookVerifier accepts the signing secret as shown in the Clerk
// dashboard, with or without its whsec_ prefix. An empty secret disables
// verification.
func NewWebhookVerifier(secret string) (*WebhookVerifier, error) {
	if secret == "" {
		return &WebhookVerifier{now: time.Now}, nil
	}
	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, "whsec_"))
	if err != nil {
		return nil, err
	}
	return &WebhookVerifier{secret: key, now: time.Now}, nil
}

func (v *WebhookVerifier) Enabled() bool {
	return len(v.secret) > 0
}

// Verify checks the svix-id, svix-timestamp and svix-signature headers
// against the raw body.
func (v *WebhookVerifier) Verify(header http.Header, body []byte) error {
	if !v.Enabled() {
		return nil
	}

	msgID := header.Get("svix-id")
	timestamp := header.Get("svix-timestamp")
	signatures := header.Get("svix-signature")
	if msgID == "" || timestamp == "" || signatures == "" {
		return ErrMissingSignature
	}

	sec, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrBadSignature
	}
	sent := time.Unix(sec, 0)
	if d := v.now().Sub(sent); d > WebhookTolerance || d < -WebhookTolerance {
		return ErrStaleWebhook
	}

	expected := v.Sign(msgID, timestamp, body)
	for _, candidate := range strings.Fields(signatures) {
		version, sig, ok := strings.Cut(candidate, ",")
		if !ok || version != "v1" {
			continue
		}
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return ErrBadSignature
}

// Sign returns the base64 v1 signature for a delivery.
func (v *WebhookVerifier) Sign(msgID, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(msgID + "." + timestamp + "."))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
