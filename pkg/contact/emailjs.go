package contact

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/teslashibe/go-folio/internal/httpc"
)

const (
	emailJSBaseURL = "https://api.emailjs.com"
	emailJSPath    = "/api/v1.0/email/send-form"
	relayEmailJS   = "emailjs"

	// maxErrorBody caps how much of a failed response is kept.
	maxErrorBody = 4 << 10
)

// EmailJS relays forms through the EmailJS REST send-form endpoint.
type EmailJS struct {
	serviceID  string
	templateID string
	publicKey  string
	config     *Config
}

// NewEmailJS creates an EmailJS relay. All three identifiers are required.
func NewEmailJS(serviceID, templateID, publicKey string, opts ...Option) (*EmailJS, error) {
	if serviceID == "" || templateID == "" || publicKey == "" {
		return nil, WrapError(relayEmailJS, ErrNotConfigured)
	}

	cfg := DefaultConfig()
	cfg.Apply(opts...)
	if cfg.BaseURL == "" {
		cfg.BaseURL = emailJSBaseURL
	}
	cfg.Logger = cfg.Logger.With("component", "contact.emailjs")

	return &EmailJS{
		serviceID:  serviceID,
		templateID: templateID,
		publicKey:  publicKey,
		config:     cfg,
	}, nil
}

// Name implements Relay.
func (e *EmailJS) Name() string { return relayEmailJS }

// Send posts the form as multipart data, the way the browser form does.
func (e *EmailJS) Send(ctx context.Context, f Form) (r Receipt, err error) {
	if err := f.Validate(); err != nil {
		return Receipt{}, err
	}
	f = f.Normalize()

	ctx, span := startSpan(ctx, relayEmailJS)
	defer func() { endSpan(span, r, err) }()

	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	body, contentType, err := e.encode(f)
	if err != nil {
		return Receipt{}, WrapError(relayEmailJS, fmt.Errorf("encode form: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.config.BaseURL+emailJSPath, body)
	if err != nil {
		return Receipt{}, WrapError(relayEmailJS, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := e.config.Client.Do(req)
	if err != nil {
		return Receipt{}, WrapError(relayEmailJS, fmt.Errorf("send request: %w", err))
	}
	text, _ := httpc.ReadBody(resp, maxErrorBody)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(text)),
			Relay:      relayEmailJS,
		}
		e.config.Logger.Warn("emailjs rejected form", "status", resp.StatusCode)
		return Receipt{}, apiErr
	}

	r = newReceipt(relayEmailJS)
	e.config.Logger.Info("contact form sent", "relay", relayEmailJS, "receipt", r.ID)
	return r, nil
}

func (e *EmailJS) encode(f Form) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ key, value string }{
		{"name", f.Name},
		{"email", f.Email},
		{"message", f.Message},
		{"service_id", e.serviceID},
		{"template_id", e.templateID},
		{"user_id", e.publicKey},
	}
	for _, fld := range fields {
		if err := w.WriteField(fld.key, fld.value); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
