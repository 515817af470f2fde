package contact

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const relayGmail = "gmail"

// GmailCredentials authorise the Gmail relay with an offline refresh token.
type GmailCredentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string

	// Sender is the From address; empty lets Gmail use the account address.
	Sender string

	// To receives every submission.
	To string

	// TokenURL overrides Google's token endpoint.
	TokenURL string
}

// Gmail relays forms through the Gmail API users.messages.send call.
type Gmail struct {
	creds   GmailCredentials
	service *gmail.Service
	config  *Config
}

// NewGmail creates a Gmail relay. The access token is refreshed lazily on
// the first send.
func NewGmail(ctx context.Context, creds GmailCredentials, opts ...Option) (*Gmail, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" || creds.RefreshToken == "" || creds.To == "" {
		return nil, WrapError(relayGmail, ErrNotConfigured)
	}
	if _, err := mail.ParseAddress(creds.To); err != nil {
		return nil, WrapError(relayGmail, fmt.Errorf("recipient: %w", err))
	}

	cfg := DefaultConfig()
	cfg.Apply(opts...)
	cfg.Logger = cfg.Logger.With("component", "contact.gmail")

	endpoint := google.Endpoint
	if creds.TokenURL != "" {
		endpoint.TokenURL = creds.TokenURL
		endpoint.AuthStyle = oauth2.AuthStyleInParams
	}
	oauthConfig := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}

	// Token refreshes go through the same transport as API calls.
	tokenCtx := context.WithValue(context.WithoutCancel(ctx), oauth2.HTTPClient, cfg.Client)
	client := oauthConfig.Client(tokenCtx, &oauth2.Token{RefreshToken: creds.RefreshToken})

	svcOpts := []option.ClientOption{option.WithHTTPClient(client)}
	if cfg.BaseURL != "" {
		svcOpts = append(svcOpts, option.WithEndpoint(strings.TrimSuffix(cfg.BaseURL, "/")+"/"))
	}
	service, err := gmail.NewService(ctx, svcOpts...)
	if err != nil {
		return nil, WrapError(relayGmail, fmt.Errorf("create gmail service: %w", err))
	}

	return &Gmail{
		creds:   creds,
		service: service,
		config:  cfg,
	}, nil
}

// Name implements Relay.
func (g *Gmail) Name() string { return relayGmail }

// Send composes an RFC 5322 message and submits it.
func (g *Gmail) Send(ctx context.Context, f Form) (r Receipt, err error) {
	if err := f.Validate(); err != nil {
		return Receipt{}, err
	}
	f = f.Normalize()

	ctx, span := startSpan(ctx, relayGmail)
	defer func() { endSpan(span, r, err) }()

	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	raw := composeMessage(g.creds.Sender, g.creds.To, f, time.Now())
	msg := &gmail.Message{Raw: base64.URLEncoding.EncodeToString(raw)}

	sent, err := g.service.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return Receipt{}, &APIError{StatusCode: gerr.Code, Message: gerr.Message, Relay: relayGmail}
		}
		return Receipt{}, WrapError(relayGmail, err)
	}

	r = newReceipt(relayGmail)
	g.config.Logger.Info("contact form sent", "relay", relayGmail, "receipt", r.ID, "message_id", sent.Id)
	return r, nil
}

// composeMessage renders the form as a plain-text RFC 5322 message. The
// visitor's address goes in Reply-To so replies reach them directly.
func composeMessage(from, to string, f Form, now time.Time) []byte {
	var b bytes.Buffer
	header := func(k, v string) {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\r\n")
	}

	if from != "" {
		header("From", from)
	}
	header("To", to)
	header("Reply-To", (&mail.Address{Name: f.Name, Address: f.Email}).String())
	header("Subject", mime.QEncoding.Encode("utf-8", "Portfolio contact from "+f.Name))
	header("Date", now.Format(time.RFC1123Z))
	header("MIME-Version", "1.0")
	header("Content-Type", `text/plain; charset="UTF-8"`)
	header("Content-Transfer-Encoding", "8bit")
	b.WriteString("\r\n")

	body := strings.ReplaceAll(f.Message, "\r\n", "\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return b.Bytes()
}
