// Package console is the client side of the admin surface: the session
// store and route guard that gate every protected view, and the typed
// repositories the views drive. All remote state lives behind a
// reload-after-mutation discipline: the server is the source of truth and
// caches are never patched speculatively.
package console

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// ErrorKind classifies console operation failures.
type ErrorKind int

const (
	// KindValidation: detected locally, no request was issued.
	KindValidation ErrorKind = iota
	// KindRejection: the server refused the operation with a detail message.
	KindRejection
	// KindAuthorization: the session is missing, expired or forbidden.
	KindAuthorization
	// KindTransport: the request never completed or the response was
	// unreadable.
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRejection:
		return "rejection"
	case KindAuthorization:
		return "authorization"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Error is the failure type every console operation returns.
type Error struct {
	Kind   ErrorKind
	Status int    // HTTP status, 0 for local/transport failures
	Detail string // server-provided or locally generated message
	cause  error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.cause)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.cause }

// AccountDisqualified reports whether the failure means the account is
// permanently rejected (403 on login) rather than merely unauthenticated.
// The login view hides the widget in that case.
func (e *Error) AccountDisqualified() bool {
	return e.Kind == KindAuthorization && e.Status == http.StatusForbidden
}

func validationError(detail string) *Error {
	return &Error{Kind: KindValidation, Detail: detail}
}

// Transport is the typed JSON-over-HTTPS client every console component
// shares. The session credential is an opaque cookie managed entirely by
// the jar; the console never inspects it.
type Transport struct {
	base   *url.URL
	client *http.Client
	log    zerolog.Logger
}

// NewTransport creates a Transport for the given API base URL with a fresh
// cookie jar.
func NewTransport(baseURL string, log zerolog.Logger) (*Transport, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("console: invalid base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Transport{
		base:   base,
		client: &http.Client{Jar: jar},
		log:    log,
	}, nil
}

type detailEnvelope struct {
	Detail string `json:"detail"`
}

// do issues one request and decodes a 2xx body into out (when non-nil).
// Non-2xx responses become Rejection or Authorization errors carrying the
// server's detail message; network and decode failures become Transport
// errors. Prior cache state is the caller's concern; do never mutates it.
func (t *Transport) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindTransport, cause: err}
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.base.String()+path, reader)
	if err != nil {
		return &Error{Kind: KindTransport, cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		t.log.Error().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return &Error{Kind: KindTransport, cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope detailEnvelope
		_ = json.NewDecoder(resp.Body).Decode(&envelope)

		kind := KindRejection
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			kind = KindAuthorization
		}
		return &Error{Kind: kind, Status: resp.StatusCode, Detail: envelope.Detail}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.log.Error().Err(err).Str("path", path).Msg("malformed response")
			return &Error{Kind: KindTransport, cause: err}
		}
	}
	return nil
}

func (t *Transport) get(ctx context.Context, path string, out any) error {
	return t.do(ctx, http.MethodGet, path, nil, out)
}

func (t *Transport) post(ctx context.Context, path string, body, out any) error {
	return t.do(ctx, http.MethodPost, path, body, out)
}

func (t *Transport) put(ctx context.Context, path string, body any) error {
	return t.do(ctx, http.MethodPut, path, body, nil)
}

func (t *Transport) delete(ctx context.Context, path string) error {
	return t.do(ctx, http.MethodDelete, path, nil, nil)
}
