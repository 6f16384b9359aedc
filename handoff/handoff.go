// Package handoff builds the deep link that passes a finished order to the
// shop's messaging account.
package handoff

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// BaseURL is the messaging service's click-to-chat endpoint.
const BaseURL = "https://wa.me/"

// ErrNoRecipient is returned when no recipient number is configured.
var ErrNoRecipient = errors.New("handoff: recipient not configured")

// Link returns BaseURL + recipient + "?text=" + the percent-encoded
// message. Spaces encode as %20.
func Link(recipient, message string) string {
	return BaseURL + url.PathEscape(recipient) + "?text=" + EncodeText(message)
}

// EncodeText percent-encodes s for use as a query value.
func EncodeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Opener asks the host environment to open link in a new browsing context.
type Opener interface {
	Open(ctx context.Context, link string) error
}

// OpenFunc adapts a function to Opener.
type OpenFunc func(ctx context.Context, link string) error

// Open calls f(ctx, link).
func (f OpenFunc) Open(ctx context.Context, link string) error { return f(ctx, link) }

// Dispatcher turns an order message into a link for a fixed recipient and
// hands it to an Opener.
type Dispatcher struct {
	Recipient string
	Opener    Opener
}

// Dispatch builds the link and opens it.
func (d Dispatcher) Dispatch(ctx context.Context, message string) error {
	if d.Recipient == "" {
		return ErrNoRecipient
	}
	if d.Opener == nil {
		return nil
	}
	return d.Opener.Open(ctx, Link(d.Recipient, message))
}
