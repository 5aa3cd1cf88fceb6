package payflow

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/app/models"
	"farmalink-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// terminalConfirmer asks yes/no questions on a reader/writer pair. Used by
// CLI hosts; web hosts answer the advisory from the frontend instead.
type terminalConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminalConfirmer(in io.Reader, out io.Writer) contracts.Confirmer {
	return &terminalConfirmer{in: bufio.NewReader(in), out: out}
}

func (c *terminalConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	if _, err := fmt.Fprintf(c.out, "%s [s/n]: ", message); err != nil {
		return false, err
	}
	answer, err := c.in.ReadString('\n')
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "s" || answer == "si" || answer == "sí", nil
}

// autoConfirmer answers every question with a fixed value. Used when no
// interactive host is available.
type autoConfirmer struct{ answer bool }

func NewAutoConfirmer(answer bool) contracts.Confirmer {
	return &autoConfirmer{answer: answer}
}

func (c *autoConfirmer) Confirm(context.Context, string) (bool, error) {
	return c.answer, nil
}

// logLinkOpener records the checkout handoff. The real redirect happens on
// the device; server-side hosts only need the URL to reach the response.
type logLinkOpener struct {
	log *zap.Logger
}

func NewLogLinkOpener(logger *zap.Logger) contracts.LinkOpener {
	return &logLinkOpener{log: logger}
}

func (o *logLinkOpener) Open(ctx context.Context, url string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	o.log.Info("linkOpener handing off to hosted checkout",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("checkout_url", url),
	)
	return nil
}

// contextAuthProvider reads the authenticated user id that the auth
// middleware stored in the request context.
type contextAuthProvider struct{}

func NewContextAuthProvider() contracts.AuthProvider {
	return contextAuthProvider{}
}

func (contextAuthProvider) CurrentUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(constvars.CONTEXT_USER_ID_KEY).(string)
	return userID, ok && userID != ""
}

// logNotificationSink is the default terminal-notification delivery: a
// structured log line per outcome. Push transports implement the same
// contract.
type logNotificationSink struct {
	log *zap.Logger
}

func NewLogNotificationSink(logger *zap.Logger) contracts.NotificationSink {
	return &logNotificationSink{log: logger}
}

func (s *logNotificationSink) NotifySuccess(order *models.Order) {
	s.log.Info("payment succeeded",
		zap.String(constvars.LoggingOrderIDKey, order.ID),
		zap.String(constvars.LoggingUserIDKey, order.UserID),
		zap.String(constvars.LoggingPharmacyIDKey, order.PharmacyID),
	)
}

func (s *logNotificationSink) NotifyFailure(order *models.Order) {
	s.log.Info("payment failed",
		zap.String(constvars.LoggingOrderIDKey, order.ID),
		zap.String(constvars.LoggingUserIDKey, order.UserID),
		zap.String(constvars.LoggingOrderStateKey, string(order.State)),
	)
}
