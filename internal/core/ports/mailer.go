package ports

import "context"

// Mailer dispatches transactional mail. Transport internals never reach the
// client: failures surface as domain.ErrOTPDispatchFailed at the service layer.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
