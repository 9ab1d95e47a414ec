package port

// Mailer sends outbound email. Implementations may be disabled (missing SMTP
// credentials), in which case Send is a no-op and IsEnabled reports false.
type Mailer interface {
	IsEnabled() bool
	Send(subject, body string, recipients []string) error
}
