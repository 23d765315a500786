package landing

// Notifier sends transactional emails. Callers treat every send as best
// effort: a returned error is logged and never undoes the stored state.
type Notifier interface {
	SendConfirmation(to, unsubscribeLink string) error
	SendContactConfirmation(to, name string) error
	SendContactNotification(to, name, email, subject, message string) error
}
