package model

import "context"

// Notifier delivers notifications to account owners. Callers treat delivery
// as best-effort.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotificationKind selects the message template.
type NotificationKind string

const (
	NotificationVerification    NotificationKind = "verification"
	NotificationPasswordReset   NotificationKind = "password_reset"
	NotificationPasswordChanged NotificationKind = "password_changed"
)

// Notification is a message addressed to one account owner.
type Notification struct {
	Kind NotificationKind
	To   string
	Name string
	Link string
}
