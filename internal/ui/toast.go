package ui

import "time"

// ToastKind distinguishes success from failure toasts
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastFailure
)

// ShortToast is how long a toast stays on screen by default
const ShortToast = 2 * time.Second

// Toast is a transient, auto-dismissing status message
type Toast struct {
	Message string
	Kind    ToastKind
	Shown   time.Time
	For     time.Duration
}

// Visible reports whether the toast should still be drawn at now
func (t Toast) Visible(now time.Time) bool {
	if t.Message == "" {
		return false
	}
	return now.Before(t.Shown.Add(t.For))
}
