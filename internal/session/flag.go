package session

import (
	log "github.com/sirupsen/logrus"
)

// Flag holds the session's authenticated state. Logging in performs no
// verification; it only flips the flag.
//
// Like the inbox store, a Flag belongs to one owner goroutine.
type Flag struct {
	authenticated bool
	log           log.FieldLogger
	subs          []func(bool)
}

func NewFlag(authenticated bool, logger log.FieldLogger) *Flag {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Flag{authenticated: authenticated, log: logger}
}

func (f *Flag) IsAuthenticated() bool {
	return f.authenticated
}

func (f *Flag) Login() {
	f.set(true)
}

func (f *Flag) Logout() {
	f.set(false)
}

// Toggle logs in when logged out and vice versa.
func (f *Flag) Toggle() {
	f.set(!f.authenticated)
}

// Subscribe registers fn to be told about every change of the flag.
// Repeated logins or logouts are not changes.
func (f *Flag) Subscribe(fn func(authenticated bool)) {
	f.subs = append(f.subs, fn)
}

func (f *Flag) set(v bool) {
	if f.authenticated == v {
		return
	}
	f.authenticated = v
	f.log.WithField("authenticated", v).Info("session_changed")
	for _, fn := range f.subs {
		fn(v)
	}
}
