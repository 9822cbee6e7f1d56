package application

import "time"

type SessionStatus struct {
	Present      bool
	CookieCount  int
	HasCSRFToken bool
	SavedAt      time.Time
	Age          time.Duration
}
