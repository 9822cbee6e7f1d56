package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	CSRFCookieName   = "csrf_token"
	CSRFCookieDomain = ".naver.com"
	CSRFCookiePath   = "/"
)

type Credentials struct {
	UserID   string
	Password string
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return errors.New("user id is required")
	}
	if c.Password == "" {
		return errors.New("password is required")
	}

	return nil
}

// String never includes the password.
func (c Credentials) String() string {
	return "credentials(" + c.UserID + ")"
}

type Cookie struct {
	Name   string
	Value  string
	Domain string
	Path   string
}

// SessionArtifact is the durable form of an authenticated session. The
// anti-forgery token is carried both as an explicit field and as a cookie so
// that a client rebuilt from the cookies alone still sends it.
type SessionArtifact struct {
	Cookies   []Cookie
	CSRFToken string
	SavedAt   time.Time
}

func (a SessionArtifact) IsEmpty() bool {
	return len(a.Cookies) == 0
}

func (a SessionArtifact) Cookie(name string) (Cookie, bool) {
	for _, cookie := range a.Cookies {
		if cookie.Name == name {
			return cookie, true
		}
	}

	return Cookie{}, false
}

func (a SessionArtifact) HasCSRFCookie() bool {
	cookie, ok := a.Cookie(CSRFCookieName)
	return ok && strings.TrimSpace(cookie.Value) != ""
}

// WithCSRFToken returns a copy of the artifact with token set and an
// existing csrf_token cookie replaced.
func (a SessionArtifact) WithCSRFToken(token string) SessionArtifact {
	token = strings.TrimSpace(token)
	if token == "" {
		return a
	}

	cookies := make([]Cookie, 0, len(a.Cookies)+1)
	for _, cookie := range a.Cookies {
		if cookie.Name == CSRFCookieName {
			continue
		}
		cookies = append(cookies, cookie)
	}
	cookies = append(cookies, Cookie{
		Name:   CSRFCookieName,
		Value:  token,
		Domain: CSRFCookieDomain,
		Path:   CSRFCookiePath,
	})

	a.Cookies = cookies
	a.CSRFToken = token
	return a
}
