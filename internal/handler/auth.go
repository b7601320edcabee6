package handler

import (
	"net/http"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"gitbrowse/internal/config"
)

// dummyHash is compared against for unknown users so lookups of missing
// accounts take as long as real ones
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("gitbrowse-dummy"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
})

// Authenticator checks basic-auth credentials against configured admins
type Authenticator struct {
	cfg *config.Config
}

// NewAuthenticator creates an authenticator for cfg's admin accounts
func NewAuthenticator(cfg *config.Config) *Authenticator {
	return &Authenticator{cfg: cfg}
}

// CanAdmin reports whether r carries valid administrator credentials
func (a *Authenticator) CanAdmin(r *http.Request) bool {
	user, pass, ok := r.BasicAuth()
	if !ok || user == "" {
		return false
	}

	admin, found := a.cfg.Admin(user)
	if !found {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(pass))
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(pass)) == nil
}
