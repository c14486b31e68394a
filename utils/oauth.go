package utils

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"

	"github.com/SeongukCho/SeSAC-Diary/config"
)

// InitOAuthProviders wires the Google provider into goth. Gothic keeps the
// OAuth handshake state in its own gorilla/sessions cookie store, separate
// from our JWT cookie; Secure stays off outside production so localhost
// callbacks work.
func InitOAuthProviders(conf config.Config) {
	gothStore := sessions.NewCookieStore([]byte(conf.SessionSecret))
	gothStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   conf.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	}
	gothic.Store = gothStore

	if conf.GoogleClientID == "" {
		config.Logger.Warnw("GOOGLE_CLIENT_ID not set, Google login disabled")
		return
	}

	goth.UseProviders(
		google.New(
			conf.GoogleClientID,
			conf.GoogleClientSecret,
			conf.GoogleRedirectURI,
			"email",
			"profile",
		),
	)
}
