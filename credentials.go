package mdpress

import (
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/eringen/mdpress/wordpress"
)

// Credentials identify one WordPress site and account. The password is a
// WordPress application password, not the account login password.
type Credentials struct {
	Site     string
	Username string
	Password string
}

// CredentialStatus is what the home page sees about the current session.
type CredentialStatus struct {
	Connected bool
	Site      string
	Username  string
}

// handleCredentialsCheck validates submitted credentials against the remote
// site and, on success, stores them in the session for later publishes.
func (a *App) handleCredentialsCheck(c echo.Context) error {
	creds := Credentials{
		Site:     c.FormValue("site"),
		Username: c.FormValue("username"),
		Password: c.FormValue("app_password"),
	}
	if creds.Site == "" || creds.Username == "" || creds.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"status": "failed",
			"error":  "site, username, and app_password are required",
		})
	}

	client := wordpress.NewClient(creds.Site, creds.Username, creds.Password)
	user, err := client.ValidateCredentials(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{
			"status": "failed",
			"error":  err.Error(),
		})
	}

	if err := saveCredentials(c, creds); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status": "success",
		"user":   user.Name,
		"id":     user.ID,
	})
}

func (a *App) handleCredentialsClear(c echo.Context) error {
	if err := clearCredentials(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"status": "success"})
}

// sessionCredentials returns the credentials stored in this session, if any.
func sessionCredentials(c echo.Context) (Credentials, bool) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return Credentials{}, false
	}
	site, _ := sess.Values["wp_site"].(string)
	user, _ := sess.Values["wp_username"].(string)
	pass, _ := sess.Values["wp_password"].(string)
	if site == "" || user == "" || pass == "" {
		return Credentials{}, false
	}
	return Credentials{Site: site, Username: user, Password: pass}, true
}

func saveCredentials(c echo.Context, creds Credentials) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values["wp_site"] = creds.Site
	sess.Values["wp_username"] = creds.Username
	sess.Values["wp_password"] = creds.Password
	return sess.Save(c.Request(), c.Response())
}

func clearCredentials(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

// CsrfToken extracts the CSRF token from the Echo context for templates.
func CsrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}
