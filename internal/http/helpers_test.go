package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"shelfwise/internal/http/handlers"
	"shelfwise/internal/repos"
	"shelfwise/internal/services"
)

// newTestApp wires the same middleware and route set main uses, against an
// in-memory database. Login throttling is left off; it gets its own test.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Server().MaxRequestBodySize = 1 << 20
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	deps := handlers.NewDeps(db)
	requireUser := handlers.RequireUser(authSvc)

	app.Get("/login", authH.LoginForm)
	app.Post("/login", authH.Login)
	app.Post("/logout", authH.Logout)
	app.Get("/dashboard", requireUser, deps.DashboardHandler.View)
	app.Get("/inventory", requireUser, deps.InventoryHandler.List)
	app.Get("/products/new", requireUser, deps.ProductHandler.NewForm)
	app.Post("/products", requireUser, deps.ProductHandler.Create)
	app.Post("/products/delete", requireUser, deps.ProductHandler.Delete)

	return app, db
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// session carries the cookies a browser would hold after logging in.
type session struct {
	sid  string
	csrf string
}

func (s session) attach(req *http.Request) {
	if s.csrf != "" {
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: s.csrf})
	}
	if s.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: s.sid})
	}
}

// loginAs runs the real login flow (csrf fetch, form post) for a seeded
// account. The -1 timeout keeps bcrypt verification from tripping app.Test.
func loginAs(t *testing.T, app *fiber.App, email string) session {
	t.Helper()

	respForm, err := app.Test(httptest.NewRequest("GET", "/login", nil), -1)
	if err != nil {
		t.Fatalf("GET /login: %v", err)
	}
	tok := extractCookie(respForm, "csrf_")
	if tok == "" {
		t.Fatal("csrf cookie missing")
	}

	form := url.Values{"csrf": {tok}, "email": {email}, "password": {"Passw0rd!"}}
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("POST /login: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("login as %s: expected redirect, got %d", email, resp.StatusCode)
	}
	sid := extractCookie(resp, "sid")
	if sid == "" {
		t.Fatal("sid cookie missing after login")
	}
	return session{sid: sid, csrf: tok}
}

func postForm(t *testing.T, app *fiber.App, s session, path string, form url.Values) *http.Response {
	t.Helper()
	form.Set("csrf", s.csrf)
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	s.attach(req)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func getPage(t *testing.T, app *fiber.App, s session, path string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	s.attach(req)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}
