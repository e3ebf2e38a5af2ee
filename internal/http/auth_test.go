package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	html "github.com/gofiber/template/html/v2"
	"golang.org/x/crypto/bcrypt"

	"shelfwise/internal/http/handlers"
	"shelfwise/internal/repos"
	"shelfwise/internal/services"
)

func TestSeededPasswordsAreHashed(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	var hashes []string
	if err := db.Select(&hashes, `SELECT password_hash FROM users`); err != nil {
		t.Fatalf("select hashes: %v", err)
	}
	if len(hashes) == 0 {
		t.Fatal("no users seeded")
	}
	for _, h := range hashes {
		if strings.Contains(h, "Passw0rd!") {
			t.Fatalf("hash contains plaintext password")
		}
		if !strings.HasPrefix(h, "$2") {
			t.Fatalf("unexpected hash format: %s", h)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(h), []byte("Passw0rd!")); err != nil {
			t.Fatalf("seed hash does not validate known password: %v", err)
		}
	}
}

func TestSignedOutRedirectsToLogin(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/dashboard", "/inventory", "/products/new"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		if resp.StatusCode != http.StatusFound {
			t.Errorf("GET %s signed out: status %d, want 302", path, resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != "/login" {
			t.Errorf("GET %s signed out: Location %q, want /login", path, loc)
		}
	}
}

func TestLoginBadCredentialsRejected(t *testing.T) {
	app, _ := newTestApp(t)

	respForm, err := app.Test(httptest.NewRequest("GET", "/login", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	tok := extractCookie(respForm, "csrf_")
	if tok == "" {
		t.Fatal("csrf cookie missing")
	}

	attempts := []string{
		"csrf=" + tok + "&email=demo@shelfwise.test&password=wrongpass!",
		"csrf=" + tok + "&email=nobody@shelfwise.test&password=Passw0rd!",
		"csrf=" + tok + "&email=not-an-email&password=Passw0rd!",
	}
	for _, form := range attempts {
		req := httptest.NewRequest("POST", "/login", strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("form %q: status %d, want 401", form, resp.StatusCode)
		}
		if body := readBody(t, resp); !strings.Contains(body, "Invalid email or password") {
			t.Errorf("form %q: body has no generic failure message", form)
		}
	}
}

func TestLoginThrottle(t *testing.T) {
	// Minimal app with the real login handler behind a tight per-route limiter.
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}
	authH := &handlers.AuthHandler{Auth: authSvc}
	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{Max: 2, Expiration: time.Minute}), authH.Login)

	respForm, _ := app.Test(httptest.NewRequest("GET", "/login", nil), -1)
	tok := extractCookie(respForm, "csrf_")
	if tok == "" {
		t.Fatal("csrf cookie missing")
	}

	post := func() *http.Response {
		form := strings.NewReader("csrf=" + tok + "&email=demo@shelfwise.test&password=wrongpass!")
		req := httptest.NewRequest("POST", "/login", form)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	if resp := post(); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("first attempt: %d, want 401", resp.StatusCode)
	}
	if resp := post(); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("second attempt: %d, want 401", resp.StatusCode)
	}
	if resp := post(); resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("third attempt: %d, want 429", resp.StatusCode)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	app, _ := newTestApp(t)
	s := loginAs(t, app, "demo@shelfwise.test")

	if resp, _ := getPage(t, app, s, "/dashboard"); resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard before logout: %d", resp.StatusCode)
	}

	resp := postForm(t, app, s, "/logout", url.Values{})
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("logout: status %d location %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	// The old sid no longer maps to a user.
	resp2, _ := getPage(t, app, s, "/dashboard")
	if resp2.StatusCode != http.StatusFound || resp2.Header.Get("Location") != "/login" {
		t.Fatalf("dashboard after logout: status %d location %q", resp2.StatusCode, resp2.Header.Get("Location"))
	}
}
