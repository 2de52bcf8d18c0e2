package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"team-manager-system/utils"
)

const testSecret = "test-secret"

func gateApp() *fiber.App {
	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/any", AuthMiddleware(testSecret), ok)
	app.Get("/admin", AuthMiddleware(testSecret), RequireAdmin(), ok)
	app.Get("/player", AuthMiddleware(testSecret), RequirePlayer(), ok)
	return app
}

func doGet(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp.StatusCode
}

func TestAuthMiddlewareFailsClosed(t *testing.T) {
	app := gateApp()

	if code := doGet(t, app, "/any", ""); code != 401 {
		t.Fatalf("missing token: expected 401, got %d", code)
	}
	if code := doGet(t, app, "/any", "not-a-jwt"); code != 401 {
		t.Fatalf("garbage token: expected 401, got %d", code)
	}

	// A refresh token is not accepted where an access token is required.
	pair, err := utils.IssueTokenPair(testSecret, "u1", "a@b.com", "player")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if code := doGet(t, app, "/any", pair.Refresh); code != 401 {
		t.Fatalf("refresh token: expected 401, got %d", code)
	}
	if code := doGet(t, app, "/any", pair.Access); code != 200 {
		t.Fatalf("access token: expected 200, got %d", code)
	}
}

func TestAuthMiddlewareRequiresBearerScheme(t *testing.T) {
	app := gateApp()

	pair, err := utils.IssueTokenPair(testSecret, "u1", "a@b.com", "player")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// A valid token is rejected unless it rides the Bearer scheme.
	for _, header := range []string{pair.Access, "Basic " + pair.Access, "bearer " + pair.Access} {
		req := httptest.NewRequest("GET", "/any", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != 401 {
			t.Fatalf("header %q: expected 401, got %d", header, resp.StatusCode)
		}
	}
}

func TestRoleGateBothAxes(t *testing.T) {
	app := gateApp()

	adminPair, _ := utils.IssueTokenPair(testSecret, "u1", "admin@b.com", "admin")
	playerPair, _ := utils.IssueTokenPair(testSecret, "u2", "joueur@b.com", "player")

	if code := doGet(t, app, "/admin", adminPair.Access); code != 200 {
		t.Fatalf("admin on admin route: expected 200, got %d", code)
	}
	if code := doGet(t, app, "/admin", playerPair.Access); code != 403 {
		t.Fatalf("player on admin route: expected 403, got %d", code)
	}
	if code := doGet(t, app, "/player", playerPair.Access); code != 200 {
		t.Fatalf("player on player route: expected 200, got %d", code)
	}
	if code := doGet(t, app, "/player", adminPair.Access); code != 403 {
		t.Fatalf("admin on player route: expected 403, got %d", code)
	}
}
