package handler

import (
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the HTML shells the dashboard pages boot from. Page
// content is rendered client-side against the backend API; the gateway only
// guarantees that a guarded shell is never served to an unauthenticated
// browser.
type PageHandler struct {
	shell *template.Template
	login *template.Template
}

func NewPageHandler() *PageHandler {
	return &PageHandler{
		shell: template.Must(template.New("shell").Parse(shellTemplate)),
		login: template.Must(template.New("login").Parse(loginTemplate)),
	}
}

type shellData struct {
	Title string
	Page  string
}

// Page returns a handler rendering the shell for one dashboard page.
func (h *PageHandler) Page(page, title string) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(http.StatusOK)
		return h.shell.Execute(c.Response(), shellData{Title: title, Page: page})
	}
}

// Login renders the sign-in page. The page itself polls the session endpoint
// and forwards already-authenticated browsers to the dashboard.
func (h *PageHandler) Login(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return h.login.Execute(c.Response(), nil)
}

const shellTemplate = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}} — Minerva Intelligence</title>
<link rel="stylesheet" href="/theme.css">
</head>
<body data-page="{{.Page}}">
<div id="root" class="mv-card" data-feed="/ws"></div>
<script type="module" src="/static/app.js"></script>
</body>
</html>
`

const loginTemplate = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Sign in — Minerva Intelligence</title>
<link rel="stylesheet" href="/theme.css">
</head>
<body>
<form id="login" class="mv-card">
<h1>Minerva Intelligence</h1>
<p id="error" class="mv-text"></p>
<input class="mv-input" name="username" placeholder="Username" autocomplete="username">
<input class="mv-input" name="password" type="password" placeholder="Password" autocomplete="current-password">
<button type="submit">Sign in</button>
</form>
<script>
fetch("/api/auth/session").then((r) => r.json()).then((s) => {
  if (s.authenticated) location.replace("/");
}).catch(() => {});
document.getElementById("login").addEventListener("submit", async (e) => {
  e.preventDefault();
  const form = new FormData(e.target);
  const resp = await fetch("/api/auth/login", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify({username: form.get("username"), password: form.get("password")}),
  });
  if (resp.ok) {
    const next = new URLSearchParams(location.search).get("next") || "/";
    location.assign(next.startsWith("/") ? next : "/");
    return;
  }
  const body = await resp.json().catch(() => ({}));
  document.getElementById("error").textContent = body.error || "Login failed";
});
</script>
</body>
</html>
`
