package delivery

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

type unsubscribePageData struct {
	Title   string
	Message string
	Success bool
}

// Self-contained terminal page: no scripts, no further round-trips, just the
// outcome and a way back to the gallery.
var unsubscribePage = template.Must(template.New("unsubscribe").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} - Continued Education</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 40px 20px; background: #f8f9fa; }
    .container { background: white; padding: 40px; border-radius: 10px; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); text-align: center; }
    .logo { font-size: 28px; font-weight: bold; color: #667eea; margin-bottom: 30px; }
    .icon { font-size: 48px; margin-bottom: 20px; }
    .success { color: #28a745; }
    .error { color: #dc3545; }
    .message { font-size: 18px; margin-bottom: 30px; }
    .button { display: inline-block; background: #667eea; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; font-weight: bold; }
  </style>
</head>
<body>
  <div class="container">
    <div class="logo">Continued Education</div>
    {{if .Success}}<div class="icon success">&#10003;</div>{{else}}<div class="icon error">&#10007;</div>{{end}}
    <h1>{{.Title}}</h1>
    <p class="message">{{.Message}}</p>
    <a href="/" class="button">Return to Blog</a>
  </div>
</body>
</html>
`))

func (h *SubscriptionHandler) renderUnsubscribePage(c *gin.Context, status int, data unsubscribePageData) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := unsubscribePage.Execute(c.Writer, data); err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")
	}
}
