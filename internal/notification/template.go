package notification

import (
	"bytes"
	"fmt"
	"html/template"

	"photoblog-backend/internal/subscription/domain"
)

var bodyTemplate = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>New Post: {{.Title}}</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; border-radius: 10px; text-align: center; margin-bottom: 30px; }
    .content { background: #f8f9fa; padding: 30px; border-radius: 10px; margin-bottom: 30px; }
    .button { display: inline-block; background: #667eea; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; font-weight: bold; margin: 20px 0; }
    .footer { text-align: center; color: #666; font-size: 14px; border-top: 1px solid #eee; padding-top: 20px; }
    .unsubscribe { color: #999; font-size: 12px; }
  </style>
</head>
<body>
  <div class="header">
    <h1>Continued Education</h1>
    <p>New blog post published!</p>
  </div>

  <div class="content">
    <h2>{{.Title}}</h2>
    <p>{{.Excerpt}}</p>
    <a href="{{.PostURL}}" class="button">Read Full Post</a>
  </div>

  <div class="footer">
    <p>Thank you for subscribing to Continued Education!</p>
    <p class="unsubscribe">
      Don't want to receive these emails?
      <a href="{{.UnsubscribeURL}}">Unsubscribe here</a>
    </p>
  </div>
</body>
</html>
`))

type bodyData struct {
	Title          string
	Excerpt        string
	PostURL        string
	UnsubscribeURL template.URL
}

func renderRecipientBody(post domain.PostRef, baseURL, token string) (string, error) {
	return renderBody(post, baseURL, template.URL(baseURL+"/unsubscribe?token="+token))
}

// renderBroadcastBody leaves the unsubscribe target as the provider
// placeholder, resolved per recipient at send time.
func renderBroadcastBody(post domain.PostRef, baseURL string) (string, error) {
	return renderBody(post, baseURL, template.URL("{{unsubscribe}}"))
}

func renderBody(post domain.PostRef, baseURL string, unsubscribeURL template.URL) (string, error) {
	var buf bytes.Buffer
	err := bodyTemplate.Execute(&buf, bodyData{
		Title:          post.Title,
		Excerpt:        post.Excerpt,
		PostURL:        baseURL + "/post/" + post.ID,
		UnsubscribeURL: unsubscribeURL,
	})
	if err != nil {
		return "", fmt.Errorf("render notification body: %w", err)
	}
	return buf.String(), nil
}
