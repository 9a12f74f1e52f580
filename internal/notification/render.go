package notification

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/template/django/v3"

	"github.com/dtroode/pawconnect-server/internal/model"
)

//go:embed templates/*.django
var templates embed.FS

var subjects = map[model.NotificationKind]string{
	model.NotificationVerification:    "Confirm your PawConnect account",
	model.NotificationPasswordReset:   "Reset your PawConnect password",
	model.NotificationPasswordChanged: "Your PawConnect password was changed",
}

// Message is a rendered notification ready to send.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Renderer turns notifications into messages using the embedded templates.
type Renderer struct {
	engine *django.Engine
	ttl    time.Duration
}

// NewRenderer loads the templates. ttl is the token lifetime quoted in
// link-bearing messages.
func NewRenderer(ttl time.Duration) (*Renderer, error) {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to open templates: %w", err)
	}

	engine := django.NewFileSystem(http.FS(sub), ".django")
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return &Renderer{engine: engine, ttl: ttl}, nil
}

func (r *Renderer) Render(n model.Notification) (Message, error) {
	subject, ok := subjects[n.Kind]
	if !ok {
		return Message{}, fmt.Errorf("unknown notification kind %q", n.Kind)
	}
	if n.To == "" {
		return Message{}, fmt.Errorf("notification %q has no recipient", n.Kind)
	}

	name := n.Name
	if name == "" {
		name = "there"
	}

	var buf bytes.Buffer
	err := r.engine.Render(&buf, string(n.Kind), map[string]interface{}{
		"name": name,
		"link": n.Link,
		"ttl":  humanDuration(r.ttl),
	})
	if err != nil {
		return Message{}, fmt.Errorf("failed to render %s: %w", n.Kind, err)
	}

	return Message{To: n.To, Subject: subject, Body: buf.String()}, nil
}

func humanDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "a limited time"
	case d%(24*time.Hour) == 0:
		return plural(int(d/(24*time.Hour)), "day")
	case d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	default:
		return strings.TrimSuffix(d.Round(time.Minute).String(), "0s")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
