package widget

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
	coreWidget "github.com/Nazarious-ucu/weather-widget/internal/widget"
)

// SessionCookie carries the id of the visitor's widget.
const SessionCookie = "widget_session"

type searcher interface {
	Mount(ctx context.Context)
	Search(ctx context.Context, city string) error
	Display() *models.WeatherDisplay
}

type sessionStore interface {
	Acquire(id string) (string, *coreWidget.Widget)
}

type Handler struct {
	sessions  sessionStore
	cookieTTL time.Duration
}

func NewHandler(sessions sessionStore, cookieTTL time.Duration) *Handler {
	return &Handler{sessions: sessions, cookieTTL: cookieTTL}
}

// Index renders the visitor's widget; a first visit mounts a new one.
func (h *Handler) Index(c *gin.Context) {
	w := h.acquire(c)
	w.Mount(context.WithoutCancel(c.Request.Context()))
	h.render(c, w, "")
}

// Search runs a lookup for the submitted city and renders the result. A
// session that starts with a search never loads the default city.
func (h *Handler) Search(c *gin.Context) {
	w := h.acquire(c)

	// the lookup must land in the widget even if the browser goes away
	ctx := context.WithoutCancel(c.Request.Context())

	alert := ""
	if err := w.Search(ctx, c.PostForm("city")); err != nil {
		if !errors.Is(err, coreWidget.ErrEmptyCity) {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		alert = err.Error()
	}

	h.render(c, w, alert)
}

func (h *Handler) acquire(c *gin.Context) searcher {
	id, _ := c.Cookie(SessionCookie)
	id, w := h.sessions.Acquire(id)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, int(h.cookieTTL.Seconds()), "/", "", false, true)
	return w
}

func (h *Handler) render(c *gin.Context, w searcher, alert string) {
	c.HTML(http.StatusOK, pageTemplate, newPage(w.Display(), alert))
}
