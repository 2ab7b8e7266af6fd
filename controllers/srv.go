// controllers/srv.go
package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"Gin_postgres_redis_catalog/app"
	"Gin_postgres_redis_catalog/customid"
	"Gin_postgres_redis_catalog/db"
	"Gin_postgres_redis_catalog/fieldschema"
	"Gin_postgres_redis_catalog/notify"
	"Gin_postgres_redis_catalog/session"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Srv struct {
	Repo      *db.Repo
	AppSess   *session.AppSessionStore
	Comments  *notify.CommentPublisher
	WebOrigin string
	Cfg       app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:      db.NewRepo(a.DB),
		AppSess:   a.AppSessions(),
		Comments:  notify.NewCommentPublisher(a.RDB),
		WebOrigin: a.Config.WebOrigin,
		Cfg:       a.Config,
	}
}

// --- helpers ---

func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

// issueSession creates the redis session, sets the cookie and records the
// login snapshot.
func (s *Srv) issueSession(ctx context.Context, w http.ResponseWriter, userID, ip, ua string) error {
	_ = s.Repo.TouchUserLogin(ctx, userID, ip, ua) // snapshot only, never blocks login
	id := uuid.NewString()
	if err := s.AppSess.Create(ctx, id, userID); err != nil {
		return err
	}
	s.setAppCookie(w, id, s.Cfg.SessionTTL)
	return nil
}

func currentUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	uid, _ := v.(string)
	return uid, uid != ""
}

func isAdmin(c *gin.Context) bool {
	v, ok := c.Get("isAdmin")
	if !ok {
		return false
	}
	admin, _ := v.(bool)
	return admin
}

// writeError maps the error taxonomy onto status codes in one place.
// Validation and not-found are the caller's problem; conflicts get their
// own status so clients can prompt a reload; configuration and unexpected
// errors are logged server-side and kept generic on the wire.
func writeError(c *gin.Context, err error) {
	var ve *fieldschema.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, app.H{"error": ve.Error()})
		return
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, app.H{"error": verrs.Error()})
		return
	}
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": "not found"})
	case errors.Is(err, db.ErrDuplicateCustomID):
		c.JSON(http.StatusConflict, app.H{"error": "an item with this custom id already exists"})
	case errors.Is(err, db.ErrVersionConflict):
		c.JSON(http.StatusConflict, app.H{"error": "the record was modified by another user, reload and try again"})
	case errors.Is(err, db.ErrDuplicateUser):
		c.JSON(http.StatusConflict, app.H{"error": "username or email already exists"})
	default:
		var ce *customid.ConfigError
		if errors.As(err, &ce) {
			log.Printf("configuration error: %v", ce)
		} else {
			log.Printf("unexpected error: %v", err)
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": "internal error"})
	}
}
