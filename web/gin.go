package web

import (
	"net/http"

	"github.com/centraunit/conversation"
	"github.com/gin-gonic/gin"
)

// Gin context keys under which the middleware exposes per-request state.
const (
	GinTargetKey       = "conversation.target"
	GinConversationKey = "conversation.current"
)

// GinMiddleware is the Adapter's middleware in gin form: same hook
// sequencing, with the target and conversation exposed through the gin
// context instead of the request context.
func (a *Adapter) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := a.sessions.Session(c.Writer, c.Request)

		registry, err := a.requestRegistry(sess)
		if err != nil {
			a.log.Error().Err(err).Msg("conversation setup failed")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		propagator := conversation.NewPropagator(registry, conversation.WithLogger(a.log))
		target := a.resolve(c.Request)

		defer func() {
			if err := propagator.OnTeardown(); err != nil {
				a.log.Error().Err(err).Msg("conversation teardown failed")
			}
		}()

		if err := propagator.OnTargetResolved(target, c.Request, sess); err != nil {
			a.log.Error().Err(err).Msg("conversation activation failed")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(GinTargetKey, target)
		if conv, err := conversation.Lookup[*conversation.Conversation](registry); err == nil {
			c.Set(GinConversationKey, conv)
		}
		c.Next()
	}
}
