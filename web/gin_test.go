package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/centraunit/conversation"
	"github.com/centraunit/conversation/web"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type GinTestSuite struct {
	suite.Suite
	engine *gin.Engine
}

func (s *GinTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	resolve := func(r *http.Request) conversation.RequestTarget {
		if r.URL.Path == "/confirm" {
			return conversation.NewBookmarkableRedirect("/done", nil)
		}
		return conversation.NewPageTarget(conversation.NewPage("shop"))
	}
	adapter := web.NewAdapter(web.NewSessionStore(), resolve)

	s.engine = gin.New()
	s.engine.Use(adapter.GinMiddleware())
	s.engine.GET("/shop", func(c *gin.Context) {
		conv := c.MustGet(web.GinConversationKey).(*conversation.Conversation)
		c.String(http.StatusOK, conv.ID())
	})
	s.engine.GET("/confirm", func(c *gin.Context) {
		target := c.MustGet(web.GinTargetKey).(*conversation.BookmarkableRedirect)
		c.Redirect(http.StatusFound, target.URL())
	})
}

func (s *GinTestSuite) TestConversationAvailableToHandlers() {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/shop", nil)
	s.engine.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	s.NotEmpty(rec.Body.String())
}

func (s *GinTestSuite) TestRedirectTargetAvailableToHandlers() {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/confirm", nil)
	s.engine.ServeHTTP(rec, req)

	s.Equal(http.StatusFound, rec.Code)
	s.Equal("/done", rec.Header().Get("Location"))
}

func TestGinSuite(t *testing.T) {
	suite.Run(t, new(GinTestSuite))
}
