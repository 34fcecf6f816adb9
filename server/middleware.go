package server

import (
	"fmt"
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/cleancity/errors"
	"github.com/techagentng/cleancity/models"
	"github.com/techagentng/cleancity/server/response"
	"github.com/techagentng/cleancity/services/jwt"
)

// Authorize resolves the caller from the bearer token and stores the user,
// its id and its Actor on the context.
func (s *Server) Authorize() gin.HandlerFunc {
	return s.authorize(getTokenFromHeader)
}

// AuthorizeWebsocket is Authorize for the notification feed. Browsers cannot
// set headers on a websocket upgrade, so the token query parameter is
// accepted there and nowhere else.
func (s *Server) AuthorizeWebsocket() gin.HandlerFunc {
	return s.authorize(func(c *gin.Context) string {
		if token := getTokenFromHeader(c); token != "" {
			return token
		}
		return c.Query("token")
	})
}

func (s *Server) authorize(tokenFrom func(c *gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := tokenFrom(c)
		if accessToken == "" {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		accessClaims, err := jwt.ValidateAndGetClaims(accessToken, s.Config.JWTSecret)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var userID uint
		switch v := accessClaims["id"].(type) {
		case float64:
			userID = uint(v)
		default:
			respondAndAbort(c, "", http.StatusBadRequest, nil, errs.New("Invalid userID format", http.StatusBadRequest))
			return
		}

		user, err := s.UserRepository.FindUserByID(c.Request.Context(), userID)
		if err != nil {
			if errs.KindOf(err) == errs.KindNotFound {
				respondAndAbort(c, "user not found", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
				return
			}
			s.Logger.Errorw("unable to load user for request", "user_id", userID, "error", err)
			respondAndAbort(c, "unable to find entity", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		if user.IsBlocked {
			respondAndAbort(c, "user is blocked", http.StatusForbidden, nil, errs.Forbidden("user is blocked"))
			return
		}

		c.Set("user", user)
		c.Set("userID", userID)
		c.Set("actor", user.Actor())
		c.Next()
	}
}

// limitVoteRate caps how many votes a single user can cast per minute.
func limitVoteRate(perMinute uint) gin.HandlerFunc {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: perMinute,
	})
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: errs.ErrorHandler,
		KeyFunc:      keyFuncUserID,
	})
}

func keyFuncUserID(c *gin.Context) string {
	return fmt.Sprint(c.GetUint("userID"))
}

// respondAndAbort calls response.JSON and aborts the Context
func respondAndAbort(c *gin.Context, message string, status int, data interface{}, e error) {
	response.JSON(c, message, status, data, e)
	c.Abort()
}

// getTokenFromHeader returns the token string in the authorization header
func getTokenFromHeader(c *gin.Context) string {
	authHeader := c.Request.Header.Get("Authorization")
	if len(authHeader) > 8 {
		return authHeader[7:]
	}
	return ""
}

func actorFromContext(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get("actor")
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}
