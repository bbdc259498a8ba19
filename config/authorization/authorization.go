package authorization

import (
	"net/http"
	"strings"

	jwt "SehatCare/config/jwt"
	"SehatCare/util"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func tokenFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(util.TokenCookie); err == nil {
		return cookie
	}
	return ""
}

/*
* Read the token from the Authorization header or the token cookie
* Validate it and copy the claims into the context
 */
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, util.FailedResponse(util.Unauthorized(util.NOT_AUTHORIZED_NO_TOKEN)))
			return
		}
		claims, err := jwt.ValidateJWT(token)
		if err != nil {
			log.Debug().Err(err).Msg("rejected token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, util.FailedResponse(util.Unauthorized(util.INVALID_TOKEN)))
			return
		}
		c.Set(util.CtxUserID, claims.ID)
		c.Set(util.CtxEmail, claims.Email)
		c.Set(util.CtxRole, claims.Role)
		c.Next()
	}
}

// Authorize must run after JWTAuth.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(util.CtxRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, util.FailedResponse(util.Forbidden(util.ROLE_NOT_AUTHORIZED)))
	}
}
