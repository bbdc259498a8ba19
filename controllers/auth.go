package controllers

import (
	"net/http"

	authorization "SehatCare/config/authorization"
	jwt "SehatCare/config/jwt"
	"SehatCare/services"
	"SehatCare/util"

	"github.com/gin-gonic/gin"
)

// SecureCookies marks the token cookie Secure; set in production.
var SecureCookies = false

func Auth(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/signup", Signup)
		auth.POST("/login", Login)
		auth.POST("/logout", Logout)
		auth.GET("/check", authorization.JWTAuth(), CheckAuth)
	}
}

func setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(util.TokenCookie, token, maxAge, "/", "", SecureCookies, true)
}

func Signup(c *gin.Context) {
	var body services.SignupInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	user, err := services.Signup(c, body)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(user))
}

/*
* Bind the credentials and pass to the service
* Set the token cookie and return the token as well
 */
func Login(c *gin.Context) {
	var body services.LoginInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	user, token, err := services.Login(c, body)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	setTokenCookie(c, token, int(jwt.Expiry.Seconds()))
	c.JSON(http.StatusOK, util.SuccessResponse(gin.H{"user": user, "token": token}))
}

func Logout(c *gin.Context) {
	setTokenCookie(c, "", -1)
	c.JSON(http.StatusOK, util.MessageResponse("Logged out successfully"))
}

func CheckAuth(c *gin.Context) {
	user, err := services.FetchUserByID(c, c.GetString(util.CtxUserID))
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(user))
}
