package util

import "github.com/gin-gonic/gin"

func SuccessResponse(data interface{}) gin.H {
	return gin.H{
		"success": true,
		"data":    data,
	}
}

func FailedResponse(err error) gin.H {
	message := "Something went wrong"
	if err != nil {
		message = err.Error()
	}
	return gin.H{
		"success": false,
		"message": message,
	}
}

func MessageResponse(msg string) gin.H {
	return gin.H{
		"success": true,
		"message": msg,
	}
}
