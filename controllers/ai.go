package controllers

import (
	"net/http"

	"SehatCare/services"
	"SehatCare/util"

	"github.com/gin-gonic/gin"
)

func AI(api *gin.RouterGroup, limit gin.HandlerFunc) {
	ai := api.Group("/ai", limit)
	{
		ai.POST("/symptoms", CheckSymptoms)
		ai.POST("/counselor", Counsel)
	}
}

func CheckSymptoms(c *gin.Context) {
	var body struct {
		Symptoms string `json:"symptoms"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		err = util.Validation(util.SYMPTOMS_REQUIRED)
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	analysis, err := services.CheckSymptoms(c, body.Symptoms)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": util.AI_ANALYSIS_COMPLETE,
		"data":    analysis,
	})
}

func Counsel(c *gin.Context) {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		err = util.Validation(util.MESSAGE_REQUIRED)
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	reply, err := services.Counsel(c, body.Message)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(reply))
}
