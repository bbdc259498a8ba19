package controllers

import (
	"net/http"

	authorization "SehatCare/config/authorization"
	"SehatCare/role"
	"SehatCare/services"
	"SehatCare/util"

	"github.com/gin-gonic/gin"
)

func Meet(api *gin.RouterGroup) {
	meet := api.Group("/meet", authorization.JWTAuth(), authorization.Authorize(role.Doctor))
	{
		meet.POST("/appointments/:appointmentId/meet", CreateMeet)
		meet.POST("/appointments/:appointmentId/prescription", UploadPrescription)
	}
}

func CreateMeet(c *gin.Context) {
	link, err := services.CreateMeet(c, c.Param("appointmentId"))
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Meet created successfully",
		"meetLink": link,
	})
}

/*
* Read the prescription file from the form
* Pass to the service, the email goes out in the background
 */
func UploadPrescription(c *gin.Context) {
	file, err := formFile(c, "prescription", services.DocumentRule, false)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	url, err := services.UploadPrescription(c, c.Param("appointmentId"), file)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         util.PRESCRIPTION_UPLOADED,
		"prescriptionUrl": url,
	})
}
