package controllers

import (
	"net/http"

	authorization "SehatCare/config/authorization"
	"SehatCare/models"
	"SehatCare/role"
	"SehatCare/services"
	"SehatCare/util"

	"github.com/gin-gonic/gin"
)

func Prescription(api *gin.RouterGroup) {
	api.POST("/create-prescription", authorization.JWTAuth(), authorization.Authorize(role.Doctor), CreatePrescription)
	api.POST("/prescription/verify", VerifyPrescription)
}

func CreatePrescription(c *gin.Context) {
	var body struct {
		PrescriptionData *models.PrescriptionData `json:"prescriptionData"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		err = util.Validation(util.MISSING_PRESCRIPTION_DATA)
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	signed, err := services.CreatePrescription(body.PrescriptionData)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Prescription created successfully",
		"filePath":  signed.FilePath,
		"signature": signed.Signature,
	})
}

func VerifyPrescription(c *gin.Context) {
	var body services.SignedPrescription
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	if err := services.VerifyPrescription(body.FilePath, body.Signature); err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(gin.H{"valid": true}))
}
