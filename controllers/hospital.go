package controllers

import (
	"net/http"

	authorization "SehatCare/config/authorization"
	"SehatCare/services"
	"SehatCare/util"

	"github.com/gin-gonic/gin"
)

func Hospital(api *gin.RouterGroup) {
	hospital := api.Group("/hospital")
	{
		hospital.GET("", FetchAllHospitals)
		hospital.GET("/:id", FetchHospitalByID)
		hospital.POST("", authorization.JWTAuth(), CreateHospital)
		hospital.PUT("/:id", authorization.JWTAuth(), UpdateHospital)
		hospital.DELETE("/:id", authorization.JWTAuth(), DeleteHospital)
	}
}

func CreateHospital(c *gin.Context) {
	var body services.HospitalInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	hospital, err := services.CreateHospital(c, body)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(hospital))
}

func FetchAllHospitals(c *gin.Context) {
	hospitals, err := services.FetchAllHospitals(c)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(hospitals))
}

func FetchHospitalByID(c *gin.Context) {
	hospital, err := services.FetchHospitalByID(c, c.Param("id"))
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(hospital))
}

func UpdateHospital(c *gin.Context) {
	var body services.HospitalInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	hospital, err := services.UpdateHospital(c, c.Param("id"), body)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(hospital))
}

func DeleteHospital(c *gin.Context) {
	if err := services.DeleteHospital(c, c.Param("id")); err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Hospital deleted successfully"))
}
