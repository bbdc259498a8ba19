package controllers

import (
	"net/http"

	authorization "SehatCare/config/authorization"
	"SehatCare/services"
	"SehatCare/util"

	"github.com/gin-gonic/gin"
)

func Doctor(api *gin.RouterGroup) {
	doctor := api.Group("/doctor")
	{
		doctor.GET("", FetchAllDoctors)
		doctor.GET("/hospital/:hospitalId", FetchDoctorsByHospital)
		doctor.GET("/:id", FetchDoctorByID)
		doctor.POST("", authorization.JWTAuth(), CreateDoctor)
		doctor.PUT("/:id", authorization.JWTAuth(), UpdateDoctor)
		doctor.DELETE("/:id", authorization.JWTAuth(), DeleteDoctor)
	}
}

func CreateDoctor(c *gin.Context) {
	var body services.DoctorInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	doctor, err := services.CreateDoctor(c, body)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(doctor))
}

func FetchAllDoctors(c *gin.Context) {
	doctors, err := services.FetchAllDoctors(c)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctors))
}

func FetchDoctorsByHospital(c *gin.Context) {
	doctors, err := services.FetchDoctorsByHospital(c, c.Param("hospitalId"))
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctors))
}

func FetchDoctorByID(c *gin.Context) {
	doctor, err := services.FetchDoctorByID(c, c.Param("id"))
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctor))
}

func UpdateDoctor(c *gin.Context) {
	var body services.DoctorInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	doctor, err := services.UpdateDoctor(c, c.Param("id"), body)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctor))
}

func DeleteDoctor(c *gin.Context) {
	if err := services.DeleteDoctor(c, c.Param("id")); err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Doctor deleted successfully"))
}
