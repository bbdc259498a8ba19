package controllers

import (
	"net/http"

	authorization "SehatCare/config/authorization"
	"SehatCare/services"
	"SehatCare/util"

	"github.com/gin-gonic/gin"
)

func Vault(api *gin.RouterGroup) {
	vault := api.Group("/vault", authorization.JWTAuth())
	{
		vault.POST("/files", UploadToVault)
		vault.GET("/files", ListVaultFiles)
	}
}

func UploadToVault(c *gin.Context) {
	file, err := formFile(c, "file", services.VaultRule, false)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	stored, err := services.StoreInVault(c, file)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(stored))
}

func ListVaultFiles(c *gin.Context) {
	files, err := services.ListVaultFiles(c)
	if err != nil {
		c.JSON(util.StatusFor(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(files))
}
