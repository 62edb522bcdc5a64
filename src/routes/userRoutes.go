package routes

import (
	"github.com/ARQAP/museum-insights/src/controllers"
	"github.com/ARQAP/museum-insights/src/services"
	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(router *gin.Engine, service *services.UserService) {
	controller := controllers.NewUserController(service)

	router.POST("/login", controller.AuthenticateUser)
}
