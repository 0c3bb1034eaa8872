package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prabin-sth/ThreadKart/config"
	"github.com/prabin-sth/ThreadKart/controllers"
	"github.com/prabin-sth/ThreadKart/routes"
	"github.com/prabin-sth/ThreadKart/utils"
)

func main() {
	utils.InitLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Failed to load config: %v", err)
		panic(err)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	config.InitDB()

	if err := controllers.CreateSampleAdmin(); err != nil {
		utils.LogError("Failed to seed admin account: %v", err)
	}

	router := routes.SetupRouter()

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	utils.LogInfo("Starting server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Server exited: %v", err)
		panic(err)
	}
}
