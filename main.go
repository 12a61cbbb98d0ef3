package main

import (
	"api/config"
	"api/database"
	"api/realtime"
	v1 "api/routes/v1"
	"log"

	_ "api/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Tiro API
// @version 1.0
// @description Scoring, ranking and record engine for shooting competitions
// @BasePath /api/v1
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	config.Load()
	database.InitDB()

	hub := realtime.NewHub()
	go hub.Run()
	defer hub.Stop()

	r := gin.Default()

	v1.Register(r, hub)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Printf("Starting server on port %s", config.Port)
	if err := r.Run(":" + config.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
