package main

import (
	"fmt"

	"tomato-backend/configs"
	"tomato-backend/middlewares"
	"tomato-backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := configs.LoadConfig()

	configs.ConnectionDB(cfg)
	configs.SetupDatabase()
	if err := configs.SeedAdmin(); err != nil {
		logrus.WithError(err).Fatal("seed admin failed")
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.CORSMiddleware())

	// review images
	r.Static("/uploads", "./uploads")

	routes.RegisterRoutes(r, configs.DB(), cfg)

	addr := fmt.Sprintf(":%s", cfg.Port)
	logrus.WithField("addr", addr).Info("server running")
	if err := r.Run(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
