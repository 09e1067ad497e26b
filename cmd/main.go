package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/AlexSaifo/school-management-system-sub002/config"
	"github.com/AlexSaifo/school-management-system-sub002/database"
	"github.com/AlexSaifo/school-management-system-sub002/handlers"
	"github.com/AlexSaifo/school-management-system-sub002/routes"
)

func main() {
	cfg := config.Load()

	// fail fast when the database is down
	database.Connect(cfg)
	database.ConnectRedis(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	e.Validator = handlers.NewValidator()

	routes.Register(e, cfg)

	log.Printf("listening on :%s (%s)", cfg.AppPort, cfg.AppEnv)
	e.Logger.Fatal(e.Start(":" + cfg.AppPort))
}
