package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/cortemaestro/barbershop-api/internal/config"
	dbpkg "github.com/cortemaestro/barbershop-api/internal/db"
	"github.com/cortemaestro/barbershop-api/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	routes.RegisterRoutes(r, db, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
