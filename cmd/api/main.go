package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"blitzboat/backend-go/internal/config"
	internalhttp "blitzboat/backend-go/internal/http"
	"blitzboat/backend-go/internal/services"
)

func main() {
	_ = godotenv.Load(
		".env",
		".env.local",
		"../.env",
		"../.env.local",
	)
	cfg := config.Load()
	cache := services.NewCache(cfg)

	h := internalhttp.NewRouter(cfg, cache)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("blitzboat backend listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
