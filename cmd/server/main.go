// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/unoplay/uno-server/internal/cache"
	"github.com/unoplay/uno-server/internal/database"
	"github.com/unoplay/uno-server/internal/handlers"
	"github.com/unoplay/uno-server/internal/middleware"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	// Stats and the event queue are optional collaborators; rooms run fine
	// without either.
	if os.Getenv("PG_HOST") != "" {
		if err := database.ConnectDB(); err != nil {
			log.Fatalf("database connect: %v", err)
		}
		logger.Info("Connected to postgres")
	} else {
		logger.Warn("PG_HOST not set, player stats disabled")
	}
	if os.Getenv("REDIS_ADDR") != "" {
		if err := cache.ConnectRedis(); err != nil {
			log.Fatalf("redis connect: %v", err)
		}
		logger.Info("Connected to redis")
	} else {
		logger.Warn("REDIS_ADDR not set, room event queue disabled")
	}

	srv := handlers.NewRoomServer(logger)

	mux := http.NewServeMux()
	mux.Handle("/room/ws", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.RoomWSHandler(logger, srv),
	)))
	mux.Handle("/stats", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.PlayerStatsHandler,
	)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
