// Command devtoken prints a bearer token signed with JWT_SECRET for local testing.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/finance_tracker/internal/platform/config"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/google/uuid"
)

func main() {
	userID := flag.String("user", "", "user id to put in the sub claim (random when empty)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *userID == "" {
		*userID = uuid.NewString()
	}

	token, err := utils.GenerateJWT(*userID, cfg.JWTSecret, *ttl, cfg.JWTIssuer)
	if err != nil {
		slog.Error("Failed to sign token", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(token)
}
