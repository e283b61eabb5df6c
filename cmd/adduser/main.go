// Command adduser creates an admin account.  There is no signup page;
// accounts are provisioned from the server host.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/uowclimb/society-seats/internal/config"
	"github.com/uowclimb/society-seats/internal/database"
	"github.com/uowclimb/society-seats/internal/repository"
)

func main() {
	username := flag.String("u", "", "username for the new admin")
	password := flag.String("p", "", "password for the new admin")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("both -u and -p must be provided")
	}

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("database:", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatal("schema:", err)
	}

	users := repository.NewUserRepo(db)
	id, err := users.Create(ctx, *username, *password, cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			log.Fatalf("user %q already exists", *username)
		}
		log.Fatal("create user:", err)
	}
	fmt.Printf("created user %q (id %d)\n", *username, id)
}
