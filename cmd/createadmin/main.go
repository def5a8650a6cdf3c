package main

import (
	"context"
	"log"
	"os"

	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/user/repository"
	"hotelier/shared/password"
)

const argLength = 3

// Creates or resets the admin account used for credential sign-in. This is
// the only path that grants the admin role.
func main() {
	if len(os.Args) < argLength {
		log.Fatal("Usage: createadmin <email> <password>")
	}

	email := os.Args[1]

	hash, err := password.Hash(os.Args[2])
	if err != nil {
		log.Fatal(err)
	}

	cfg := config.Get()
	db := postgres.New(cfg)
	users := repository.New(db, otel.New(cfg))

	if err := users.UpsertAdmin(context.Background(), email, hash); err != nil {
		log.Fatal(err)
	}

	log.Printf("admin account ready: %s", email)
}
