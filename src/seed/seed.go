package seed

import (
	"context"
	"log"

	"github.com/ARQAP/museum-insights/src/config"
	"github.com/ARQAP/museum-insights/src/services"
)

// Seed creates the configured operator account if it does not exist yet.
// Without a configured password nothing is created.
func Seed(ctx context.Context, users *services.UserService, auth config.Auth) error {
	if auth.AdminUser == "" || auth.AdminPassword == "" {
		log.Println("No admin password configured, skipping user seed")
		return nil
	}

	created, err := users.EnsureUser(ctx, auth.AdminUser, auth.AdminPassword)
	if err != nil {
		log.Printf("Failed to create user: %v\n", err)
		return err
	}
	if created {
		log.Printf("User '%s' created\n", auth.AdminUser)
	} else {
		log.Printf("User '%s' already exists\n", auth.AdminUser)
	}
	return nil
}
