package main

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"kanban-api/domain"
	"kanban-api/storage"
)

// seedUsers provisions the user directory from the SEED_USERS environment
// value. Entries are comma-separated username:email pairs; a pair without
// a colon seeds the username with an empty email.
func seedUsers(ctx context.Context, store *storage.Store, spec string, logger *log.Logger) {
	if spec == "" {
		return
	}
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		username, email, _ := strings.Cut(entry, ":")
		user, err := store.CreateUser(ctx, domain.User{Username: username, Email: email})
		if err != nil {
			logger.WithError(err).WithField("username", username).Warn("unable to seed user")
			continue
		}
		logger.WithField("username", user.Username).Debug("seeded user")
	}
}
