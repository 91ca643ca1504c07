package main

import (
	"context"
	"errors"
)

func (cli *commandLine) seed() error {
	if !cli.store.Remote() {
		return errors.New("seeding requires the hosted backend (set BACKEND_URL and BACKEND_KEY)")
	}
	return cli.store.SeedBackend(context.Background())
}
