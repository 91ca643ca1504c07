package main

import (
	"context"
	"fmt"
	"log"
	"os"

	echoapi "github.com/devtna/jlsfinder/apps/api/echo"
	"github.com/devtna/jlsfinder/core"
	"github.com/devtna/jlsfinder/core/directory"
	"github.com/devtna/jlsfinder/core/session"
	logsvc "github.com/devtna/jlsfinder/services/logger"
	"github.com/devtna/jlsfinder/storage"
	"github.com/devtna/jlsfinder/storage/kvstore"
	"github.com/devtna/jlsfinder/storage/local"
	"github.com/devtna/jlsfinder/storage/postgres"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	// set up loggers
	var logger core.Logger
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	if core.Conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, core.Conf)
	}
	logger.Enable(true)

	// local key/value store; holds the three collections in local mode and
	// the session record in both modes
	kv, err := kvstore.Open(core.Conf.DataDir)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening data dir: %v", err), err)
	}

	// backend mode is decided once, here, and never revisited
	var backend storage.Backend
	remote := core.Conf.RemoteEnabled()
	if remote {
		pg, err := postgres.Open(core.Conf, logger)
		if err != nil {
			logger.Fatal(fmt.Sprintf("connecting to hosted backend: %v", err), err)
		}
		if err = pg.Migrate(); err != nil {
			logger.Fatal(fmt.Sprintf("migrating hosted backend: %v", err), err)
		}
		backend = pg
	} else {
		backend = local.NewBackend(kv, directory.SeedSchools, directory.SeedUsers, directory.SeedReviews)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Error("closing backend", err)
		}
	}()

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", core.Conf.Build))
	defer logger.Info("Application stopped")

	store := directory.NewStore(backend, remote, logger)
	store.Bootstrap(context.Background())

	sess, err := session.NewService(store, kv, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("restoring session: %v", err), err)
	}

	// =========================================================================
	// Start API Service

	app := echoapi.NewServer(
		&echoapi.Options{
			Address: core.Conf.ServerAddress(),
			Store:   store,
			Session: sess,
			Logger:  logger,
		},
	)
	app.Start()
}
