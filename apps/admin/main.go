package main

import (
	"log"
	"os"

	"github.com/devtna/jlsfinder/core"
	"github.com/devtna/jlsfinder/core/directory"
	logsvc "github.com/devtna/jlsfinder/services/logger"
	"github.com/devtna/jlsfinder/storage"
	"github.com/devtna/jlsfinder/storage/kvstore"
	"github.com/devtna/jlsfinder/storage/local"
	"github.com/devtna/jlsfinder/storage/postgres"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	applog := logsvc.NewConsoleLogger(logger)
	applog.Enable(true)

	kv, err := kvstore.Open(core.Conf.DataDir)
	errAndDie(err)

	// same backend selection as the API server
	var backend storage.Backend
	var pg *postgres.Backend
	remote := core.Conf.RemoteEnabled()
	if remote {
		pg, err = postgres.Open(core.Conf, applog)
		errAndDie(err)
		backend = pg
	} else {
		backend = local.NewBackend(kv, directory.SeedSchools, directory.SeedUsers, directory.SeedReviews)
	}
	defer backend.Close()

	// start CLI
	cli := commandLine{
		store: directory.NewStore(backend, remote, applog),
		pg:    pg,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
