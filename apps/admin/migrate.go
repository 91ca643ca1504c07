package main

import (
	"errors"

	"github.com/pressly/goose/v3"

	appfs "github.com/devtna/jlsfinder/fs"
)

var gooseRunFunc = goose.Run // mockable

func (cli *commandLine) migrate(args []string) error {
	if cli.pg == nil {
		return errors.New("migrations require the hosted backend (set BACKEND_URL and BACKEND_KEY)")
	}

	goose.SetBaseFS(appfs.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	command := "up"
	arguments := make([]string, 0)
	if len(args) > 0 {
		command = args[0]
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(command, cli.pg.DB().DB, "migrations", arguments...)
}
