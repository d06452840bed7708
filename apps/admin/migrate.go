package main

import (
	"errors"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/storage/database"
)

var (
	migrateFunc = database.RunMigrations // mockable

	errNoDatabase = errors.New("migrations need the postgres database engine")
)

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errNoDatabase
	}
	return migrateFunc(args[0], cli.db, args[1:]...)
}
