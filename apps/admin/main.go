package main

import (
	"io"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/apps/api/di"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	c, err := di.New(conf, io.Discard)
	if err != nil {
		logger.Fatal(err)
	}

	cli := commandLine{
		usrSvc:   c.UserSvc,
		validate: c.Validate,
		out:      os.Stdout,
	}
	if c.DB != nil {
		cli.db = c.DB.DB
	}

	err = cli.run(os.Args)
	_ = c.Close()
	if err != nil {
		if err != errHelp {
			color.Red("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
