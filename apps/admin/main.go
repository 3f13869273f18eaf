package main

import (
	"log"
	"os"

	"github.com/educhain/educhain/apps"
	"github.com/educhain/educhain/core"
	logsvc "github.com/educhain/educhain/services/logger"
	"github.com/educhain/educhain/storage"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	// migrations are run on demand by the "migrate" command
	store, err := storage.Open(conf, logger, false /* migrate */)
	if err != nil {
		logger.Fatal("setting up database", err)
	}

	cli := commandLine{
		store: store,
		svcs:  apps.NewServices(store, core.NewValidator()),
	}
	err = cli.run(os.Args)
	_ = store.Close()
	if err != nil {
		if err != errHelp {
			logger.Error("admin command failed", err)
		}
		logger.Flush()
		os.Exit(1)
	}
}
