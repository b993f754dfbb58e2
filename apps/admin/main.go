package main

import (
	"log"
	"os"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/course"
	"github.com/trezcool/masomo-admin/core/dialog"
	"github.com/trezcool/masomo-admin/core/user"
	logsvc "github.com/trezcool/masomo-admin/services/logger"
	promptsvc "github.com/trezcool/masomo-admin/services/prompt"
	restsvc "github.com/trezcool/masomo-admin/services/rest"
)

func main() {
	defer os.Exit(0)

	conf, err := core.NewConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	stdLogger := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)

	session := restsvc.NewSession(conf)
	client, err := restsvc.NewClient(conf, session, logger)
	if err != nil {
		logger.Fatal(err.Error())
	}

	cli := commandLine{
		out:     os.Stdout,
		client:  client,
		session: session,
		dialogs: dialog.NewCoordinator(promptsvc.NewTerminal(os.Stdin, os.Stdout)),
		usrSvc:  user.NewService(client, logger),
		crsSvc:  course.NewService(client, logger),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		os.Exit(1)
	}
}
