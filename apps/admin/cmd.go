package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/educhain/educhain/apps"
	"github.com/educhain/educhain/core/user"
	"github.com/educhain/educhain/storage"
	"github.com/educhain/educhain/storage/database"
)

var (
	readPasswordFunc = term.ReadPassword      // mockable
	gooseRunFunc     = database.RunMigrations // mockable

	errHelp    = errors.New("help provided")
	errNoSQLDB = apps.NewArgumentError("migrations require the postgres engine")
)

type commandLine struct {
	store *storage.Store
	svcs  *apps.Services
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run a goose command (up, down, redo, status, version...)")
	fmt.Println("  adduser -username USERNAME -fullname NAME -email EMAIL [-role ROLE] - create a user")
	fmt.Println("  resetpassword -username USERNAME - reset user's password")
	fmt.Println("  seed - replace users, courses and grades with the demo data set")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ContinueOnError)
	addUserUname := addUserCmd.String("username", "", "The user's username. The password will be prompted next.")
	addUserName := addUserCmd.String("fullname", "", "The user's full name.")
	addUserEmail := addUserCmd.String("email", "", "The user's email.")
	addUserRole := addUserCmd.String("role", user.RoleStudent, "One of student, teacher or admin.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ContinueOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The user's username. The password will be prompted next.")

	ctx := context.Background()

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserUname == "" || *addUserName == "" || *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		_, err = cli.svcs.Users.Create(ctx, user.NewUser{
			Username: *addUserUname,
			FullName: *addUserName,
			Email:    *addUserEmail,
			Password: pwd,
			Role:     *addUserRole,
		})
		return err

	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(ctx, *resetPasswordUname, pwd)

	case "seed":
		return cli.seed(ctx)

	default:
		cli.printUsage()
		return errHelp
	}
}

func promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) migrate(args []string) error {
	if cli.store.DB == nil {
		return errNoSQLDB
	}
	return gooseRunFunc(cli.store.DB, args[0], args[1:]...)
}

func (cli *commandLine) resetPassword(ctx context.Context, uname, pwd string) error {
	usr, err := cli.store.Users.GetUserByUsername(ctx, uname)
	if err != nil {
		return err
	}
	_, err = cli.svcs.Users.Update(ctx, usr.ID, user.UpdateUser{Password: &pwd})
	return err
}
