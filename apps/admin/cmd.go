package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/masomo-admin/core/course"
	"github.com/trezcool/masomo-admin/core/dialog"
	"github.com/trezcool/masomo-admin/core/user"
	restsvc "github.com/trezcool/masomo-admin/services/rest"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	out     io.Writer
	client  *restsvc.Client
	session *restsvc.Session
	dialogs *dialog.Coordinator
	usrSvc  *user.Service
	crsSvc  *course.Service
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -username USERNAME|EMAIL                 - log into the platform; the password is prompted next")
	fmt.Fprintln(cli.out, "  logout                                         - drop the cached session")
	fmt.Fprintln(cli.out, "  whoami                                         - show the logged-in account")
	fmt.Fprintln(cli.out, "  users [-page N] [-size N] [-search S] [-role R] - list users")
	fmt.Fprintln(cli.out, "  adduser -name NAME [-username U] [-email E] [-admin] - create a user; the password is prompted next")
	fmt.Fprintln(cli.out, "  deluser -id ID                                 - delete a user (asks for confirmation)")
	fmt.Fprintln(cli.out, "  resetpassword -username USERNAME|EMAIL         - reset a user's password; prompted next")
	fmt.Fprintln(cli.out, "  courses [-page N] [-size N] [-search S]        - list courses")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginUname := loginCmd.String("username", "", "The username or email to log in as. The password will be prompted next.")

	usersCmd := flag.NewFlagSet("users", flag.ExitOnError)
	usersPage := usersCmd.Int("page", 1, "Page to fetch.")
	usersSize := usersCmd.Int("size", 20, "Page size.")
	usersSearch := usersCmd.String("search", "", "Match on name, username or email.")
	usersRole := usersCmd.String("role", "", "Filter by role prefix, e.g. teacher:")

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserName := addUserCmd.String("name", "", "The user's full name.")
	addUserUname := addUserCmd.String("username", "", "The user's username.")
	addUserEmail := addUserCmd.String("email", "", "The user's email.")
	addUserAdmin := addUserCmd.Bool("admin", false, "Grant all roles.")

	delUserCmd := flag.NewFlagSet("deluser", flag.ExitOnError)
	delUserID := delUserCmd.String("id", "", "The user's ID.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The user's username or email. The password will be prompted next.")

	coursesCmd := flag.NewFlagSet("courses", flag.ExitOnError)
	coursesPage := coursesCmd.Int("page", 1, "Page to fetch.")
	coursesSize := coursesCmd.Int("size", 20, "Page size.")
	coursesSearch := coursesCmd.String("search", "", "Match on course code or title.")

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginUname == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginUname, string(pwd))
	case "logout":
		return cli.logout()
	case "whoami":
		return cli.whoami()
	case "users":
		if err := usersCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listUsers(*usersPage, *usersSize, *usersSearch, *usersRole)
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserName == "" || (*addUserUname == "" && *addUserEmail == "") {
			addUserCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserName, *addUserUname, *addUserEmail, string(pwd), *addUserAdmin)
	case "deluser":
		if err := delUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *delUserID == "" {
			delUserCmd.Usage()
			return errHelp
		}
		return cli.delUser(*delUserID)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordUname, string(pwd))
	case "courses":
		if err := coursesCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listCourses(*coursesPage, *coursesSize, *coursesSearch)
	default:
		cli.printUsage()
		return errHelp
	}
}
