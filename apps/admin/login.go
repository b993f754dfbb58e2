package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) login(uname, pwd string) error {
	if err := cli.client.Login(context.Background(), uname, pwd); err != nil {
		return err
	}
	claims := cli.session.Claims()
	if claims != nil && claims.Username != "" {
		fmt.Fprintf(cli.out, "logged in as %s\n", claims.Username)
	} else {
		fmt.Fprintln(cli.out, "logged in")
	}
	return nil
}

func (cli *commandLine) logout() error {
	if err := cli.session.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "logged out")
	return nil
}

func (cli *commandLine) whoami() error {
	claims := cli.session.Claims()
	if claims == nil || !cli.session.Authenticated() {
		fmt.Fprintln(cli.out, "not logged in")
		return nil
	}
	fmt.Fprintf(cli.out, "%s <%s>\n", claims.Username, claims.Email)
	if claims.IsAdmin {
		fmt.Fprintln(cli.out, "admin")
	}
	return nil
}
