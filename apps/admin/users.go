package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/trezcool/masomo-admin/core/dialog"
	"github.com/trezcool/masomo-admin/core/user"
)

func (cli *commandLine) listUsers(page, size int, search, role string) error {
	state, err := cli.usrSvc.List(context.Background(), page, size, &user.Filter{Search: search, Role: role})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tUSERNAME\tEMAIL\tROLES\tACTIVE")
	for _, usr := range state.PageSlice() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\n",
			usr.ID, usr.Name, usr.Username, usr.Email, strings.Join(usr.Roles, ","), usr.IsActive)
	}
	if err = w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "page %d/%d (%d users)\n",
		state.PageInfo.CurrentPage, state.PageInfo.TotalPages, state.PageInfo.TotalItems)
	return nil
}

func (cli *commandLine) addUser(name, uname, email, pwd string, isAdmin bool) error {
	nu := user.NewUser{
		Name:            name,
		Username:        uname,
		Email:           email,
		Password:        pwd,
		PasswordConfirm: pwd,
	}
	if isAdmin {
		nu.Roles = user.AllRoles
	}
	usr, err := cli.usrSvc.Create(context.Background(), nu)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "created user %s\n", usr.ID)
	return nil
}

func (cli *commandLine) delUser(id string) error {
	ctx := context.Background()
	ok, err := cli.dialogs.DeleteConfirm(ctx, "Delete user", fmt.Sprintf("Delete user %s?", id))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cli.out, "aborted")
		return nil
	}
	if err = cli.usrSvc.Delete(ctx, id); err != nil {
		return err
	}
	return cli.dialogs.Notify(ctx, dialog.Request{
		Title:   "User deleted",
		Message: fmt.Sprintf("user %s was deleted", id),
		Kind:    dialog.Success,
	})
}
