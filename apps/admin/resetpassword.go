package main

import (
	"context"
	"fmt"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/user"
)

// resetPassword sets a new password on the user matching uname (username or
// email).
func (cli *commandLine) resetPassword(uname, pwd string) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)

	state, err := cli.usrSvc.List(ctx, 1, 2, &user.Filter{Search: uname})
	if err != nil {
		return err
	}
	var usr *user.User
	for i := range state.Items {
		if state.Items[i].Username == uname || state.Items[i].Email == uname {
			usr = &state.Items[i]
			break
		}
	}
	if usr == nil {
		return core.NotFoundError{Resource: "user", ID: uname}
	}

	if _, err = cli.usrSvc.Update(ctx, usr.ID, user.UpdateUser{
		Password:        pwd,
		PasswordConfirm: pwd,
	}); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "password reset for %s\n", usr.Username)
	return nil
}
