package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/course"
	"github.com/trezcool/masomo-admin/core/dialog"
	"github.com/trezcool/masomo-admin/core/user"
	promptsvc "github.com/trezcool/masomo-admin/services/prompt"
	testutil "github.com/trezcool/masomo-admin/tests"
)

// setup returns a CLI logged in against a fake platform API; input scripts the
// dialog prompts (one line per dialog).
func setup(t *testing.T, input string) (*commandLine, *testutil.APIServer, *bytes.Buffer) {
	api := testutil.NewAPIServer(t)
	client, session := testutil.Client(t, api)

	out := &bytes.Buffer{}
	return &commandLine{
		out:     out,
		client:  client,
		session: session,
		dialogs: dialog.NewCoordinator(promptsvc.NewTerminal(strings.NewReader(input), out)),
		usrSvc:  user.NewService(client, core.NopLogger{}),
		crsSvc:  course.NewService(client, core.NopLogger{}),
	}, api, out
}

func mockPassword(t *testing.T, pwd string) {
	t.Helper()
	orig := readPasswordFunc
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte(pwd), nil }
	t.Cleanup(func() { readPasswordFunc = orig })
}

type cliTest struct {
	name       string
	args       []string // without program name
	pwd        string   // fed to the password prompt
	wantErr    error
	wantOutput string
}

func Test_commandLine_run(t *testing.T) {
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "login: no username", args: []string{"login"}, wantErr: errHelp},
		{name: "login: no password", args: []string{"login", "-username", "user1"}, wantErr: errHelp},
		{name: "adduser: no name", args: []string{"adduser", "-username", "tim"}, pwd: "S3cr3t.Pwd", wantErr: errHelp},
		{name: "adduser: no username nor email", args: []string{"adduser", "-name", "Tim"}, pwd: "S3cr3t.Pwd", wantErr: errHelp},
		{name: "adduser: no password", args: []string{"adduser", "-name", "Tim", "-username", "timothy"}, wantErr: errHelp},
		{name: "deluser: no id", args: []string{"deluser"}, wantErr: errHelp},
		{name: "whoami", args: []string{"whoami"}, wantOutput: "user1 <user1@test.cd>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, _, out := setup(t, "")
			mockPassword(t, tt.pwd)

			args := append([]string{"admin"}, tt.args...)
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantOutput != "" {
				assert.Contains(t, out.String(), tt.wantOutput)
			}
		})
	}
}

func Test_commandLine_login(t *testing.T) {
	cli, api, out := setup(t, "")

	mockPassword(t, "nope")
	err := cli.run([]string{"admin", "login", "-username", "user1"})
	var aerr core.AuthError
	assert.ErrorAs(t, err, &aerr)

	mockPassword(t, api.Password())
	if err := cli.run([]string{"admin", "login", "-username", "user1"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}
	assert.Contains(t, out.String(), "logged in as user1")

	if err := cli.run([]string{"admin", "logout"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}
	assert.False(t, cli.session.Authenticated())

	out.Reset()
	if err := cli.run([]string{"admin", "whoami"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}
	assert.Contains(t, out.String(), "not logged in")
}

func Test_commandLine_users(t *testing.T) {
	cli, api, out := setup(t, "")
	api.SeedUsers(25) // plus the login user

	if err := cli.run([]string{"admin", "users", "-page", "1", "-size", "10"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}
	assert.Contains(t, out.String(), "page 1/3 (26 users)")
	assert.Contains(t, out.String(), "user2@test.cd")

	out.Reset()
	if err := cli.run([]string{"admin", "users", "-search", "user13"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}
	assert.Contains(t, out.String(), "user13@test.cd")
	assert.Contains(t, out.String(), "page 1/1 (1 users)")
}

func Test_commandLine_addUser(t *testing.T) {
	cli, _, out := setup(t, "")
	mockPassword(t, "S3cr3t.Pwd")

	if err := cli.run([]string{"admin", "adduser", "-name", "Tim O", "-username", "timothy", "-email", "tim@test.cd", "-admin"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}
	assert.Contains(t, out.String(), "created user")

	state, err := cli.usrSvc.List(context.Background(), 1, 10, &user.Filter{Search: "timothy"})
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if assert.Len(t, state.Items, 1) {
		assert.Equal(t, user.AllRoles, state.Items[0].Roles)
	}

	// rejected locally before any round trip
	mockPassword(t, "2short")
	err = cli.run([]string{"admin", "adduser", "-name", "Tim", "-username", "timtwo"})
	var verr *core.ValidationError
	if assert.ErrorAs(t, err, &verr) {
		assert.Contains(t, verr.FieldMap(), "password")
	}

	// duplicate username is the server's call
	mockPassword(t, "S3cr3t.Pwd")
	err = cli.run([]string{"admin", "adduser", "-name", "Tim Again", "-username", "timothy"})
	var cerr core.ConflictError
	assert.ErrorAs(t, err, &cerr)
}

func Test_commandLine_delUser(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		cli, api, out := setup(t, "y\n\n") // confirm the delete, dismiss the notice
		usr := api.SeedUsers(1)[0]

		if err := cli.run([]string{"admin", "deluser", "-id", usr.ID}); err != nil {
			t.Fatalf("cli.run() failed: %v", err)
		}
		assert.Contains(t, out.String(), "this cannot be undone")
		assert.Contains(t, out.String(), "User deleted")

		_, err := cli.usrSvc.Get(context.Background(), usr.ID)
		assert.True(t, core.IsNotFound(err))
	})

	t.Run("declined", func(t *testing.T) {
		cli, api, out := setup(t, "n\n")
		usr := api.SeedUsers(1)[0]

		if err := cli.run([]string{"admin", "deluser", "-id", usr.ID}); err != nil {
			t.Fatalf("cli.run() failed: %v", err)
		}
		assert.Contains(t, out.String(), "aborted")

		if _, err := cli.usrSvc.Get(context.Background(), usr.ID); err != nil {
			t.Errorf("Get() failed: %v", err) // still there
		}
	})
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli, api, out := setup(t, "")
	usr := api.SeedUsers(1)[0]

	tests := []cliTest{
		{name: "no username", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", usr.Username}, wantErr: errHelp},
		{
			name: "reset with username", args: []string{"resetpassword", "-username", usr.Username},
			pwd: "N3w.S3cr3t", wantOutput: "password reset for " + usr.Username,
		},
		{
			name: "reset with email", args: []string{"resetpassword", "-username", usr.Email},
			pwd: "N3w.S3cr3t", wantOutput: "password reset for " + usr.Username,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPassword(t, tt.pwd)
			out.Reset()

			if err := cli.run(append([]string{"admin"}, tt.args...)); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantOutput != "" {
				assert.Contains(t, out.String(), tt.wantOutput)
			}
		})
	}

	t.Run("user not found", func(t *testing.T) {
		mockPassword(t, "N3w.S3cr3t")
		err := cli.run([]string{"admin", "resetpassword", "-username", "lol"})
		assert.True(t, core.IsNotFound(err))
	})
}

func Test_commandLine_courses(t *testing.T) {
	cli, api, out := setup(t, "")
	api.SeedCourses(7)

	if err := cli.run([]string{"admin", "courses", "-page", "2", "-size", "3"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}
	assert.Contains(t, out.String(), "page 2/3 (7 courses)")
}
