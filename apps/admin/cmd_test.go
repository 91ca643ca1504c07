package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/devtna/jlsfinder/core/directory"
	"github.com/devtna/jlsfinder/core/user"
	testutil "github.com/devtna/jlsfinder/tests"
)

func setup(t *testing.T) *commandLine {
	store, _ := testutil.TempStore(t)
	return &commandLine{store: store}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_localModeGuards(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "migrate needs the hosted backend", args: []string{"migrate", "up"},
			wantErrStr: "migrations require the hosted backend (set BACKEND_URL and BACKEND_KEY)"},
		{name: "seed needs the hosted backend", args: []string{"seed"},
			wantErrStr: "seeding requires the hosted backend (set BACKEND_URL and BACKEND_KEY)"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			} else if tt.wantErrStr != "" {
				if err == nil || err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
			} else if err != nil {
				t.Errorf("cli.run() unexpected error = %v", err)
			}
		})
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"adduser", "-email", "new@test.jp"}, wantErr: errHelp},
		{name: "create user", args: []string{"adduser", "-email", "new@test.jp"}, extra: extra{pwd: "secret1"}},
		{name: "create admin", args: []string{"adduser", "-email", "boss@test.jp", "-admin"}, extra: extra{pwd: "secret2"}},
		{name: "update existing", args: []string{"adduser", "-email", "new@test.jp", "-username", "newname"}, extra: extra{pwd: "changed"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	usr, ok := cli.store.GetUserByEmail("new@test.jp")
	if !ok {
		t.Fatal("expected new@test.jp to exist")
	}
	if usr.Password != "changed" {
		t.Errorf("password = %q, want %q", usr.Password, "changed")
	}
	if usr.Username != "newname" {
		t.Errorf("username = %q, want %q", usr.Username, "newname")
	}
	if usr.Role != user.RoleUser {
		t.Errorf("role = %q, want %q", usr.Role, user.RoleUser)
	}

	boss, ok := cli.store.GetUserByEmail("boss@test.jp")
	if !ok {
		t.Fatal("expected boss@test.jp to exist")
	}
	if !boss.IsAdmin() {
		t.Error("expected boss@test.jp to be an admin")
	}
	if boss.Username != "boss" {
		t.Errorf("username = %q, want the email's local part", boss.Username)
	}
}

func Test_commandLine_export(t *testing.T) {
	cli := setup(t)
	out := filepath.Join(t.TempDir(), "seed_schools.go")

	if err := cli.run([]string{"admin", "export", "-o", out}); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.HasPrefix(string(data), "// Code generated") {
		t.Error("export is missing the generated-code header")
	}

	parsed, err := directory.ParseSeedSource(string(data))
	if err != nil {
		t.Fatalf("ParseSeedSource() failed: %v", err)
	}
	if len(parsed) != len(directory.SeedSchools) {
		t.Errorf("parsed %d schools, want %d", len(parsed), len(directory.SeedSchools))
	}
}
