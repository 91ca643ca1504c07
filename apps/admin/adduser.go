package main

import (
	"context"
	"strings"

	"github.com/devtna/jlsfinder/core"
	"github.com/devtna/jlsfinder/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(email, uname, pwd string, isAdmin bool) error {
	ctx := context.Background()
	cli.store.Bootstrap(ctx)

	email = core.CleanString(email, true /* lower */)
	uname = core.CleanString(uname)
	if uname == "" {
		uname = strings.SplitN(email, "@", 2)[0]
	}
	role := user.RoleUser
	if isAdmin {
		role = user.RoleAdmin
	}

	if existing, ok := cli.store.GetUserByEmail(email); ok {
		existing.Password = pwd
		existing.Role = role
		existing.Username = uname
		_, err := cli.store.UpdateUser(ctx, existing)
		return err
	}

	_, err := cli.store.AddUser(ctx, user.User{
		Email:     email,
		Password:  pwd,
		Role:      role,
		Username:  uname,
		AvatarURL: user.AvatarURL(uname),
	})
	return err
}
