package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/user"
)

type addUserOpts struct {
	email    string
	fullName string
	roles    []string
	admin    bool
}

func (cli *commandLine) addUserCmd() *cobra.Command {
	var opts addUserOpts
	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create a user, or update the one with the same email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.email = core.CleanString(opts.email, true /* lower */)
			opts.fullName = core.CleanString(opts.fullName)
			if opts.email == "" || opts.fullName == "" {
				_ = cmd.Usage()
				return errHelp
			}
			pwd, err := cli.promptPassword(cmd)
			if err != nil {
				return err
			}
			usr, err := cli.addUser(cmd.Context(), opts, pwd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "user %s <%s> saved (roles: %v)\n", usr.FullName, usr.Email, usr.Roles)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.email, "email", "", "email of the user")
	cmd.Flags().StringVar(&opts.fullName, "name", "", "full name of the user")
	cmd.Flags().StringSliceVar(&opts.roles, "role", []string{user.RoleStudent}, "roles of the user")
	cmd.Flags().BoolVar(&opts.admin, "admin", false, "grant every role")
	return cmd
}

func (cli *commandLine) addUser(ctx context.Context, opts addUserOpts, pwd string) (user.User, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	roles := opts.roles
	if opts.admin {
		roles = user.AllRoles
	}
	for _, r := range roles {
		if !isRole(r) {
			return user.User{}, errors.Errorf("%q: unknown role", r)
		}
	}

	usr, err := cli.usrSvc.GetByEmail(ctx, opts.email)
	switch errors.Cause(err) {
	case nil:
	case user.ErrNotFound:
		usr = user.User{Email: opts.email}
	default:
		return user.User{}, err
	}
	usr.FullName = opts.fullName
	usr.Roles = roles
	usr.IsActive = true

	if err = checkPassword(pwd, usr); err != nil {
		return user.User{}, err
	}
	if err = usr.SetPassword(pwd); err != nil {
		return user.User{}, errors.Wrap(err, "hashing password")
	}
	return cli.usrSvc.Save(ctx, usr)
}

func isRole(role string) bool {
	for _, r := range user.AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
