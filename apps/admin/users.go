package main

import (
	"context"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/user"
)

// addUser creates the user or updates the one with the same email.
func (cli *commandLine) addUser(nu user.NewUser) error {
	if err := nu.Validate(cli.validate); err != nil {
		return err
	}
	usr, err := cli.usrSvc.UpdateOrCreate(context.Background(), nu)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(cli.out, "User %s saved (id %d)\n", usr.Email, usr.ID)
	return nil
}

func (cli *commandLine) resetPassword(email, pwd string) error {
	usr, err := cli.usrSvc.ResetPassword(context.Background(), email, pwd)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(cli.out, "Password of %s updated\n", usr.Email)
	return nil
}

func (cli *commandLine) listUsers() error {
	users, err := cli.usrSvc.QueryAll(context.Background())
	if err != nil {
		return err
	}
	if len(users) == 0 {
		color.New(color.FgYellow).Fprintln(cli.out, "No users yet. Create one with adduser.")
		return nil
	}

	table := tablewriter.NewWriter(cli.out)
	table.SetHeader([]string{"ID", "Email", "Name", "Role", "Created"})
	for _, usr := range users {
		table.Append([]string{
			strconv.Itoa(usr.ID),
			usr.Email,
			usr.Name,
			usr.Role,
			usr.CreatedAt.Format(core.DateLayout),
		})
	}
	table.Render()
	return nil
}
