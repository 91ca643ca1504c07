package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/devtna/jlsfinder/core/directory"
	"github.com/devtna/jlsfinder/storage/postgres"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	store *directory.Store
	pg    *postgres.Backend // nil in local mode
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate [COMMAND [ARGS...]]     - run schema migrations on the hosted backend (default: up)")
	fmt.Println("  seed                            - load the bundled dataset into the hosted backend")
	fmt.Println("  export [-o FILE]                - write the schools collection as seed source")
	fmt.Println("  adduser -email EMAIL [-admin]   - create or update an account; the password is prompted")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportOut := exportCmd.String("o", "", "Output file; stdout when empty.")

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserEmail := addUserCmd.String("email", "", "The account email. The password will be prompted next.")
	addUserUname := addUserCmd.String("username", "", "Display name; defaults to the email's local part.")
	addUserAdmin := addUserCmd.Bool("admin", false, "Grant the admin role.")

	switch args[1] {
	case "migrate":
		return cli.migrate(args[2:])
	case "seed":
		return cli.seed()
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.export(*exportOut)
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserEmail, *addUserUname, string(pwd), *addUserAdmin)
	default:
		cli.printUsage()
		return errHelp
	}
}
