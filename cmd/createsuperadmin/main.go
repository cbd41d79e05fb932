// Command createsuperadmin provisions the first super admin account.
//
// On success it prints the email and the plaintext password it was given.
// That is only acceptable for one-time provisioning on a trusted terminal;
// do not copy this output pattern anywhere else.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Stewz00/school-service/internal/auth"
	"github.com/Stewz00/school-service/internal/config"
	"github.com/Stewz00/school-service/internal/database"
	"github.com/Stewz00/school-service/internal/repository"
	"github.com/Stewz00/school-service/internal/service"
)

type superAdminCreator interface {
	CreateSuperAdmin(ctx context.Context, email, password, name string) (bool, error)
}

type options struct {
	email    string
	password string
	name     string
	cost     int
}

func parseFlags(args []string, defaultCost int) (options, error) {
	var o options
	fs := flag.NewFlagSet("createsuperadmin", flag.ContinueOnError)
	fs.StringVar(&o.email, "email", service.DefaultSuperAdminEmail, "Email for super admin")
	fs.StringVar(&o.password, "password", service.DefaultSuperAdminPassword, "Password for super admin")
	fs.StringVar(&o.name, "name", service.DefaultSuperAdminName, "Name for super admin")
	fs.IntVar(&o.cost, "bcrypt-cost", defaultCost, "bcrypt cost for the password hash (defaults to BCRYPT_COST)")
	err := fs.Parse(args)
	return o, err
}

func main() {
	defaultCost, err := config.LoadBcryptCost()
	if err != nil {
		log.Fatal(err)
	}
	opts, err := parseFlags(os.Args[1:], defaultCost)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	dbURL, err := config.LoadDatabaseURL()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := database.Migrate(ctx, dbURL); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	db, err := database.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	hasher, err := auth.NewBcryptHasher(opts.cost)
	if err != nil {
		log.Fatal(err)
	}

	bootstrap := service.NewBootstrapService(repository.NewAccountRepository(db), hasher)
	if err := run(ctx, bootstrap, os.Stdout, opts.email, opts.password, opts.name); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, creator superAdminCreator, out io.Writer, email, password, name string) error {
	created, err := creator.CreateSuperAdmin(ctx, email, password, name)
	if err != nil {
		return fmt.Errorf("create super admin: %w", err)
	}
	if !created {
		fmt.Fprintf(out, "WARNING: User %s already exists\n", email)
		return nil
	}

	fmt.Fprintf(out, "Successfully created super admin: %s\n", email)
	fmt.Fprintf(out, "Email: %s\n", email)
	fmt.Fprintf(out, "Password: %s\n", password)
	return nil
}
