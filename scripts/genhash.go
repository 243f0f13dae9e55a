// One-off: go run scripts/genhash.go [--cost N] [password]
// Prints a bcrypt hash suitable for seeding users.password_hash. The cost
// defaults to BCRYPT_COST.
package main

import (
	"fmt"
	"os"

	"TaskTracker/internal/config"
	"TaskTracker/internal/service"

	"github.com/spf13/pflag"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	flags := pflag.NewFlagSet("genhash", pflag.ExitOnError)
	cost := flags.Int("cost", cfg.Session.BcryptCost, "bcrypt cost")
	_ = flags.Parse(os.Args[1:])

	password := "admin123"
	if flags.NArg() > 0 {
		password = flags.Arg(0)
	}
	h, err := service.HashPassword(password, *cost)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Print(h)
}
