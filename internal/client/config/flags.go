package config

import (
	"flag"
	"os"

	"github.com/flfe/adminctl/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   base URL of the user-management backend
//	-p int      rows per page in the user list
//	-f string   path to the local credential database
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-p", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendURL, "u", cfg.BackendURL, "base URL of the backend")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "rows per page")
	fs.StringVar(&cfg.DatabasePath, "f", cfg.DatabasePath, "path to the local credential database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
