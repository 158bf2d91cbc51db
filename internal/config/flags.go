package config

import (
	"flag"
	"os"

	"gradebook/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   records database path
//	-l string   audit database path
//	-k string   audit key file path
//	-b string   backup directory
//
// Args are filtered through flagx.FilterArgs so flags owned by other
// packages do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-l", "-k", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.RecordsDBPath, "d", cfg.RecordsDBPath, "records database path")
	fs.StringVar(&cfg.AuditDBPath, "l", cfg.AuditDBPath, "audit database path")
	fs.StringVar(&cfg.AuditKeyPath, "k", cfg.AuditKeyPath, "audit key file path")
	fs.StringVar(&cfg.BackupDir, "b", cfg.BackupDir, "backup directory")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
