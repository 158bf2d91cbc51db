// Package config loads runtime settings for the gradebook CLI.
package config

import "golang.org/x/crypto/bcrypt"

// Config holds runtime settings.
//
// Fields:
//   - RecordsDBPath: SQLite file holding students, teachers, subjects, marks.
//   - AuditDBPath: separate SQLite file holding the encrypted audit trail.
//   - AuditKeyPath: location of the write-once audit encryption key.
//   - BackupDir: directory for records database snapshots.
//   - BcryptCost: work factor for password hashing.
type Config struct {
	RecordsDBPath string
	AuditDBPath   string
	AuditKeyPath  string
	BackupDir     string
	BcryptCost    int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RecordsDBPath = "userdetails.db"
	c.AuditDBPath = "audit_logs.db"
	c.AuditKeyPath = "logs/key.key"
	c.BackupDir = "backups"
	c.BcryptCost = bcrypt.DefaultCost
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given) and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
