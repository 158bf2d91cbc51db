package config

import (
	"encoding/json"
	"os"

	"gradebook/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// fields keep the value from the previous configuration stage.
type JsonConfig struct {
	RecordsDBPath *string `json:"records_db_path"`
	AuditDBPath   *string `json:"audit_db_path"`
	AuditKeyPath  *string `json:"audit_key_path"`
	BackupDir     *string `json:"backup_dir"`
	BcryptCost    *int    `json:"bcrypt_cost"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flag. When no file is given the function is a no-op.
// Read or unmarshal errors panic; configuration is unusable without a
// requested file.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.RecordsDBPath != nil {
		cfg.RecordsDBPath = *jc.RecordsDBPath
	}
	if jc.AuditDBPath != nil {
		cfg.AuditDBPath = *jc.AuditDBPath
	}
	if jc.AuditKeyPath != nil {
		cfg.AuditKeyPath = *jc.AuditKeyPath
	}
	if jc.BackupDir != nil {
		cfg.BackupDir = *jc.BackupDir
	}
	if jc.BcryptCost != nil {
		cfg.BcryptCost = *jc.BcryptCost
	}
}
