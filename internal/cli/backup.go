package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gradebook/internal/common"
)

// Backups runs the backup and recovery menu.
func (a *App) Backups(ctx context.Context) error {
	for {
		fmt.Fprintln(a.out, "Backup commands: create, restore, list, back")
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return nil
		}

		switch strings.TrimSpace(line) {
		case "create":
			path, err := a.backups.Create(ctx)
			if err != nil {
				if errors.Is(err, common.ErrAuditWriteFailed) {
					// The snapshot itself succeeded.
					fmt.Fprintln(a.out, "Backup created:", path)
					a.log.Warn(ctx, "audit write failed", "error", err)
					continue
				}
				fmt.Fprintln(a.out, "Error:", err.Error())
				continue
			}
			fmt.Fprintln(a.out, "Backup created:", path)

		case "restore":
			name, err := a.backups.RestoreLatest(ctx)
			if err != nil {
				if errors.Is(err, common.ErrorNotFound) {
					fmt.Fprintln(a.out, "No backups available.")
					continue
				}
				if errors.Is(err, common.ErrAuditWriteFailed) {
					fmt.Fprintln(a.out, "Database restored from:", name)
					a.log.Warn(ctx, "audit write failed", "error", err)
					continue
				}
				fmt.Fprintln(a.out, "Error:", err.Error())
				continue
			}
			fmt.Fprintln(a.out, "Database restored from:", name)

		case "list":
			names, err := a.backups.List()
			if err != nil {
				fmt.Fprintln(a.out, "Error:", err.Error())
				continue
			}
			if len(names) == 0 {
				fmt.Fprintln(a.out, "No backups found.")
				continue
			}
			fmt.Fprintln(a.out, "Available backups:")
			for _, n := range names {
				fmt.Fprintln(a.out, " -", n)
			}

		case "back", "":
			return nil

		default:
			fmt.Fprintln(a.out, "Invalid option.")
		}
	}
}
