package cli

import (
	"context"
	"fmt"
)

// ViewAuditLog prints every audit event, newest first, decrypting each
// action. Records that cannot be decrypted are shown with a sentinel
// marker instead of aborting the listing.
func (a *App) ViewAuditLog(ctx context.Context) error {
	entries, err := a.audit.DecryptAll(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err.Error())
		return err
	}

	fmt.Fprintln(a.out, "=== AUDIT LOGS ===")
	for _, e := range entries {
		fmt.Fprintf(a.out, "[%s] %s (%s) %s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Username, e.Role, e.Action)
	}
	return nil
}
