// Package cli implements the interactive session controller and the
// role portals on top of the application services.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"gradebook/internal/config"
	"gradebook/internal/keystore"
	"gradebook/internal/logging"
	"gradebook/internal/models"
	"gradebook/internal/repositories/auditlog"
	"gradebook/internal/repositories/marks"
	"gradebook/internal/repositories/students"
	"gradebook/internal/repositories/subjects"
	"gradebook/internal/repositories/teachers"
	"gradebook/internal/services"
	"gradebook/internal/storage"
)

// App drives one interactive session. Per login the session moves
// through anonymous -> active(role, user) -> logged out; logout returns
// to the anonymous prompt.
type App struct {
	config  *config.Config
	log     logging.Logger
	creds   *services.CredentialService
	results *services.ResultService
	audit   *services.AuditService
	backups *services.BackupService

	reader *bufio.Reader
	out    io.Writer

	// Active session state; zero values mean anonymous.
	role     models.Role
	userID   int64
	username string
}

// NewApp wires repositories and services onto the open storage handles.
func NewApp(cfg *config.Config, log logging.Logger, db *storage.Handles) *App {
	studentRepo := students.NewSQLiteRepository(db.Records)
	teacherRepo := teachers.NewSQLiteRepository(db.Records)
	subjectRepo := subjects.NewSQLiteRepository(db.Records)
	markRepo := marks.NewSQLiteRepository(db.Records)
	logRepo := auditlog.NewSQLiteRepository(db.Audit)

	audit := services.NewAuditService(logRepo, keystore.NewFileStore(cfg.AuditKeyPath))

	return &App{
		config:  cfg,
		log:     log,
		creds:   services.NewCredentialService(studentRepo, teacherRepo, cfg.BcryptCost),
		results: services.NewResultService(db.Records, studentRepo, subjectRepo, markRepo),
		audit:   audit,
		backups: services.NewBackupService(cfg.RecordsDBPath, cfg.BackupDir, audit),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// Run starts the root REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.userID != 0
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return ""
	}
	return a.username + " (" + string(a.role) + ")"
}

// record emits an audit event. A failed audit write never undoes the
// primary action; it is logged and the session continues.
func (a *App) record(ctx context.Context, username string, role models.Role, action string) {
	if err := a.audit.Record(ctx, username, string(role), action); err != nil {
		a.log.Warn(ctx, "audit write failed", "error", err)
	}
}
