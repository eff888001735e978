// Package cli holds the coachctl commands.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/coach-platform/internal/audit"
	dbpkg "github.com/BruksfildServices01/coach-platform/internal/db"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
	infraRepo "github.com/BruksfildServices01/coach-platform/internal/infra/repository"
	ucSession "github.com/BruksfildServices01/coach-platform/internal/usecase/session"
)

// Context is handed to every command's Run.
type Context struct {
	Ctx context.Context
	DB  *gorm.DB
	Log *zap.Logger
	Out io.Writer
}

type MigrateCmd struct{}

func (cmd *MigrateCmd) Run(c *Context) error {
	m, err := dbpkg.NewMigrator(c.DB, c.Log)
	if err != nil {
		return err
	}
	return m.Up(c.Ctx)
}

type MigrateVersionCmd struct{}

func (cmd *MigrateVersionCmd) Run(c *Context) error {
	m, err := dbpkg.NewMigrator(c.DB, c.Log)
	if err != nil {
		return err
	}
	version, err := m.Version(c.Ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "%d\n", version)
	return nil
}

// FeedTokenCmd mints a calendar feed token for a user, replacing the
// previous one.
type FeedTokenCmd struct {
	User string `help:"User id." required:""`
}

func (cmd *FeedTokenCmd) Run(c *Context) error {
	userID, err := uuid.Parse(cmd.User)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", cmd.User, err)
	}

	users := infraRepo.NewSessionGormRepository(c.DB)
	user, err := users.GetUser(c.Ctx, userID)
	if err != nil {
		return err
	}

	dispatcher := audit.NewDispatcher(audit.New(infraRepo.NewAuditGormRepository(c.DB)), c.Log)
	defer dispatcher.Close()

	token, err := ucSession.NewIssueFeedToken(users, dispatcher).Execute(c.Ctx, identity.Actor{
		ID:   user.ID,
		Role: identity.Role(user.Role),
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(c.Out, token)
	return nil
}
