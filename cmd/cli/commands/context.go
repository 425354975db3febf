package commands

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jakechorley/intern-rota/internal/config"
	"github.com/jakechorley/intern-rota/pkg/clients/gmailclient"
	"github.com/jakechorley/intern-rota/pkg/clients/sheetsclient"
	"github.com/jakechorley/intern-rota/pkg/db"
	"github.com/jakechorley/intern-rota/pkg/solver/pbsolver"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env      string
	Cfg      *config.Config
	Solver   *pbsolver.Solver
	Database db.RunStore // nil when no databaseURL is configured
	Logger   *zap.Logger
	Ctx      context.Context

	googleOnce   sync.Once
	googleErr    error
	sheetsClient *sheetsclient.Client
	gmailClient  *gmailclient.Client
}

// RequireDatabase returns the run store or an error explaining how to configure one
func (app *AppContext) RequireDatabase() (db.RunStore, error) {
	if app.Database == nil {
		return nil, fmt.Errorf("databaseURL is not configured")
	}
	return app.Database, nil
}

// GoogleClients authenticates once and returns the Sheets and Gmail clients.
// Commands that never touch Google do not trigger the OAuth flow.
func (app *AppContext) GoogleClients() (*sheetsclient.Client, *gmailclient.Client, error) {
	app.googleOnce.Do(func() {
		app.Logger.Info("Loading OAuth client configuration")
		oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
		if err != nil {
			app.googleErr = fmt.Errorf("failed to load OAuth client config: %w", err)
			return
		}

		app.Logger.Info("Initializing sheets client")
		app.sheetsClient, err = sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env, app.Logger)
		if err != nil {
			app.googleErr = fmt.Errorf("failed to create sheets client: %w", err)
			return
		}

		// Gmail shares the token granted to the sheets client
		app.Logger.Info("Initializing gmail client")
		app.gmailClient, err = gmailclient.NewClient(app.Ctx, oauthCfg, app.sheetsClient.Token(), app.Cfg.GmailUserID, app.Cfg.GmailSender)
		if err != nil {
			app.googleErr = fmt.Errorf("failed to create gmail client: %w", err)
			return
		}
		app.Logger.Debug("Google clients initialized successfully")
	})

	return app.sheetsClient, app.gmailClient, app.googleErr
}
