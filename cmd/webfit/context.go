package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/claude/webfit/internal/config"
	"github.com/claude/webfit/internal/exercisedb"
	"github.com/claude/webfit/internal/sharelink"
	"github.com/claude/webfit/internal/session"
	"github.com/claude/webfit/internal/storage"
	"github.com/claude/webfit/internal/workout"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		c.config, c.configErr = config.Load(path)
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) location() (*sharelink.FileLocation, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return sharelink.NewFileLocation(cfg.Share.LocationPath, cfg.Share.BaseURL), nil
}

// app is one session wired to the configured catalog, store and address bar.
type app struct {
	cfg  *config.Config
	log  *slog.Logger
	sess *session.Session
}

// storeLockWait bounds how long a command waits for another webfit process
// to release the store.
const storeLockWait = 5 * time.Second

// withApp locks and opens the store, loads the workout and runs fn with a
// session. The lock keeps one process at a time writing the workout.
func (c *commandContext) withApp(cmd *cobra.Command, fn func(*app) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()
	ctx := cmd.Context()

	unlock, err := lockStore(ctx, cfg.Store.Path)
	if err != nil {
		return err
	}
	defer unlock()

	db, err := storage.Open(ctx, cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	loc, err := c.location()
	if err != nil {
		return err
	}

	mgr := workout.New(db, loc, log)
	src := mgr.Initialize(ctx)
	log.Debug("workout initialized", "source", src)

	client := exercisedb.NewClient(cfg.Catalog.BaseURL, http.DefaultClient)
	svc := exercisedb.NewService(client, nil, cfg.Catalog.Throttle(), log)

	return fn(&app{
		cfg:  cfg,
		log:  log,
		sess: session.New(svc, mgr, log),
	})
}

func lockStore(ctx context.Context, storePath string) (func(), error) {
	lockPath := storePath + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	lock := flock.New(lockPath)
	waitCtx, cancel := context.WithTimeout(ctx, storeLockWait)
	defer cancel()

	ok, err := lock.TryLockContext(waitCtx, 50*time.Millisecond)
	if errors.Is(err, context.DeadlineExceeded) || (err == nil && !ok) {
		return nil, fmt.Errorf("another webfit process is using %s", storePath)
	}
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	return func() { _ = lock.Unlock() }, nil
}
