package main

import (
	"context"
	"io"
	"os"
	"time"

	"tienda/internal/config"
	"tienda/internal/http/handlers"
	applog "tienda/internal/log"
	"tienda/internal/repos"
)

func main() {
	cfg := config.Load()

	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			applog.Plain("log.file.open.fail", map[string]any{"path": cfg.LogFile, "err": err.Error()})
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	applog.Setup(cfg.Env, cfg.LogLevel, out)

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		applog.Fatal("db.open.fail", err)
	}
	defer db.Close()

	deps := handlers.NewDeps(db, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	created, err := deps.AdminHandler.Admins.EnsureDefaultAdmin(ctx, cfg.Bootstrap)
	cancel()
	if err != nil {
		applog.Fatal("admin.bootstrap.fail", err)
	}
	if created {
		applog.Plain("admin.bootstrap", map[string]any{"username": cfg.Bootstrap.Username})
	}

	app := handlers.NewApp(cfg, deps)

	applog.Plain("server.start", map[string]any{"addr": cfg.Addr(), "driver": cfg.DBDriver})
	if err := app.Listen(cfg.Addr()); err != nil {
		applog.Fatal("server.listen.fail", err)
	}
}
