package main

import (
	"context"
	"fmt"
	"net/http"

	"emoji-gallery/internal/api"
	"emoji-gallery/internal/config"
	"emoji-gallery/internal/logger"
)

type serverApp struct {
	cfg    config.Config
	logSvc logger.LoggerService
	srv    *http.Server
	errCh  chan error
}

func (a *serverApp) Start() error {
	bootstrapLog := logger.NewStderr()

	logSvc, err := logger.New(a.cfg)
	if err != nil {
		bootstrapLog.Error("logger init failed; using stderr", err)
		logSvc = bootstrapLog
	}
	a.logSvc = logSvc

	srv, err := api.NewServer(a.cfg, api.ServerDeps{
		Logger: logSvc,
	})
	if err != nil {
		logSvc.Error("config validation error", err)
		a.Stop(context.Background())
		return err
	}
	a.srv = srv

	a.errCh = make(chan error, 1)
	go func() {
		a.errCh <- srv.ListenAndServe()
	}()

	logSvc.Success(fmt.Sprintf("emoji-gallery listening on http://%s", srv.Addr))
	logSvc.Info(fmt.Sprintf("emoji directory: %s", a.cfg.EmojiDir))
	return nil
}

func (a *serverApp) Stop(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	if a.srv != nil {
		if err := a.srv.Shutdown(ctx); err != nil && a.logSvc != nil {
			a.logSvc.Error("shutdown error", err)
		}
	}
	if a.logSvc != nil {
		_ = a.logSvc.Close()
	}
}

func (a *serverApp) Errors() <-chan error {
	return a.errCh
}
