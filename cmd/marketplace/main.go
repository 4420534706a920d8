package main

import (
	"context"
	"time"

	"github.com/ionecenter/marketplace/config"
	"github.com/ionecenter/marketplace/internal/app"
	"github.com/ionecenter/marketplace/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	stateService := app.New(sigCtx, cfg)

	stateService.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	stateService.Close(ctx)
}
