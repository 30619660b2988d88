package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	appcfg "github.com/kapu/mastermind-cli/internal/config"
	"github.com/kapu/mastermind-cli/internal/console"
	"github.com/kapu/mastermind-cli/internal/gameapi"
	"github.com/kapu/mastermind-cli/internal/msgcat"
	"github.com/kapu/mastermind-cli/internal/obslog"
	"github.com/kapu/mastermind-cli/internal/session"
)

// Exit code is 0 on every path, including a failed start: outcomes are
// reported as text, not as process status.
func main() {
	if err := obslog.InitFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "logger init error: %v\n", err)
		return
	}
	logger := obslog.L()
	defer logger.Sync()

	cfg, err := appcfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return
	}

	cat, err := msgcat.New(cfg.MsgTemplateDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "message catalog error: %v\n", err)
		return
	}

	client := gameapi.NewClient(cfg.GameBaseURL, gameapi.WithTimeout(cfg.HTTPTimeout))

	ctrl := session.NewController(
		client,
		console.NewReader(os.Stdin),
		console.NewPrinter(os.Stdout),
		cat,
		logger,
		session.Config{MaxAttempts: cfg.MaxAttempts, ExitKeyword: cfg.ExitKeyword},
	)

	reason, err := ctrl.Run(context.Background())
	if err != nil {
		logger.Error("session start failed", zap.Error(err))
		return
	}
	logger.Info("session finished", zap.String("reason", reason.String()))
}
