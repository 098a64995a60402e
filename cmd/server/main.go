package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/smiley-shop/smiley/internal/app"
	"github.com/smiley-shop/smiley/internal/config"
	"github.com/smiley-shop/smiley/internal/logger"
	"github.com/smiley-shop/smiley/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiCyan  = "\033[36m"
)

func main() {
	printStartupBanner()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if isWeakSecret(cfg.JWT.SecretKey) {
		if cfg.Server.Mode == "release" {
			stdLog.Fatalf("JWT secret is weak or still the default; set a strong random key in production")
		}
		stdLog.Printf("warning: JWT secret is weak or still the default; change it before going live")
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("database init failed: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("database migration failed: %v", err)
	}

	// Bootstrap operator account from env. The server itself never invents one.
	adminEmail := os.Getenv("SMILEY_DEFAULT_ADMIN_EMAIL")
	adminPass := os.Getenv("SMILEY_DEFAULT_ADMIN_PASSWORD")
	if adminEmail != "" && adminPass != "" {
		if _, err := models.SeedAdminUser(adminEmail, adminPass, "Owner", "super_admin"); err != nil {
			stdLog.Printf("warning: default admin bootstrap failed: %v", err)
		}
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "run mode: all (default), api, worker")
	flag.Parse()

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("server exited with error: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiCyan + "███████╗███╗   ███╗██╗██╗     ███████╗██╗   ██╗" + ansiReset)
	fmt.Println(ansiCyan + "██╔════╝████╗ ████║██║██║     ██╔════╝╚██╗ ██╔╝" + ansiReset)
	fmt.Println(ansiCyan + "███████╗██╔████╔██║██║██║     █████╗   ╚████╔╝ " + ansiReset)
	fmt.Println(ansiCyan + "╚════██║██║╚██╔╝██║██║██║     ██╔══╝    ╚██╔╝  " + ansiReset)
	fmt.Println(ansiCyan + "███████║██║ ╚═╝ ██║██║███████╗███████╗   ██║   " + ansiReset)
	fmt.Println(ansiCyan + "╚══════╝╚═╝     ╚═╝╚═╝╚══════╝╚══════╝   ╚═╝   " + ansiReset)
	fmt.Println(ansiBold + "SMILEY storefront API" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
