// cmd/sitemap/main.go
//
// One-shot sitemap generation, for deploy hooks and local inspection. The
// server regenerates the same file on its own schedule.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bantconfirm/backend/internal/backend"
	"github.com/bantconfirm/backend/internal/config"
	"github.com/bantconfirm/backend/internal/sitemap"
)

func main() {
	var (
		out    = flag.String("out", "", "output path, empty for stdout")
		prefix = flag.String("base-url", "", "override the configured base URL")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	var client backend.Client
	if cfg.Database.Configured() {
		client, err = backend.NewPostgres(cfg.Database)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to connect to backend")
		}
	} else {
		client = backend.NewNoOp()
	}
	defer client.Close()

	baseURL := cfg.Site.BaseURL
	if *prefix != "" {
		baseURL = *prefix
	}
	gen := sitemap.NewGenerator(client, baseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *out == "" {
		data, err := gen.Generate(ctx)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to generate sitemap")
		}
		os.Stdout.Write(data)
		os.Stdout.Write([]byte("\n"))
		return
	}

	if err := gen.WriteFile(ctx, *out); err != nil {
		logrus.WithError(err).Fatal("Failed to write sitemap")
	}
	logrus.WithField("path", *out).Info("Sitemap written")
}
