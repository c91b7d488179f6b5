package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/refbonus-admin/pkg/api"
	"github.com/refbonus-admin/pkg/config"
	"github.com/refbonus-admin/pkg/report"
	"github.com/refbonus-admin/pkg/store"
	"github.com/refbonus-admin/pkg/ui"
)

func main() {
	dump := flag.Bool("dump", false, "print a snapshot of the program and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()
		log.Fatal().Err(err).Msg("config load failed")
	}

	client := api.New(cfg.APIBaseURL, cfg.InitData, cfg.HTTPTimeout)

	if *dump {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()
		st := store.New()
		if err := st.Bootstrap(context.Background(), client); err != nil {
			log.Fatal().Err(err).Msg("bootstrap failed")
		}
		report.Write(os.Stdout, st.Snapshot())
		return
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatal().Err(err).Msg("log file open failed")
	}
	defer logFile.Close()
	log.Logger = zerolog.New(logFile).With().Timestamp().Logger()
	log.Info().Str("api", cfg.APIBaseURL).Msg("dashboard starting")

	if err := ui.Run(cfg, client); err != nil {
		log.Fatal().Err(err).Msg("ui error")
	}
	log.Info().Msg("goodbye")
}
