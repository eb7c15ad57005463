package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/workline/absenteeism/infra/config"
	"github.com/workline/absenteeism/internal/regress"
	"github.com/workline/absenteeism/internal/server"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	cfg := config.LoadServer()

	s := server.NewServer(cfg.Port, cfg.ModelPath, cfg.StaticDir, regress.Default())
	if err := s.Start(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
