package server

import (
	"net/http"

	"doublejump/internal/config"
	"doublejump/internal/session"
	"doublejump/internal/wshub"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	hub := wshub.NewHub()
	sess := session.New(session.Config{
		RoundInterval:   cfg.RoundInterval,
		StartingBalance: decimal.NewFromInt(cfg.StartingBalance),
		HistorySize:     cfg.HistorySize,
	}, hub)
	sess.Start()
	defer sess.Stop()

	srv := &Server{
		Session: sess,
		Hub:     hub,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.handleWS)
	mux.HandleFunc("/health", srv.handleHealth)

	addr := "0.0.0.0:" + cfg.Port
	log.Infof("Server listening on http://localhost:%s", cfg.Port)
	return http.ListenAndServe(addr, mux)
}
