package main

import (
	"net/http"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/seabattle/server"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func main() {
	cfg, err := server.LoadConfig()
	if err != nil {
		log.Fatalln(err)
	}

	var notifier *server.Notifier
	if cfg.NotifyURL != "" {
		notifier = server.NewNotifier(cfg.NotifyURL)
		if err := notifier.Dial(); err != nil {
			// events are informational only, play on without them
			log.Warnf("notifier unavailable: %v", err)
		}
	}

	Server := Server{
		GameServer: server.NewGameServer(cfg, notifier),
	}
	go Server.GameServer.Loop()
	Server.routes()
	log.Printf("listening on :%s board %dx%d", cfg.Port, cfg.BoardSize, cfg.BoardSize)
	err = http.ListenAndServe(":"+cfg.Port, Server.router)
	// log.Fatalln would skip deferred closes, shut the notifier down first
	notifier.Close()
	log.Fatalln(err)
}
