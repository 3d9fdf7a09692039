package main

import (
	"doublejump/internal/server"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := server.Run(); err != nil {
		log.Fatal(err.Error())
	}
}
