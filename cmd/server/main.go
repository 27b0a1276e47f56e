// Package main is the entry point for the smfview API server
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/james-see/smfview/pkg/api"
	"github.com/james-see/smfview/pkg/config"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "Config file (default $XDG_CONFIG_HOME/smfview/config.yaml)")
	port := flag.Int("port", 0, "Server port (default from config, 8080)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	logrus.SetLevel(cfg.LogLevel())

	logrus.WithField("port", cfg.Server.Port).Info("starting smfview API server")
	fmt.Printf("Swagger docs available at http://localhost:%d/swagger/index.html\n", cfg.Server.Port)

	if err := api.StartServer(cfg.Server.Port, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
