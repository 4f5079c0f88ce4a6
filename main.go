package main

import (
	"flag"
	"fmt"
	"os"

	"podmarket/cmd"
	"podmarket/config"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	app := cmd.NewBuilder(cfg).Build()
	if err := app.Run(); err != nil {
		fmt.Printf("Server exited with error: %v\n", err)
		os.Exit(1)
	}
}
