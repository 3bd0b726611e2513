package main

import (
	"fmt"
	"os"

	"github.com/arnavshah/roster-config-api/pkg/auth"
	"github.com/arnavshah/roster-config-api/pkg/config"
)

func main() {
	config.LoadDotEnv()

	if len(os.Args) < 2 {
		fmt.Println("Usage: keygen <workspace>")
		os.Exit(1)
	}

	workspace := os.Args[1]
	secret := os.Getenv("API_MASTER_SECRET")
	if secret == "" {
		fmt.Println("Error: API_MASTER_SECRET not found in .env")
		os.Exit(1)
	}

	apiKey := auth.NewService("", secret, 0).GenerateHMACKey(workspace)
	fmt.Printf("Generated Key for %s:\n%s\n", workspace, apiKey)
}
