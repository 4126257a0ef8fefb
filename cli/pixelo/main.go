package main

import (
	"os"

	"github.com/joho/godotenv"

	pixelocmder "github.com/papercomputeco/pixelo/cmd/pixelo"
)

func main() {
	// A missing .env is fine; PIXELO_* variables may come from the shell.
	_ = godotenv.Load()

	cmd := pixelocmder.NewPixeloCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
