package main

import (
	"context"
	"flag"
	"log"

	_ "github.com/joho/godotenv/autoload"

	"docvault/internal/client/cli"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "server base URL")
	user := flag.Int64("user", 1, "owner user id")
	flag.Parse()

	app := cli.NewApp(*addr, *user)

	if err := app.Run(context.Background(), flag.Args()); err != nil {
		log.Fatalf("%v", err)
	}
}
