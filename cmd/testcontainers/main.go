// Command testcontainers stands up the MariaDB and API containers used by
// the test suite and keeps them running for manual poking until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/missionconnect/missionconnect/tests/helpers"
)

func main() {
	envFilename := flag.String("f", "", "path to a .env file to load first")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Start the missionconnect test containers and hold them until Ctrl-C.

Usage: testcontainers [-f ENV_FILE_PATH]

`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *envFilename != "" {
		if err := godotenv.Load(*envFilename); err != nil {
			log.Fatalf("Failed to load %s: %v", *envFilename, err)
		}
		log.Printf("Loaded environment from %s", *envFilename)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var containers *helpers.TestContainers
	go func() {
		var err error
		containers, err = helpers.CreateAllTestContainers(nil)
		if err != nil {
			log.Fatalf("Failed to create test containers: %v", err)
		}
		if url, err := containers.BaseURL(context.Background()); err == nil {
			log.Printf("API listening at %s", url)
		}
	}()

	sig := <-sigs
	log.Printf("Received %v, terminating test containers", sig)
	if containers != nil {
		containers.Terminate(nil)
	}
}
