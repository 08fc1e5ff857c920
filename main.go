package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"hadarblog/app/config"
	"hadarblog/app/mailer"
	"hadarblog/app/repositories"
	"hadarblog/app/routes"
	"hadarblog/app/services"
	"hadarblog/app/sessions"

	"github.com/dgraph-io/badger/v4"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("hadarblog version %s\n", cliVersion)
	case "serve":
		serve(os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: hadarblog <command> [options]
Commands:
  help                     Display this help message.
  version                  Show version information.
  serve [--config <path>]  Run the blog server (default config: config.yaml).
`
	fmt.Println(helpText)
}

func serve(args []string) {
	configPath := "config.yaml"
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			configPath = args[i+1]
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := badger.DefaultOptions(cfg.Database.Path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open Badger DB: %v", err)
	}
	defer db.Close()

	// Seed the administrator before accepting requests. Failure here is the
	// one condition that prevents startup.
	identity := services.NewIdentityService(repositories.NewBadgerUserRepository(db))
	if err := identity.EnsureAdmin(cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	router := routes.SetupRoutes(routes.Deps{
		DB:       db,
		Sessions: sessions.NewStore(),
		Mailer: mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port,
			cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Username),
		ContactTo: cfg.Contact.To,
	})

	log.Printf("Starting blog server on %s", cfg.Server.Addr)
	if err := routes.StartServer(cfg.Server.Addr, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
