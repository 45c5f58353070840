package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/azeem30/aptipro-student-backend/internal/cipher"
	"github.com/azeem30/aptipro-student-backend/internal/config"
	"github.com/azeem30/aptipro-student-backend/internal/database"
	"github.com/azeem30/aptipro-student-backend/internal/logger"
	"github.com/azeem30/aptipro-student-backend/internal/service"
	"golang.org/x/term"
)

func main() {
	generate := flag.Bool("generate", false, "Generate a new key instead of prompting for one")
	yes := flag.Bool("yes", false, "Skip the confirmation prompt")
	flag.Parse()

	// ─── Load Configuration ────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.CipherKey == "" {
		fmt.Fprintln(os.Stderr, "Error: KEY must hold the key currently in use")
		os.Exit(1)
	}

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	fmt.Println("=== Rotate Password Encryption Key ===")

	// ─── New Key ───────────────────────────────────────────────────────
	var newKey string
	if *generate {
		newKey, err = cipher.GenerateKey()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to generate key")
		}
	} else {
		fmt.Print("Enter new key: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			fmt.Println("Error reading key")
			return
		}
		newKey = strings.TrimSpace(string(raw))
	}

	if newKey == cfg.CipherKey {
		fmt.Println("Error: new key equals the current key")
		return
	}

	// Old keys stay readable while every row is rewritten with the new one.
	previous := append([]string{cfg.CipherKey}, cfg.PreviousCipherKeys...)
	cph, err := cipher.New(newKey, previous...)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if !*yes {
		fmt.Print("Re-encrypt every student password now? [y/N]: ")
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("Aborted")
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	store := service.NewStore(database.NewScope(pool, log))
	accounts := service.NewAccountService(store, cph, cfg.RecentResults, log)

	// ─── Logic ─────────────────────────────────────────────────────────
	n, err := accounts.RotateKeys(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Key rotation failed, nothing was changed")
		return
	}

	fmt.Printf("\nSuccess! Re-encrypted %d passwords.\n", n)
	if *generate {
		fmt.Printf("New key: %s\n", newKey)
	}
	fmt.Println("Set KEY to the new key and restart the server.")
}
