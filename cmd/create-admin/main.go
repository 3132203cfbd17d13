// Command create-admin adds an administrator account.
//
// With -username it prompts for a password; without it a random username and
// password are generated and printed once.
package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"findjob-backend/internal/config"
	"findjob-backend/internal/database"
	"findjob-backend/internal/logger"
	"findjob-backend/internal/model"
	"findjob-backend/internal/utilities"

	"gorm.io/gorm"
)

// generateRandomString creates a random hex string of length 2n
func generateRandomString(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// generateUniqueUsername tries until a unique username is found
func generateUniqueUsername(db *gorm.DB) (string, error) {
	for {
		suffix, err := generateRandomString(4)
		if err != nil {
			return "", err
		}
		username := "admin_" + suffix
		var count int64
		if err := db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return username, nil
		}
	}
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func main() {
	username := flag.String("username", "", "admin username; prompts for the password when set")
	flag.Parse()

	log := logger.Init(logger.Options{Pretty: true})

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	db, err := database.NewDBInstance(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("database failed to initialize")
	}
	defer db.Close()

	var password string
	if *username != "" {
		reader := bufio.NewReader(os.Stdin)
		password = prompt(reader, "Enter password: ")
		if prompt(reader, "Confirm password: ") != password {
			log.Fatal().Msg("passwords do not match")
		}
		if len(password) < 6 {
			log.Fatal().Msg("password must be at least 6 characters")
		}
	} else {
		if *username, err = generateUniqueUsername(db.DB); err != nil {
			log.Fatal().Err(err).Msg("failed to generate username")
		}
		if password, err = generateRandomString(8); err != nil {
			log.Fatal().Err(err).Msg("failed to generate password")
		}
	}

	admin, err := utilities.CreateAdmin(db.DB, *username, password)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create admin")
	}

	fmt.Println("Admin credentials generated successfully!")
	fmt.Println("======================================")
	fmt.Printf("Username: %s\n", admin.Username)
	fmt.Printf("Password: %s\n", password)
	fmt.Println("======================================")
}
