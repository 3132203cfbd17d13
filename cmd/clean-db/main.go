// Command-line tool to clean the database by dropping all tables in the public schema.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"findjob-backend/internal/config"
	"findjob-backend/internal/database"
	"findjob-backend/internal/logger"
)

const dropAllTables = `
DO $$
	DECLARE
		r RECORD;
	BEGIN
		FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = 'public') LOOP
			EXECUTE 'DROP TABLE IF EXISTS ' || quote_ident(r.tablename) || ' CASCADE';
		END LOOP;
	END $$;
`

func main() {
	log := logger.Init(logger.Options{Pretty: true})

	fmt.Println("WARNING: This command will DROP ALL TABLES in the 'public' schema of your database.")
	fmt.Println("This action is irreversible. Do you want to continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read input")
	}
	if strings.TrimSpace(strings.ToLower(input)) != "yes" {
		fmt.Println("Operation cancelled.")
		return
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// NewDBInstance migrates, so connect with plain gorm instead.
	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("database failed to initialize")
	}
	defer db.Close()

	if err := db.Exec(dropAllTables).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to execute drop command")
	}

	fmt.Println("All tables dropped successfully.")
}
