package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/dangerclosesec/orgaccess/internal/auth"
	"github.com/dangerclosesec/orgaccess/internal/config"
	"github.com/dangerclosesec/orgaccess/internal/schema"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

var (
	dbConnString string
	verbose      bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbConnString, "db", "d", "", "Database connection string")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	createCodeCmd.Flags().IntVar(&codeMaxUses, "max-uses", 0, "Maximum redemptions (0 = unlimited)")
	createCodeCmd.Flags().StringVar(&codeValidUntil, "valid-until", "", "Expiry in RFC3339 format (empty = no expiry)")
	createCodeCmd.Flags().StringVar(&codeDefaultRole, "role", "member", "Default role granted on redemption")

	mintTokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(createOrgCmd)
	rootCmd.AddCommand(createCodeCmd)
	rootCmd.AddCommand(createPoolCmd)
	rootCmd.AddCommand(mintTokenCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "orgctl",
	Short: "orgctl is a CLI tool for managing organization access",
	Long:  `orgctl is a CLI tool for initializing the schema and seeding organizations, registration codes, and license pools.`,
}

func openDB() *sql.DB {
	if dbConnString == "" {
		log.Fatal("Database connection string is required")
	}

	db, err := sql.Open("postgres", dbConnString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the database schema",
	Long:  `Create the access subsystem tables and indexes if they don't exist.`,
	Run: func(cmd *cobra.Command, args []string) {
		db := openDB()
		defer db.Close()

		migrator := schema.NewMigrator(db)
		if err := migrator.InitializeSchema(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}

		if err := migrator.Verify(); err != nil {
			log.Fatalf("Schema verification failed: %v", err)
		}

		fmt.Println("Schema initialized successfully")
	},
}

var createOrgCmd = &cobra.Command{
	Use:   "create-org [name] [slug] [creator-user-id]",
	Short: "Create an organization",
	Long:  `Create an organization and make the given user its first owner.`,
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		name, slug := args[0], args[1]
		creatorID, err := uuid.Parse(args[2])
		if err != nil {
			log.Fatalf("Invalid creator user id: %v", err)
		}

		db := openDB()
		defer db.Close()

		tx, err := db.Begin()
		if err != nil {
			log.Fatalf("Failed to start transaction: %v", err)
		}

		var orgID uuid.UUID
		err = tx.QueryRow(`
			INSERT INTO organizations (name, slug, created_by_id)
			VALUES ($1, $2, $3)
			RETURNING id
		`, name, slug, creatorID).Scan(&orgID)
		if err != nil {
			tx.Rollback()
			log.Fatalf("Failed to create organization: %v", err)
		}

		_, err = tx.Exec(`
			INSERT INTO organization_members (organization_id, user_id, role, is_active, joined_at)
			VALUES ($1, $2, 'owner', TRUE, NOW())
		`, orgID, creatorID)
		if err != nil {
			tx.Rollback()
			log.Fatalf("Failed to create owner membership: %v", err)
		}

		if err := tx.Commit(); err != nil {
			log.Fatalf("Failed to commit transaction: %v", err)
		}

		fmt.Printf("Created organization %s (%s)\n", slug, orgID)
	},
}

var (
	codeMaxUses     int
	codeValidUntil  string
	codeDefaultRole string
)

var createCodeCmd = &cobra.Command{
	Use:   "create-code [org-id] [code] [creator-user-id]",
	Short: "Create a registration code",
	Long:  `Create a registration code that lets users self-join the organization.`,
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		orgID, err := uuid.Parse(args[0])
		if err != nil {
			log.Fatalf("Invalid organization id: %v", err)
		}
		code := args[1]
		creatorID, err := uuid.Parse(args[2])
		if err != nil {
			log.Fatalf("Invalid creator user id: %v", err)
		}

		var maxUses *int
		if codeMaxUses > 0 {
			maxUses = &codeMaxUses
		}

		var validUntil *time.Time
		if codeValidUntil != "" {
			t, err := time.Parse(time.RFC3339, codeValidUntil)
			if err != nil {
				log.Fatalf("Invalid --valid-until value: %v", err)
			}
			validUntil = &t
		}

		db := openDB()
		defer db.Close()

		var codeID uuid.UUID
		err = db.QueryRow(`
			INSERT INTO organization_codes (organization_id, code, max_uses, valid_from, valid_until, default_role, created_by_id)
			VALUES ($1, $2, $3, NOW(), $4, $5, $6)
			RETURNING id
		`, orgID, code, maxUses, validUntil, codeDefaultRole, creatorID).Scan(&codeID)
		if err != nil {
			log.Fatalf("Failed to create code: %v", err)
		}

		fmt.Printf("Created code %s (%s)\n", code, codeID)
		if verbose {
			fmt.Printf("  Organization: %s\n", orgID)
			if maxUses != nil {
				fmt.Printf("  Max uses: %d\n", *maxUses)
			} else {
				fmt.Println("  Max uses: unlimited")
			}
			if validUntil != nil {
				fmt.Printf("  Valid until: %s\n", validUntil.Format(time.RFC3339))
			}
			fmt.Printf("  Default role: %s\n", codeDefaultRole)
		}
	},
}

var createPoolCmd = &cobra.Command{
	Use:   "create-pool [org-id] [license-type-name] [total-seats]",
	Short: "Create a license pool",
	Long:  `Create a seat pool of the named license type for the organization. The license type is created if it doesn't exist.`,
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		orgID, err := uuid.Parse(args[0])
		if err != nil {
			log.Fatalf("Invalid organization id: %v", err)
		}
		typeName := args[1]
		totalSeats, err := strconv.Atoi(args[2])
		if err != nil || totalSeats <= 0 {
			log.Fatalf("Invalid total-seats value: %q", args[2])
		}

		db := openDB()
		defer db.Close()

		tx, err := db.Begin()
		if err != nil {
			log.Fatalf("Failed to start transaction: %v", err)
		}

		var typeID uuid.UUID
		err = tx.QueryRow(`
			INSERT INTO license_types (name)
			VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, typeName).Scan(&typeID)
		if err != nil {
			tx.Rollback()
			log.Fatalf("Failed to upsert license type: %v", err)
		}

		var poolID uuid.UUID
		err = tx.QueryRow(`
			INSERT INTO organization_licenses (organization_id, license_type_id, total_seats, license_key)
			VALUES ($1, $2, $3, encode(gen_random_bytes(16), 'hex'))
			RETURNING id
		`, orgID, typeID, totalSeats).Scan(&poolID)
		if err != nil {
			tx.Rollback()
			log.Fatalf("Failed to create license pool: %v", err)
		}

		if err := tx.Commit(); err != nil {
			log.Fatalf("Failed to commit transaction: %v", err)
		}

		fmt.Printf("Created %s pool with %d seats (%s)\n", typeName, totalSeats, poolID)
	},
}

var tokenTTL time.Duration

var mintTokenCmd = &cobra.Command{
	Use:   "mint-token [user-id] [email]",
	Short: "Mint a bearer token for a user",
	Long:  `Mint an HS256 bearer token signed with JWT_SECRET, for calling the API as the given user.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		userID, err := uuid.Parse(args[0])
		if err != nil {
			log.Fatalf("Invalid user id: %v", err)
		}

		cfg := config.Load()
		tm := auth.NewTokenManager(cfg.JWT.Secret, tokenTTL)

		token, err := tm.Issue(userID.String(), args[1])
		if err != nil {
			log.Fatalf("Failed to mint token: %v", err)
		}

		fmt.Println(token)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show schema status",
	Long:  `Verify the connected database carries the expected tables.`,
	Run: func(cmd *cobra.Command, args []string) {
		db := openDB()
		defer db.Close()

		migrator := schema.NewMigrator(db)
		if err := migrator.Verify(); err != nil {
			fmt.Printf("Schema incomplete: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Schema is up to date")
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
