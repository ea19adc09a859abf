// internal/schema/migration.go
package schema

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Migrator handles database schema setup for the access subsystem
type Migrator struct {
	DB *sql.DB
}

// NewMigrator creates a new migrator
func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{DB: db}
}

// InitializeSchema initializes the database schema
func (m *Migrator) InitializeSchema() error {
	_, err := m.DB.Exec(`
	CREATE EXTENSION IF NOT EXISTS citext;
	CREATE EXTENSION IF NOT EXISTS pgcrypto;

	-- Create tables if they don't exist
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email CITEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL,
		last_name TEXT,
		status TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS organizations (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		slug CITEXT NOT NULL UNIQUE,
		domain CITEXT UNIQUE,
		status TEXT NOT NULL DEFAULT 'active',
		contact_email TEXT,
		max_members INT NOT NULL DEFAULT 0,
		created_by_id UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS organization_codes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		organization_id UUID NOT NULL REFERENCES organizations(id),
		code CITEXT NOT NULL UNIQUE,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'active',
		max_uses INT,
		current_uses INT NOT NULL DEFAULT 0,
		valid_from TIMESTAMPTZ NOT NULL,
		valid_until TIMESTAMPTZ,
		default_role TEXT NOT NULL DEFAULT 'member',
		auto_assign_license_id UUID,
		created_by_id UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (current_uses >= 0),
		CHECK (max_uses IS NULL OR current_uses <= max_uses)
	);

	CREATE TABLE IF NOT EXISTS organization_members (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		organization_id UUID NOT NULL REFERENCES organizations(id),
		user_id UUID NOT NULL REFERENCES users(id),
		role TEXT NOT NULL DEFAULT 'member',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		joined_at TIMESTAMPTZ NOT NULL,
		registration_code_id UUID REFERENCES organization_codes(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE(organization_id, user_id)
	);

	CREATE TABLE IF NOT EXISTS license_types (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL UNIQUE,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS organization_licenses (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		organization_id UUID NOT NULL REFERENCES organizations(id),
		license_type_id UUID NOT NULL REFERENCES license_types(id),
		status TEXT NOT NULL DEFAULT 'active',
		total_seats INT NOT NULL,
		used_seats INT NOT NULL DEFAULT 0,
		end_date TIMESTAMPTZ,
		license_key TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (used_seats >= 0),
		CHECK (used_seats <= total_seats)
	);

	CREATE TABLE IF NOT EXISTS user_licenses (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id),
		license_type_id UUID NOT NULL REFERENCES license_types(id),
		organization_id UUID REFERENCES organizations(id),
		status TEXT NOT NULL DEFAULT 'active',
		end_date TIMESTAMPTZ,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_org_codes_org ON organization_codes(organization_id);
	CREATE INDEX IF NOT EXISTS idx_members_code ON organization_members(registration_code_id);
	CREATE INDEX IF NOT EXISTS idx_org_licenses_org ON organization_licenses(organization_id);
	CREATE INDEX IF NOT EXISTS idx_user_licenses_user ON user_licenses(user_id);
	CREATE INDEX IF NOT EXISTS idx_user_licenses_org ON user_licenses(organization_id);
	`)

	return err
}

// Verify checks that the expected tables exist in the connected database.
func (m *Migrator) Verify() error {
	tables := []string{
		"users",
		"organizations",
		"organization_codes",
		"organization_members",
		"license_types",
		"organization_licenses",
		"user_licenses",
	}

	for _, table := range tables {
		var exists bool
		err := m.DB.QueryRow(`
			SELECT EXISTS (
				SELECT 1 FROM information_schema.tables
				WHERE table_name = $1
			)
		`, table).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking table %s: %w", table, err)
		}
		if !exists {
			return fmt.Errorf("table %s does not exist", table)
		}
	}

	return nil
}
