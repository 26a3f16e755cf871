package database

import (
	"log"
)

func (s *PostgreSQLStore) Initialize() error {
	log.Println("Initializing PostgreSQL Database.", "Initializing Enums")
	if err := s.InitEnums(); err != nil {
		return err
	}
	log.Println("Initializing PostgreSQL Database.", "Initializing Tables")
	if err := s.InitTables(); err != nil {
		return err
	}
	return nil
}

func (s *PostgreSQLStore) InitEnums() error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'study_level') THEN
				CREATE TYPE study_level AS ENUM ('Undergraduate', 'Postgraduate', 'Doctorate', 'Certificate', 'Diploma');
			END IF;
		END $$;

		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'lead_status') THEN
				CREATE TYPE lead_status AS ENUM ('new', 'contacted', 'converted', 'closed');
			END IF;
		END $$;

		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN
				CREATE TYPE user_role AS ENUM ('admin', 'editor');
			END IF;
		END $$;
	`
	_, err := s.db.Exec(query)

	return err
}

func (s *PostgreSQLStore) InitTables() error {

	countries_table := `
	CREATE TABLE IF NOT EXISTS countries (
		id CHAR(24) PRIMARY KEY,
		name VARCHAR(255) UNIQUE NOT NULL,
		slug VARCHAR(255),
		code VARCHAR(10),
		currency VARCHAR(10),
		flag VARCHAR(16),
		description TEXT,
		published BOOLEAN DEFAULT TRUE,
		created_at TIMESTAMPTZ,
		updated_at TIMESTAMPTZ,
		deleted_at TIMESTAMPTZ
	);
	CREATE INDEX IF NOT EXISTS idx_countries_slug ON countries (slug);
	`

	universities_table := `
	CREATE TABLE IF NOT EXISTS universities (
		id CHAR(24) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255),
		country_id CHAR(24) NOT NULL REFERENCES countries(id) ON DELETE CASCADE,
		city VARCHAR(255),
		website VARCHAR(255),
		description TEXT,
		logo_key VARCHAR(255),
		logo_url VARCHAR(512),
		ranking INT DEFAULT 0,
		published BOOLEAN DEFAULT TRUE,
		created_at TIMESTAMPTZ,
		updated_at TIMESTAMPTZ,
		deleted_at TIMESTAMPTZ
	);
	CREATE INDEX IF NOT EXISTS idx_universities_slug ON universities (slug);
	CREATE INDEX IF NOT EXISTS idx_universities_country ON universities (country_id);
	`

	courses_table := `
	CREATE TABLE IF NOT EXISTS courses (
		id CHAR(24) PRIMARY KEY,
		university_id CHAR(24) NOT NULL REFERENCES universities(id) ON DELETE CASCADE,
		country_id CHAR(24) NOT NULL REFERENCES countries(id),
		program_name VARCHAR(255) NOT NULL,
		study_level VARCHAR(32) NOT NULL,
		slug VARCHAR(255),
		campus VARCHAR(255) DEFAULT 'Main Campus',
		duration VARCHAR(100) DEFAULT 'Not specified',
		intakes VARCHAR(255),
		yearly_tuition_fees VARCHAR(100),
		currency VARCHAR(10) DEFAULT 'USD',
		application_deadline VARCHAR(255),
		ielts_score NUMERIC NOT NULL,
		ielts_no_band_less_than NUMERIC NOT NULL,
		pte_score NUMERIC,
		toefl_score NUMERIC,
		duolingo_score NUMERIC,
		gmat_score NUMERIC,
		gre_score NUMERIC,
		scholarships JSONB,
		career_prospects JSONB,
		accreditation JSONB,
		specializations JSONB,
		published BOOLEAN DEFAULT TRUE,
		created_at TIMESTAMPTZ,
		updated_at TIMESTAMPTZ,
		deleted_at TIMESTAMPTZ
	);
	CREATE INDEX IF NOT EXISTS idx_courses_university ON courses (university_id);
	CREATE INDEX IF NOT EXISTS idx_courses_country ON courses (country_id);
	CREATE INDEX IF NOT EXISTS idx_courses_slug ON courses (slug);
	`

	blog_posts_table := `
	CREATE TABLE IF NOT EXISTS blog_posts (
		id CHAR(24) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		slug VARCHAR(255),
		excerpt TEXT,
		content JSONB,
		author VARCHAR(255),
		category VARCHAR(100),
		cover_image_key VARCHAR(255),
		cover_image_url VARCHAR(512),
		published BOOLEAN DEFAULT TRUE,
		created_at TIMESTAMPTZ,
		updated_at TIMESTAMPTZ,
		deleted_at TIMESTAMPTZ
	);
	CREATE INDEX IF NOT EXISTS idx_blog_posts_slug ON blog_posts (slug);
	`

	leads_table := `
	CREATE TABLE IF NOT EXISTS leads (
		id CHAR(24) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(50),
		program_of_interest VARCHAR(255),
		university_of_interest VARCHAR(255),
		country_of_interest VARCHAR(255),
		message TEXT,
		status VARCHAR(20) DEFAULT 'new',
		created_at TIMESTAMPTZ,
		updated_at TIMESTAMPTZ,
		deleted_at TIMESTAMPTZ
	);
	CREATE INDEX IF NOT EXISTS idx_leads_email ON leads (email);
	CREATE INDEX IF NOT EXISTS idx_leads_status ON leads (status);
	`

	users_table := `
	CREATE TABLE IF NOT EXISTS users (
		id CHAR(24) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password TEXT NOT NULL,
		role VARCHAR(20) DEFAULT 'editor',
		token_version INT DEFAULT 0,
		last_login_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ,
		updated_at TIMESTAMPTZ,
		deleted_at TIMESTAMPTZ
	);
	`

	token_blacklist_table := `
	CREATE TABLE IF NOT EXISTS jwt_token_blacklist (
		id SERIAL PRIMARY KEY,
		token TEXT UNIQUE NOT NULL,
		user_id CHAR(24),
		reason VARCHAR(100),
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ,
		updated_at TIMESTAMPTZ,
		deleted_at TIMESTAMPTZ
	);
	`

	cron_job_logs_table := `
	CREATE TABLE IF NOT EXISTS cron_job_logs (
		id SERIAL PRIMARY KEY,
		job_name VARCHAR(100) NOT NULL,
		status VARCHAR(20) NOT NULL,
		message TEXT,
		duration_ms BIGINT,
		created_at TIMESTAMPTZ
	);
	`

	tables := []string{
		countries_table,
		universities_table,
		courses_table,
		blog_posts_table,
		leads_table,
		users_table,
		token_blacklist_table,
		cron_job_logs_table,
	}

	for _, table := range tables {
		if _, err := s.db.Exec(table); err != nil {
			return err
		}
	}

	return nil
}
