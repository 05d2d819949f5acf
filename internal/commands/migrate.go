package commands

import (
	"fmt"
	"log"

	"hrportal/backend/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "CREATE TYPE \"user_role\" AS ENUM",
		Query: `
        CREATE TYPE "user_role" AS ENUM ('EMPLOYEE', 'ADMIN');`,
	},
	{
		Index:       2,
		Description: "Create table: users.",
		Query: `
        CREATE TABLE IF NOT EXISTS users (
            id serial primary key,
            employee_id text not null,
            password text not null,
            role user_role,
            first_name text,
            last_name text,
            uses_transport boolean default true,
            has_company_car boolean default false,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       3,
		Description: "Create admin with employee_id: Admin01, password: 1",
		Query: `
        INSERT INTO users(employee_id, role, password)
        SELECT 'Admin01', 'ADMIN', '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2'
        WHERE NOT EXISTS (SELECT employee_id FROM users WHERE employee_id = 'Admin01');
        `,
	},
	{
		Index:       4,
		Description: "CREATE TYPE \"attendance_reason\" AS ENUM",
		Query: `
        CREATE TYPE "attendance_reason" AS ENUM ('ANNUAL_LEAVE', 'REPORT', 'BEREAVEMENT', 'BIRTH', 'EXCUSE');`,
	},
	{
		Index:       5,
		Description: "CREATE TYPE \"document_request_type\" AS ENUM",
		Query: `
        CREATE TYPE "document_request_type" AS ENUM ('MEDICAL_REPORT', 'ANNUAL_LEAVE');`,
	},
	{
		Index:       6,
		Description: "Create table: attendance.",
		Query: `
        CREATE TABLE IF NOT EXISTS attendance (
            id SERIAL PRIMARY KEY,
            employee_id TEXT NOT NULL,
            reason attendance_reason NOT NULL,
            description VARCHAR(1000),
            is_resolved BOOLEAN DEFAULT false,
            document_request_id INT,
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES users(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES users(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES users(id)
        );`,
	},
	{
		Index:       7,
		Description: "Create table: document_request. One request per attendance.",
		Query: `
        CREATE TABLE IF NOT EXISTS document_request (
            id SERIAL PRIMARY KEY,
            employee_id TEXT NOT NULL,
            type document_request_type NOT NULL,
            attendance_id INT NOT NULL UNIQUE REFERENCES attendance(id),
            start_date DATE,
            end_date DATE,
            uploaded_file_path VARCHAR(260),
            uploaded_file_name VARCHAR(150),
            completed_at TIMESTAMP,
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES users(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES users(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES users(id)
        );`,
	},
	{
		Index:       8,
		Description: "Create table: transport. One row per employee per day.",
		Query: `
        CREATE TABLE IF NOT EXISTS transport (
            id SERIAL PRIMARY KEY,
            employee_id TEXT NOT NULL,
            travel_date DATE NOT NULL,
            from_point VARCHAR(150),
            to_point VARCHAR(150),
            will_use BOOLEAN DEFAULT true,
            notes TEXT,
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES users(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES users(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES users(id)
        );
        CREATE UNIQUE INDEX IF NOT EXISTS transport_employee_day
            ON transport (employee_id, travel_date)
            WHERE deleted_at IS NULL;`,
	},
	{
		Index:       9,
		Description: "Create table: service.",
		Query: `
        CREATE TABLE IF NOT EXISTS service (
            id SERIAL PRIMARY KEY,
            name VARCHAR(150) NOT NULL,
            start_point VARCHAR(200) NOT NULL,
            end_point VARCHAR(200) NOT NULL,
            start_time TIME,
            plate_number VARCHAR(20) NOT NULL,
            seat_count INT NOT NULL DEFAULT 14 CHECK (seat_count > 0 AND seat_count <= 100),
            fuel_type VARCHAR(50),
            brand VARCHAR(80),
            model VARCHAR(80),
            is_active BOOLEAN DEFAULT true,
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES users(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES users(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES users(id)
        );`,
	},
	{
		Index:       10,
		Description: "Create table: service_assignment. One active row per employee.",
		Query: `
        CREATE TABLE IF NOT EXISTS service_assignment (
            id SERIAL PRIMARY KEY,
            service_id INT NOT NULL REFERENCES service(id),
            employee_id TEXT NOT NULL,
            assigned_at TIMESTAMP DEFAULT NOW(),
            is_active BOOLEAN DEFAULT true,
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES users(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES users(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES users(id)
        );
        CREATE UNIQUE INDEX IF NOT EXISTS service_assignment_one_active
            ON service_assignment (employee_id)
            WHERE is_active AND deleted_at IS NULL;`,
	},
}

// Migrate creates the scheme in the database.
func Migrate(db *postgresql.Database) {
	for _, s := range scheme {
		if _, err := db.Query(s.Query); err != nil {
			log.Fatalln("migrate error", err)
		}
	}
}

func MigrateUP(db *postgresql.Database) {
	var (
		version int
		dirty   bool
		er      *string
	)
	err := db.QueryRow("SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if err != nil {
		if err.Error() == `ERROR: relation "schema_migrations" does not exist (SQLSTATE=42P01)` {
			if _, err = db.Exec(`
				CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text);
				DELETE FROM schema_migrations;
				INSERT INTO schema_migrations (version, dirty) values (0, false);
			`); err != nil {
				log.Fatalln("migrate schema_migrations create error", err)
			}
			version = 0
			dirty = false
		} else {
			log.Fatalln("migrate schema_migrations scan: ", err)
		}
	}

	if dirty {
		for _, v := range scheme {
			if v.Index == version {
				if _, err = db.Exec(v.Query); err != nil {
					if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s'`, err.Error())); err != nil {
						log.Fatalln("migrate error", err)
					}
					log.Fatalln(fmt.Sprintf("migrate error version: %d", version), err)
				}
				if _, err = db.Exec(`UPDATE schema_migrations SET dirty = false, error = null`); err != nil {
					log.Fatalln("migrate error", err)
				}
			}
		}
	}

	for _, s := range scheme {
		if s.Index > version {
			if _, err = db.Exec(s.Query); err != nil {
				if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s', version = %d, dirty = true`, err.Error(), s.Index)); err != nil {
					log.Fatalln("migrate error", err)
				}
				log.Fatalln(fmt.Sprintf("migrate error version: %d", s.Index), err)
			}
			if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET version = %d`, s.Index)); err != nil {
				log.Fatalln("migrate error", err)
			}
		}
	}
}
