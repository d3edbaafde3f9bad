package database

import (
	"database/sql"
	stdlog "log"

	"github.com/username/edavkifolio/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	if logger.L != nil {
		logger.L.Info("Checking database schema", "databasePath", databasePath)
	} else {
		stdlog.Println("Checking database schema for:", databasePath)
	}
	migrateRunsTable()

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS taxpayers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tax_number TEXT NOT NULL UNIQUE,
		taxpayer_type TEXT NOT NULL DEFAULT 'FO',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		report_year INTEGER NOT NULL,
		input_files TEXT NOT NULL,
		trade_count INTEGER,
		dividend_count INTEGER,
		skipped_dividend_count INTEGER,
		warning_count INTEGER,
		warnings TEXT,
		test_filing BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err = DB.Exec(createTableStatement)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}
	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.")
	} else {
		stdlog.Println("Database tables ensured/created.")
	}
}

func migrateRunsTable() {
	var tableName string
	err := DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='runs'").Scan(&tableName)
	if err != nil {
		if err == sql.ErrNoRows {
			if logger.L != nil {
				logger.L.Info("'runs' table does not exist, no migration needed as table will be created.")
			} else {
				stdlog.Println("'runs' table does not exist, no migration needed as table will be created.")
			}
			return
		}
		if logger.L != nil {
			logger.L.Error("Error checking for 'runs' table", "error", err)
		} else {
			stdlog.Printf("Error checking for 'runs' table: %v", err)
		}
		return
	}

	rows, err := DB.Query("PRAGMA table_info(runs)")
	if err != nil {
		if logger.L != nil {
			logger.L.Error("Error querying table schema for 'runs'", "error", err)
		} else {
			stdlog.Printf("Error querying table schema for 'runs': %v", err)
		}
		return
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}

		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			if logger.L != nil {
				logger.L.Error("Error scanning column info for 'runs'", "error", err)
			} else {
				stdlog.Printf("Error scanning column info for 'runs': %v", err)
			}
			return
		}
		columnExists[name] = true
	}
	if err = rows.Err(); err != nil {
		if logger.L != nil {
			logger.L.Error("Error iterating over column info for 'runs'", "error", err)
		} else {
			stdlog.Printf("Error iterating over column info for 'runs': %v", err)
		}
		return
	}

	if _, ok := columnExists["skipped_dividend_count"]; !ok {
		_, err := DB.Exec("ALTER TABLE runs ADD COLUMN skipped_dividend_count INTEGER")
		if err != nil {
			logger.L.Error("Error adding 'skipped_dividend_count' column to 'runs' table", "error", err)
		} else {
			logger.L.Info("Added 'skipped_dividend_count' column to 'runs' table")
		}
	}

	if _, ok := columnExists["test_filing"]; !ok {
		_, err := DB.Exec("ALTER TABLE runs ADD COLUMN test_filing BOOLEAN DEFAULT FALSE")
		if err != nil {
			logger.L.Error("Error adding 'test_filing' column to 'runs' table", "error", err)
		} else {
			logger.L.Info("Added 'test_filing' column to 'runs' table")
		}
	}
}
