// Package database persists faucet drip requests in PostgreSQL.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// FaucetRequest represents a faucet request record
type FaucetRequest struct {
	ID          int64      `json:"id"`
	Recipient   string     `json:"recipient"`
	Amount      int64      `json:"amount"`
	TxHash      string     `json:"tx_hash"`
	IPAddress   string     `json:"ip_address"`
	Status      string     `json:"status"` // pending, success, failed
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Statistics holds faucet statistics
type Statistics struct {
	TotalRequests      int64 `json:"total_requests"`
	SuccessfulRequests int64 `json:"successful_requests"`
	FailedRequests     int64 `json:"failed_requests"`
	TotalDistributed   int64 `json:"total_distributed"`
	UniqueRecipients   int64 `json:"unique_recipients"`
	RequestsLast24h    int64 `json:"requests_last_24h"`
	RequestsLastHour   int64 `json:"requests_last_hour"`
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(connectionString string) (*DB, error) {
	conn, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection established")

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Migrate runs database migrations
func (db *DB) Migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS faucet_requests (
		id SERIAL PRIMARY KEY,
		recipient VARCHAR(255) NOT NULL,
		amount BIGINT NOT NULL,
		tx_hash VARCHAR(255),
		ip_address VARCHAR(45) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		error TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		completed_at TIMESTAMP WITH TIME ZONE
	);

	CREATE INDEX IF NOT EXISTS idx_recipient ON faucet_requests(recipient);
	CREATE INDEX IF NOT EXISTS idx_ip_address ON faucet_requests(ip_address);
	CREATE INDEX IF NOT EXISTS idx_created_at ON faucet_requests(created_at);
	CREATE INDEX IF NOT EXISTS idx_status ON faucet_requests(status);
	`

	if _, err := db.conn.Exec(query); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations completed")
	return nil
}

// CreateRequest creates a new faucet request in the pending state
func (db *DB) CreateRequest(recipient, ipAddress string, amount int64) (*FaucetRequest, error) {
	query := `
		INSERT INTO faucet_requests (recipient, amount, ip_address, status)
		VALUES ($1, $2, $3, 'pending')
		RETURNING id, recipient, amount, ip_address, status, created_at
	`

	req := &FaucetRequest{}
	err := db.conn.QueryRow(query, recipient, amount, ipAddress).Scan(
		&req.ID,
		&req.Recipient,
		&req.Amount,
		&req.IPAddress,
		&req.Status,
		&req.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return req, nil
}

// UpdateRequestSuccess marks a request as successful
func (db *DB) UpdateRequestSuccess(id int64, txHash string) error {
	query := `
		UPDATE faucet_requests
		SET status = 'success', tx_hash = $1, completed_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`

	if _, err := db.conn.Exec(query, txHash, id); err != nil {
		return fmt.Errorf("failed to update request: %w", err)
	}

	return nil
}

// UpdateRequestFailed marks a request as failed with an error message
func (db *DB) UpdateRequestFailed(id int64, errorMsg string) error {
	query := `
		UPDATE faucet_requests
		SET status = 'failed', error = $1, completed_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`

	if _, err := db.conn.Exec(query, errorMsg, id); err != nil {
		return fmt.Errorf("failed to update request: %w", err)
	}

	return nil
}

// GetRecentRequests gets the most recent successful requests
func (db *DB) GetRecentRequests(limit int) ([]*FaucetRequest, error) {
	query := `
		SELECT id, recipient, amount, tx_hash, ip_address, status, created_at, completed_at
		FROM faucet_requests
		WHERE status = 'success'
		ORDER BY created_at DESC
		LIMIT $1
	`

	return db.queryRequests(query, limit)
}

// GetRequestsByAddress gets requests for a recipient address within a time window
func (db *DB) GetRequestsByAddress(address string, since time.Time) ([]*FaucetRequest, error) {
	query := `
		SELECT id, recipient, amount, tx_hash, ip_address, status, created_at, completed_at
		FROM faucet_requests
		WHERE recipient = $1 AND created_at >= $2
		ORDER BY created_at DESC
	`

	return db.queryRequests(query, address, since)
}

// GetRequestsByIP gets requests from an IP within a time window
func (db *DB) GetRequestsByIP(ipAddress string, since time.Time) ([]*FaucetRequest, error) {
	query := `
		SELECT id, recipient, amount, tx_hash, ip_address, status, created_at, completed_at
		FROM faucet_requests
		WHERE ip_address = $1 AND created_at >= $2
		ORDER BY created_at DESC
	`

	return db.queryRequests(query, ipAddress, since)
}

func (db *DB) queryRequests(query string, args ...interface{}) ([]*FaucetRequest, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []*FaucetRequest
	for rows.Next() {
		req := &FaucetRequest{}
		var txHash sql.NullString
		err := rows.Scan(
			&req.ID,
			&req.Recipient,
			&req.Amount,
			&txHash,
			&req.IPAddress,
			&req.Status,
			&req.CreatedAt,
			&req.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		req.TxHash = txHash.String
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// GetStatistics aggregates faucet statistics
func (db *DB) GetStatistics() (*Statistics, error) {
	stats := &Statistics{}

	counters := []struct {
		query string
		dest  *int64
	}{
		{"SELECT COUNT(*) FROM faucet_requests", &stats.TotalRequests},
		{"SELECT COUNT(*) FROM faucet_requests WHERE status = 'success'", &stats.SuccessfulRequests},
		{"SELECT COUNT(*) FROM faucet_requests WHERE status = 'failed'", &stats.FailedRequests},
		{"SELECT COALESCE(SUM(amount), 0) FROM faucet_requests WHERE status = 'success'", &stats.TotalDistributed},
		{"SELECT COUNT(DISTINCT recipient) FROM faucet_requests WHERE status = 'success'", &stats.UniqueRecipients},
		{"SELECT COUNT(*) FROM faucet_requests WHERE created_at >= NOW() - INTERVAL '24 hours'", &stats.RequestsLast24h},
		{"SELECT COUNT(*) FROM faucet_requests WHERE created_at >= NOW() - INTERVAL '1 hour'", &stats.RequestsLastHour},
	}

	for _, c := range counters {
		if err := db.conn.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to aggregate statistics: %w", err)
		}
	}

	return stats, nil
}
