package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	LedgerRPCURL    string
	LedgerTimeout   time.Duration
	ConfirmAttempts int
	ConfirmInterval time.Duration
	NotFoundGrace   time.Duration
}
