package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken         string
	SpreadsheetKey   string
	CredentialsFile  string
	LogLevel         string
	RecentOrdersDays int
	SheetExpenses    string
	SheetIncomes     string
	SheetOrders      string
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	days := 7
	if v := os.Getenv("RECENT_ORDERS_DAYS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		days = parsed
	}

	cfg := &Config{
		BotToken:         os.Getenv("TELEGRAM_BOT_TOKEN"),
		SpreadsheetKey:   os.Getenv("GOOGLE_SHEETS_KEY"),
		CredentialsFile:  getenv("GOOGLE_CREDENTIALS_FILE", "telegram-expense-bot.json"),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		RecentOrdersDays: days,
		SheetExpenses:    getenv("SHEET_EXPENSES", "CF_out_bot"),
		SheetIncomes:     getenv("SHEET_INCOMES", "CF_in_bot"),
		SheetOrders:      getenv("SHEET_ORDERS", "CF_orders_bot"),
	}

	if cfg.BotToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN is not set")
	}
	if cfg.SpreadsheetKey == "" {
		return nil, errors.New("GOOGLE_SHEETS_KEY is not set")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
