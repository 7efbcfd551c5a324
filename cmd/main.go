package main

import (
	"context"
	"log"
	"time"

	"gopkg.in/telebot.v3"

	"expense-ledger-bot/internal/bot"
	"expense-ledger-bot/internal/config"
	"expense-ledger-bot/internal/conversation"
	"expense-ledger-bot/internal/ledger"
	"expense-ledger-bot/internal/logger"
	"expense-ledger-bot/internal/session"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("error loading configuration: %v", err)
	}
	appLogger := logger.New(cfg.LogLevel)

	sheetsLedger, err := ledger.NewSheetsLedger(context.Background(), cfg.CredentialsFile, cfg.SpreadsheetKey)
	if err != nil {
		appLogger.Fatalf("unable to connect to spreadsheet: %v", err)
	}

	botSettings := telebot.Settings{
		Token:  cfg.BotToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	}
	botAPI, err := telebot.NewBot(botSettings)
	if err != nil {
		appLogger.Fatalf("error creating bot instance: %v", err)
	}

	tables := ledger.Tables{
		Expenses: cfg.SheetExpenses,
		Incomes:  cfg.SheetIncomes,
		Orders:   cfg.SheetOrders,
	}
	machine := conversation.New(
		session.NewStore(),
		sheetsLedger,
		bot.NewSender(botAPI),
		appLogger,
		tables,
		time.Duration(cfg.RecentOrdersDays)*24*time.Hour,
	)

	bot.RegisterHandlers(botAPI, machine, appLogger)
	appLogger.Info("bot start")
	botAPI.Start()
}
