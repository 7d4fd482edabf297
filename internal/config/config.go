package config

import (
	"log"
	"os"

	"github.com/shopspring/decimal"
)

type Config struct {
	Port        string
	DBDSN       string
	LogFile     string
	ShippingFee decimal.Decimal
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "vendora.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")

	fee := decimal.NewFromFloat(5.00) // flat shipping per order
	if raw := os.Getenv("SHIPPING_FEE"); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil && !d.IsNegative() {
			fee = d
		} else {
			log.Printf("[config] ignoring invalid SHIPPING_FEE=%q", raw)
		}
	}

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, ShippingFee: fee}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s SHIPPING_FEE=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.ShippingFee)
	return cfg
}
