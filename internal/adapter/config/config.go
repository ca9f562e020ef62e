package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Pricing  *Pricing
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

// Pricing holds the calculator tunables as decimal strings; they are parsed
// once at startup. Defaults match the BDT storefront tariff.
type Pricing struct {
	TaxRate               string `env:"TAX_RATE" envDefault:"0.05"`
	ShippingFee           string `env:"SHIPPING_FEE" envDefault:"100"`
	FreeShippingThreshold string `env:"FREE_SHIPPING_THRESHOLD" envDefault:"1000"`
	MinAdvance            string `env:"MIN_ADVANCE" envDefault:"50"`
	Currency              string `env:"CURRENCY" envDefault:"BDT"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var pricing Pricing
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}
	err = env.Parse(&pricing)
	if err != nil {
		return nil, fmt.Errorf("error parsing pricing config: %w", err)
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Pricing:  &pricing,
		App:      &app,
	}

	return &config, nil
}
