package config

import (
	"panda-api/pkg/confkit"
	"panda-api/pkg/exchange"
)

// DefaultExchangeConfigPath is the exchange section file relative to the
// project root.
const DefaultExchangeConfigPath = "etc/exchanges.yaml"

// MustLoadExchange loads etc/exchanges.yaml from the project root and panics
// on error. It isolates the exchange section so tests that only need adapter
// settings do not have to stand up a full server config.
func MustLoadExchange() *exchange.Config {
	cfg, err := exchange.LoadConfig(confkit.MustProjectPath(DefaultExchangeConfigPath))
	if err != nil {
		panic(err)
	}
	return cfg
}
