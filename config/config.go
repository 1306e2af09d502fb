package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Game    GameConfig    `mapstructure:"game"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
	MetricsAddress string `mapstructure:"metrics_address"`
}

type CatalogConfig struct {
	File string `mapstructure:"file"`
}

// GameConfig carries the auction rules that are tunable per deployment.
// Countdown durations are in whole seconds, matching the one-tick-per-second
// snapshot broadcast.
type GameConfig struct {
	StartingBalance int `mapstructure:"starting_balance"`
	RosterCapacity  int `mapstructure:"roster_capacity"`
	InitialTime     int `mapstructure:"initial_time"`
	BidTime         int `mapstructure:"bid_time"`
	SpinDelayMs     int `mapstructure:"spin_delay_ms"`
	LogCapacity     int `mapstructure:"log_capacity"`
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.http_address", ":8080")
	viper.SetDefault("server.rpc_address", ":8081")
	viper.SetDefault("server.metrics_address", ":9090")
	viper.SetDefault("catalog.file", "players.json")
	viper.SetDefault("game.starting_balance", 1000)
	viper.SetDefault("game.roster_capacity", 11)
	viper.SetDefault("game.initial_time", 100)
	viper.SetDefault("game.bid_time", 60)
	viper.SetDefault("game.spin_delay_ms", 2500)
	viper.SetDefault("game.log_capacity", 500)

	viper.AutomaticEnv()

	if err = viper.ReadInConfig(); err != nil {
		// The config file is optional, defaults cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	err = viper.Unmarshal(&config)
	return
}
