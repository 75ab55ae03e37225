package config

import (
	"fmt"

	"github.com/KALU56/E-Self/pkg/chapa"
	"github.com/KALU56/E-Self/pkg/mq"
	"github.com/KALU56/E-Self/pkg/mysql"
	"github.com/spf13/viper"
)

type Config struct {
	API      API          `mapstructure:"api"`
	Database mysql.Config `mapstructure:"database"`
	Chapa    chapa.Config `mapstructure:"chapa"`
	RabbitMQ mq.Config    `mapstructure:"rabbitmq"`
	Auth     Auth         `mapstructure:"auth"`
	Payments Payments     `mapstructure:"payments"`
}

type API struct {
	Port        string `mapstructure:"port"`
	MetricsPort string `mapstructure:"metrics_port"`
	BaseURL     string `mapstructure:"base_url"`
	FrontendURL string `mapstructure:"frontend_url"`
}

type Auth struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type Payments struct {
	Currency string `mapstructure:"currency"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
