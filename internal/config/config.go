package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/rejot-dev/example-microservice/pkg/logger"
	"github.com/spf13/viper"
)

// MustInit loads .env and the service's config.yaml, then installs the
// default logger. serviceName selects the config directory, e.g. "orders"
// reads ./configs/orders/config.yaml.
func MustInit(serviceName string) {
	if err := godotenv.Load("./.env"); err != nil {
		panic("error while loading .env file: " + err.Error())
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/" + serviceName + "-svc")
	viper.AddConfigPath("./configs/" + serviceName)
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		panic("error while reading config file: " + err.Error())
	}
	SetupLogger()
}

func SetupLogger() {
	handler := logger.NewHandler(nil)
	log := slog.New(handler)
	slog.SetDefault(log)
}
