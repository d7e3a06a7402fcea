package configs

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DBDriver  string
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	// both rates apply to every order's base amount; shared by all callers
	GSTRate         decimal.Decimal
	PlatformFeeRate decimal.Decimal

	// upper bound on revenue report work per request
	RequestTimeout time.Duration
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file, using process environment")
	}

	return &Config{
		DBDriver:        getEnv("DB_DRIVER", "sqlite"),
		DBSource:        getEnv("DB_SOURCE", "tomato.db"),
		Port:            getEnv("PORT", "8000"),
		JWTSecret:       getEnv("JWT_SECRET", "changeme"),
		JWTTTL:          24 * time.Hour,
		GSTRate:         getRate("GST_RATE", "0.01"),
		PlatformFeeRate: getRate("PLATFORM_FEE_RATE", "0.01"),
		RequestTimeout:  10 * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getRate(key, fallback string) decimal.Decimal {
	raw := getEnv(key, fallback)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		logrus.WithField("key", key).WithError(err).Fatal("invalid rate")
	}
	return d
}
