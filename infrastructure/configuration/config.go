package configuration

import (
	"fmt"
	"os"
	"strconv"

	"music-stream/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	YouTube     YouTube     `json:"youtube"`
	Cache       Cache       `json:"cache"`
	RedisClient RedisClient `json:"redisClient"`
	Data        Data        `json:"data"`
}

type App struct {
	Port int `json:"port"`
}

// YouTube holds up to four API keys. Key 1 is mandatory; the rest widen
// the quota budget for rotation.
type YouTube struct {
	APIKey1 string `json:"apiKey1"`
	APIKey2 string `json:"apiKey2"`
	APIKey3 string `json:"apiKey3"`
	APIKey4 string `json:"apiKey4"`
}

type Cache struct {
	// DurationMinutes is the TTL applied to every cached provider response.
	DurationMinutes int `json:"durationMinutes"`
	// SweepMinutes is the interval of the background eviction sweep.
	SweepMinutes int `json:"sweepMinutes"`
}

// RedisClient configures the optional second cache tier. Empty host
// disables it.
type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Data struct {
	// Dir is where durable state (recent searches) lives.
	Dir string `json:"dir"`
}

var C Config

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
	logger.GetLogger().WithField("config", name).Info("Config set up successfully")

	initApp(&C)
	initCache(&C)
	initData(&C)
	initRedis(&C)
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initApp(C *Config) {
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10001
	}
}

func initCache(C *Config) {
	if v := os.Getenv("CACHE_DURATION_MINUTES"); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m > 0 {
			C.Cache.DurationMinutes = m
		}
	}
	if C.Cache.DurationMinutes == 0 {
		C.Cache.DurationMinutes = 24 * 60
	}
	if C.Cache.SweepMinutes == 0 {
		C.Cache.SweepMinutes = 5
	}
}

func initData(C *Config) {
	if v := os.Getenv("DATA_DIR"); v != "" {
		C.Data.Dir = v
	}
	if C.Data.Dir == "" {
		C.Data.Dir = "data"
	}
}

func initRedis(C *Config) {
	if v := os.Getenv("REDIS_HOST"); v != "" {
		C.RedisClient.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		C.RedisClient.Port = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		C.RedisClient.Password = v
	}
	if C.RedisClient.Host != "" && C.RedisClient.Port == "" {
		C.RedisClient.Port = "6379"
	}
}
