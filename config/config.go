package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration, loaded once at startup.
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServerPort  string `mapstructure:"SERVER_PORT"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`

	// Database
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	// Redis
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// JWT / OAuth session state
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`

	// Google OAuth
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURI  string `mapstructure:"GOOGLE_REDIRECT_URI"`

	// Object storage
	AWSRegion    string `mapstructure:"AWS_REGION"`
	AWSAccessKey string `mapstructure:"AWS_ACCESS_KEY"`
	AWSSecretKey string `mapstructure:"AWS_SECRET_KEY"`
	AWSS3Bucket  string `mapstructure:"AWS_S3_BUCKET"`

	// Emotion classifier
	EmotionAPIKey      string `mapstructure:"EMOTION_API_KEY"`
	EmotionAPIEndpoint string `mapstructure:"EMOTION_API_ENDPOINT"`
	EmotionModel       string `mapstructure:"EMOTION_MODEL"`
}

// LoadConfig reads configuration from a .env file or the environment.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		// The config file is optional; environment variables still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}

// GetDBConnString returns the MySQL DSN.
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// GetRedisConnString returns the Redis address.
func (c *Config) GetRedisConnString() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
