package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Consul   ConsulConfig
	JWT      JWTConfig
	Upload   UploadConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	ServiceName string
	ServiceID   string
	LogDir      string
}

type MongoDBConfig struct {
	URI      string
	Database string
	PoolSize uint64
	Timeout  time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	URI string
}

type ConsulConfig struct {
	Address     string
	ServiceName string
	ServiceID   string
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type UploadConfig struct {
	Dir         string
	PublicPath  string
	MaxFileSize int64
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	serviceName := getEnv("SERVICE_NAME", "donation-service")
	serviceID := serviceName + "-" + getEnv("HOSTNAME", "1")

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "3000"),
			Host:        getEnv("HOST", "0.0.0.0"),
			ServiceName: serviceName,
			ServiceID:   serviceID,
			LogDir:      getEnv("LOG_DIR", ""),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DB", "menna"),
			PoolSize: getEnvAsUint64("MONGODB_POOL_SIZE", 100),
			Timeout:  getEnvAsDuration("MONGODB_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PWD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			URI: getEnv("RABBITMQ_URI", ""),
		},
		Consul: ConsulConfig{
			Address:     getEnv("CONSUL_ADDRESS", ""),
			ServiceName: serviceName,
			ServiceID:   serviceID,
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			// Tokens are valid for 9 days, matching the admin app's session length.
			Expiry: time.Duration(getEnvAsInt("TOKEN_EXPIRY_HOURS", 216)) * time.Hour,
		},
		Upload: UploadConfig{
			Dir:         getEnv("UPLOAD_DIR", "uploads"),
			PublicPath:  getEnv("UPLOAD_PUBLIC_PATH", "/uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 50*1024*1024),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			log.Printf("Error converting %s to int: %v", key, err)
			return defaultValue
		}
		return intVal
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			log.Printf("Error converting %s to int64: %v", key, err)
			return defaultValue
		}
		return intVal
	}
	return defaultValue
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			log.Printf("Error converting %s to uint64: %v", key, err)
			return defaultValue
		}
		return intVal
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			log.Printf("Error converting %s to duration: %v", key, err)
			return defaultValue
		}
		return time.Duration(intVal) * time.Second
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
