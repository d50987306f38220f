package configs

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv .env dosyasını yükler. Dosya yoksa ortam değişkenleriyle devam edilir
// (container ortamlarında .env bulunmayabilir).
func LoadEnv() error {
	if err := godotenv.Load(); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return nil
}

// GetEnv bir ortam değişkenini okur, boşsa varsayılanı döndürür.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvInt sayısal bir ortam değişkenini okur.
func GetEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// GetEnvBool "true"/"1" değerlerini true sayar.
func GetEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value == "true" || value == "1"
}
