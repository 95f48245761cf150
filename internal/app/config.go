package app

import "os"

// Config описывает настройки запуска приложения.
type Config struct {
	// HTTPAddr — адрес основного JSON API.
	HTTPAddr string
	// MetricsAddr — адрес служебного сервера (/metrics, health-пробы).
	MetricsAddr string
	// JWTSecret — общий секрет подписи токенов. Обязателен.
	JWTSecret string
	// PostgresDSN — строка подключения; пустая означает in-memory хранилище.
	PostgresDSN string
	// KafkaBrokers — список брокеров через запятую; пустой отключает события.
	KafkaBrokers string
	// AdminEmail и AdminPassword задают учётную запись администратора,
	// создаваемую при первом запуске.
	AdminEmail    string
	AdminPassword string
}

// DefaultConfig возвращает настройки для локального запуска.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:      ":8080",
		MetricsAddr:   ":9090",
		AdminEmail:    "admin@localhost",
		AdminPassword: "admin",
	}
}

// ReadConfig накладывает переменные окружения на настройки по умолчанию.
func ReadConfig() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("BACKOFFICE_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("BACKOFFICE_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("BACKOFFICE_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("BACKOFFICE_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = v
	}
	if v := os.Getenv("BACKOFFICE_ADMIN_EMAIL"); v != "" {
		cfg.AdminEmail = v
	}
	if v := os.Getenv("BACKOFFICE_ADMIN_PASSWORD"); v != "" {
		cfg.AdminPassword = v
	}
	return cfg
}
