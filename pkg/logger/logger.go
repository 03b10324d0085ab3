package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log - глобальный логгер движка.
var Log *logrus.Logger

func init() {
	// Страховка для пакетов, пишущих в лог до вызова Init
	// (например, тестов отдельного пакета).
	Log = logrus.New()
	Log.SetLevel(logrus.WarnLevel)
}

// Init настраивает глобальный логгер из окружения. Вызывается один раз
// при старте приложения в main.go.
// DUUM_LOG_LEVEL: trace|debug|info|warn|error (по умолчанию info).
// DUUM_LOG_FORMAT: "json" - для продакшена и сбора логов, иначе текст.
func Init() {
	Log = logrus.New()

	logLevel, ok := os.LookupEnv("DUUM_LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("DUUM_LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// Silence глушит вывод целиком. Нужен бенчмаркам и шумным тестам.
func Silence() {
	Log.SetOutput(io.Discard)
}
