package logger

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Logger представляет структурированный логгер
type Logger struct {
	*logrus.Logger
}

// New создает новый экземпляр логгера, пишущий в stderr
// stdout остаётся за результатами конвертации
func New(level, format string) *Logger {
	return NewWithOutput(level, format, os.Stderr)
}

// NewWithOutput создает логгер с заданным выводом
func NewWithOutput(level, format string, out io.Writer) *Logger {
	logger := logrus.New()

	// Настройка формата вывода
	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	// Настройка уровня логирования
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	logger.SetOutput(out)

	return &Logger{logger}
}

// ForRun возвращает запись лога, помеченную идентификатором запуска
func (l *Logger) ForRun() *logrus.Entry {
	return l.Logger.WithField("run_id", uuid.NewString())
}
