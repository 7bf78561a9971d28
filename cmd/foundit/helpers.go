package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/techtitans/foundit/internal/matcher"
	"github.com/techtitans/foundit/internal/notify"
	"github.com/techtitans/foundit/internal/service"
	"github.com/techtitans/foundit/internal/storage"
)

// openStorage opens the configured sqlite database.
func openStorage() (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "foundit", "foundit.db")
	}

	return storage.NewSQLiteStorage(dbPath)
}

// createNotifier builds the notification collaborator. Without SMTP
// configuration, notifications are logged instead of delivered.
func createNotifier() service.Notifier {
	host := viper.GetString("smtp.host")
	from := viper.GetString("smtp.from")
	if host == "" || from == "" {
		return notify.LogNotifier{}
	}

	notifier, err := notify.NewEmailNotifier(notify.Config{
		Host:     host,
		Port:     viper.GetInt("smtp.port"),
		From:     from,
		Password: viper.GetString("smtp.password"),
		Sender:   viper.GetString("smtp.sender"),
	})
	if err != nil {
		slog.Warn("email notifier unavailable, logging notifications instead", "error", err)
		return notify.LogNotifier{}
	}
	return notifier
}

// matcherConfig reads the matching thresholds, keeping the defaults when
// unset.
func matcherConfig() matcher.Config {
	config := matcher.DefaultConfig()
	if viper.IsSet("match.min_confidence") {
		config.MinConfidence = viper.GetInt("match.min_confidence")
	}
	if viper.IsSet("match.similarity_floor") {
		config.SimilarityFloor = viper.GetFloat64("match.similarity_floor")
	}
	return config
}
