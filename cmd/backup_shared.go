package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/atlaslingo/darlingo/internal/infrastructure/config"
	"github.com/atlaslingo/darlingo/internal/infrastructure/database"
	"github.com/atlaslingo/darlingo/internal/usecase/backup"
)

func tablesFromConfig(key string) []string {
	return normalizeTables(viper.GetStringSlice(key))
}

func normalizeTables(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	result := make([]string, 0, len(values))
	for _, value := range values {
		name := strings.TrimSpace(value)
		if name == "" {
			continue
		}
		result = append(result, strings.ToLower(name))
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// newBackupService opens the configured database and wraps it in a backup
// service. The returned cleanup closes the connection.
func newBackupService(batchSize int) (*backup.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, cleanup, err := database.NewConnection(cfg)
	if err != nil {
		return nil, nil, err
	}
	var opts []backup.Option
	if batchSize > 0 {
		opts = append(opts, backup.WithBatchSize(batchSize))
	}
	service, err := backup.NewService(db, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return service, cleanup, nil
}
