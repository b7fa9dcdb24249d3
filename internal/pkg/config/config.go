package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ougirez/camtrap/internal/domain"
	"github.com/ougirez/camtrap/internal/pkg/constants"
	"github.com/spf13/viper"
)

// Load читает .env, файл конфигурации (если задан) и переменные окружения CAMTRAP_*.
func Load(path string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("godotenv.Load: %w", err)
	}

	viper.SetDefault(constants.ViperHTTPAddr, ":8080")
	viper.SetDefault(constants.ViperCORSOrigins, []string{"http://localhost:3000"})
	viper.SetDefault(constants.ViperLogLevel, "info")
	viper.SetDefault(constants.ViperLogMode, "dev")
	viper.SetDefault(constants.ViperDefaultTimezone, constants.DefaultTimezone)
	viper.SetDefault(constants.ViperLocale, constants.DefaultLocale)
	viper.SetDefault(constants.ViperOrganismFieldTitle, constants.OrganismFieldTitle)

	viper.SetEnvPrefix("camtrap")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path == "" {
		return nil
	}

	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("viper.ReadInConfig: %w", err)
	}

	return nil
}

// SynonymTable декодирует упорядоченный список species_synonyms.
func SynonymTable() (domain.SynonymTable, error) {
	var table domain.SynonymTable
	if err := viper.UnmarshalKey(constants.ViperSpeciesSynonyms, &table); err != nil {
		return nil, fmt.Errorf("viper.UnmarshalKey: %w", err)
	}

	return table, nil
}
