// Package config loads bugtrack settings from bugtrack.yaml and the
// environment.
//
// Settings are resolved in priority order: command-line flags (applied by
// the cmd layer) > BUGTRACK_* environment variables > config file > built-in
// defaults. The config file is searched for in the current directory first,
// then in $HOME/.config/bugtrack/.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/webqa-tools/bugtrack/internal/storage/mongo"
)

// Environment variables map onto keys with BUGTRACK_ prefix, dots and
// hyphens replaced by underscores: mongo.bugs-collection becomes
// BUGTRACK_MONGO_BUGS_COLLECTION.
const envPrefix = "BUGTRACK"

var defaults = map[string]any{
	"mongo.uri":              mongo.DefaultURI,
	"mongo.database":         mongo.DefaultDatabase,
	"mongo.bugs-collection":  mongo.DefaultBugsCollection,
	"mongo.audit-collection": mongo.DefaultAuditCollection,
	"connect-timeout":        mongo.DefaultConnectTimeout,
	"actor":                  "",
	"json":                   false,
}

// v is the package-level viper instance, nil until Init runs.
var v *viper.Viper

// Init reads the config file and environment. A missing config file is not
// an error; a malformed one is.
func Init() error {
	nv := viper.New()
	nv.SetConfigName("bugtrack")
	nv.SetConfigType("yaml")
	nv.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		nv.AddConfigPath(filepath.Join(home, ".config", "bugtrack"))
	}

	nv.SetEnvPrefix(envPrefix)
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	nv.AutomaticEnv()

	for key, value := range defaults {
		nv.SetDefault(key, value)
	}

	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	v = nv
	return nil
}

// GetString returns the string value for key, or "" before Init.
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool returns the boolean value for key, or false before Init.
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetDuration returns the duration value for key, or 0 before Init.
func GetDuration(key string) time.Duration {
	if v == nil {
		return 0
	}
	return v.GetDuration(key)
}

// FileUsed returns the path of the loaded config file, or "" when
// running on defaults.
func FileUsed() string {
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// MongoConfig assembles the storage driver settings from the resolved
// configuration.
func MongoConfig() mongo.Config {
	return mongo.Config{
		URI:             GetString("mongo.uri"),
		Database:        GetString("mongo.database"),
		BugsCollection:  GetString("mongo.bugs-collection"),
		AuditCollection: GetString("mongo.audit-collection"),
		ConnectTimeout:  GetDuration("connect-timeout"),
	}
}
