// Package config loads the idforge YAML configuration with environment
// overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Name is the configuration file base name: idforge.yaml.
const Name = "idforge"

// Load reads idforge.yaml from dir (plus the conventional fallback
// locations), layering environment variables on top. A missing file is not
// an error: defaults and environment variables still apply.
func Load(dir string) (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigName(Name)
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return v, nil
}
