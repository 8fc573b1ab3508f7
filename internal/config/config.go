// Package config holds the CLI configuration: per-kind generator settings
// loaded from an optional YAML file with environment overrides.
package config

import (
	"github.com/idforge/idforge"
	pkgconfig "github.com/idforge/idforge/pkg/config"
)

type Config struct {
	UUID      UUIDConfig      `mapstructure:"uuid"`
	ULID      ULIDConfig      `mapstructure:"ulid"`
	Snowflake SnowflakeConfig `mapstructure:"snowflake"`
	NanoID    NanoIDConfig    `mapstructure:"nanoid"`
	CUID2     CUID2Config     `mapstructure:"cuid2"`
	TypeID    TypeIDConfig    `mapstructure:"typeid"`
	Sqid      SqidConfig      `mapstructure:"sqid"`
	Hashid    HashidConfig    `mapstructure:"hashid"`
	Log       LogConfig       `mapstructure:"log"`
}

type UUIDConfig struct {
	Version   int    `mapstructure:"version"`
	Namespace string `mapstructure:"namespace"`
	Name      string `mapstructure:"name"`
}

type ULIDConfig struct {
	Monotonic bool `mapstructure:"monotonic"`
}

type SnowflakeConfig struct {
	NodeID int64 `mapstructure:"node_id"`
	Epoch  int64 `mapstructure:"epoch"`
}

type NanoIDConfig struct {
	Size     int    `mapstructure:"size"`
	Alphabet string `mapstructure:"alphabet"`
}

type CUID2Config struct {
	Length int `mapstructure:"length"`
}

type TypeIDConfig struct {
	Prefix string `mapstructure:"prefix"`
}

type SqidConfig struct {
	Alphabet  string   `mapstructure:"alphabet"`
	MinLength int      `mapstructure:"min_length"`
	Blocklist []string `mapstructure:"blocklist"`
}

type HashidConfig struct {
	Salt      string `mapstructure:"salt"`
	MinLength int    `mapstructure:"min_length"`
	Alphabet  string `mapstructure:"alphabet"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config")
	if err != nil {
		return nil, err
	}

	// Defaults
	v.SetDefault("uuid.version", 7)
	v.SetDefault("ulid.monotonic", true)
	v.SetDefault("snowflake.node_id", 1)
	v.SetDefault("snowflake.epoch", idforge.DefaultSnowflakeEpoch)
	v.SetDefault("nanoid.size", idforge.DefaultNanoIDSize)
	v.SetDefault("nanoid.alphabet", idforge.DefaultNanoIDAlphabet)
	v.SetDefault("cuid2.length", idforge.DefaultCUID2Length)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// Environment overrides
	v.BindEnv("uuid.version", "UUID_VERSION")
	v.BindEnv("snowflake.node_id", "SNOWFLAKE_NODE_ID")
	v.BindEnv("snowflake.epoch", "SNOWFLAKE_EPOCH")
	v.BindEnv("nanoid.size", "NANOID_SIZE")
	v.BindEnv("nanoid.alphabet", "NANOID_ALPHABET")
	v.BindEnv("cuid2.length", "CUID2_LENGTH")
	v.BindEnv("typeid.prefix", "TYPEID_PREFIX")
	v.BindEnv("sqid.min_length", "SQID_MIN_LENGTH")
	v.BindEnv("hashid.salt", "HASHID_SALT")
	v.BindEnv("hashid.min_length", "HASHID_MIN_LENGTH")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Generators converts the file/env view into the library's Config.
func (c *Config) Generators() idforge.Config {
	return idforge.Config{
		UUID: idforge.UUIDConfig{
			Version:   c.UUID.Version,
			Namespace: c.UUID.Namespace,
			Name:      c.UUID.Name,
		},
		ULID:      idforge.ULIDConfig{Monotonic: c.ULID.Monotonic},
		Snowflake: idforge.SnowflakeConfig{NodeID: c.Snowflake.NodeID, Epoch: c.Snowflake.Epoch},
		NanoID:    idforge.NanoIDConfig{Size: c.NanoID.Size, Alphabet: c.NanoID.Alphabet},
		CUID2:     idforge.CUID2Config{Length: c.CUID2.Length},
		TypeID:    idforge.TypeIDConfig{Prefix: c.TypeID.Prefix},
		Sqid: idforge.SqidConfig{
			Alphabet:  c.Sqid.Alphabet,
			MinLength: c.Sqid.MinLength,
			Blocklist: c.Sqid.Blocklist,
		},
		Hashid: idforge.HashidConfig{
			Salt:      c.Hashid.Salt,
			MinLength: c.Hashid.MinLength,
			Alphabet:  c.Hashid.Alphabet,
		},
	}
}
