package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Default anvil accounts, unlocked on every fresh node.
const (
	DefaultAccountA = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	DefaultAccountB = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	RPCURL       string
	WorkerID     int
	SpawnNode    bool
	AnvilBinary  string
	AnvilArgs    []string
	NodeHost     string
	NodePort     int
	ChainID      uint64
	StartRetries int
	StartBackoff time.Duration
	Artifacts    string
	Accounts     []string
	Out          string
	PGDSN        string
	Detail       bool
	LogLevel     string
}

// Load merges .env, config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("STRIKEBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("rpc", "http://127.0.0.1:8545")
	v.SetDefault("worker-id", 1)
	v.SetDefault("spawn-node", false)
	v.SetDefault("anvil-binary", "anvil")
	v.SetDefault("node-host", "127.0.0.1")
	v.SetDefault("node-port", 8545)
	v.SetDefault("chain-id", uint64(31337))
	v.SetDefault("start-retries", 20)
	v.SetDefault("start-backoff", 100*time.Millisecond)
	v.SetDefault("artifacts", "./out")
	v.SetDefault("accounts", []string{DefaultAccountA, DefaultAccountB})
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		RPCURL:       v.GetString("rpc"),
		WorkerID:     v.GetInt("worker-id"),
		SpawnNode:    v.GetBool("spawn-node"),
		AnvilBinary:  v.GetString("anvil-binary"),
		AnvilArgs:    getStringSlice(v, "anvil-args"),
		NodeHost:     v.GetString("node-host"),
		NodePort:     v.GetInt("node-port"),
		ChainID:      v.GetUint64("chain-id"),
		StartRetries: v.GetInt("start-retries"),
		StartBackoff: v.GetDuration("start-backoff"),
		Artifacts:    v.GetString("artifacts"),
		Accounts:     getStringSlice(v, "accounts"),
		Out:          v.GetString("out"),
		PGDSN:        v.GetString("pg-dsn"),
		Detail:       v.GetBool("detail"),
		LogLevel:     v.GetString("log-level"),
	}

	return cfg, nil
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
