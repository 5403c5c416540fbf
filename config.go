package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	ConfigFile      = "./config.yml"
	ConfigEnvFile   = "./config.env"
	ConfigEnvPrefix = "BSA"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit          string           `yaml:"git_commit" envconfig:"GIT_COMMIT" json:"git_commit"`
	GitTag             string           `yaml:"git_tag" envconfig:"GIT_TAG" json:"git_tag"`
	BuildTime          string           `yaml:"build_time" envconfig:"BUILD_TIME" json:"build_time"`
	IsProduction       bool             `yaml:"is_production" envconfig:"IS_PRODUCTION" json:"is_production"`
	LogLevel           zapcore.Level    `yaml:"log_level" envconfig:"LOG_LEVEL" json:"log_level"`
	LogFolder          string           `yaml:"log_folder" envconfig:"LOG_FOLDER" json:"log_folder"`
	LogMaxSize         int              `yaml:"log_max_size" envconfig:"LOG_MAX_SIZE" json:"log_max_size"`
	OpsEndpointsEnable bool             `yaml:"ops_endpoints_enable" envconfig:"OPS_ENDPOINTS_ENABLE" json:"ops_endpoints_enable"`
	ProfilerEnable     bool             `yaml:"profiler_enable" envconfig:"PROFILER_ENABLE" json:"profiler_enable"`
	Server             ServerConfig     `yaml:"server" json:"server"`
	ChangeFeed         ChangeFeedConfig `yaml:"changefeed" json:"changefeed"`
	Redis              RedisConfig      `yaml:"redis" json:"redis"`
	BoltDB             BoltDBConfig     `yaml:"boltdb" json:"boltdb"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"HOST" json:"host"`
	Port            string        `yaml:"port" envconfig:"PORT" json:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" json:"write_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" json:"request_timeout"` // Time to wait for a request to finish
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" json:"shutdown_timeout"`
}

// ChangeFeedConfig turns on the redis change feed and its bolt archive.
type ChangeFeedConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"ENABLED" json:"enabled"`
}

type RedisConfig struct {
	Host          string        `yaml:"host" envconfig:"HOST" json:"host"`
	Port          string        `yaml:"port" envconfig:"PORT" json:"port"`
	DialTimeout   time.Duration `yaml:"dial_timeout" envconfig:"DIAL_TIMEOUT" json:"dial_timeout"`
	ReadTimeout   time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" json:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" json:"write_timeout"`
	PoolSize      int           `yaml:"pool_size" envconfig:"POOL_SIZE" json:"pool_size"`
	PoolTimeout   time.Duration `yaml:"pool_timeout" envconfig:"POOL_TIMEOUT" json:"pool_timeout"`
	Username      string        `yaml:"username" envconfig:"USERNAME" json:"username"`
	Password      string        `yaml:"password" envconfig:"PASSWORD" json:"-"`
	DatabaseIndex int           `yaml:"db_index" envconfig:"DATABASE_INDEX" json:"db_index"`
}

type BoltDBConfig struct {
	FilePath   string        `yaml:"filepath" envconfig:"FILE_PATH" json:"filepath"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"TIMEOUT" json:"timeout"`
	BucketName string        `yaml:"bucket_name" envconfig:"BUCKET_NAME" json:"bucket_name"`
}

// LoadConfigFile provides an instance of config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environments variables and overrides the provided config.
// The variables are named after the prefix and the field path, ie BSA_SERVER_PORT.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig setup defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if len(config.Server.Host) == 0 || len(config.Server.Port) == 0 {
		return errors.New("make sure to set valid server address and port in configuration file")
	}

	if config.LogFolder == "" {
		config.LogFolder = "./logs"
	}

	if config.LogMaxSize <= 0 {
		config.LogMaxSize = 100
	}

	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 10 * time.Second
	}

	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = 15 * time.Second
	}

	if config.Server.RequestTimeout == 0 {
		config.Server.RequestTimeout = 10 * time.Second
	}

	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = 30 * time.Second
	}

	if !config.ChangeFeed.Enabled {
		return nil
	}

	if len(config.Redis.Host) == 0 || len(config.Redis.Port) == 0 {
		return errors.New("make sure to set valid redis address and port in configuration file")
	}

	if len(config.BoltDB.FilePath) == 0 {
		return errors.New("make sure to set the boltdb file path in configuration file")
	}

	if len(config.BoltDB.BucketName) == 0 {
		config.BoltDB.BucketName = "books"
	}

	if config.BoltDB.Timeout == 0 {
		config.BoltDB.Timeout = 5 * time.Second
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data. The env file is optional.
func LoadAndInitConfigs(gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile(ConfigFile)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Set the environment configuration.
	err = godotenv.Load(ConfigEnvFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return config, fmt.Errorf("failed to set environment configurations: %s", err)
	}

	// Use environment variables with prefix `BSA`.
	err = LoadConfigEnvs(ConfigEnvPrefix, config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
