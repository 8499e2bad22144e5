// Package config 是服务的类型化配置：YAML 加载，缺省值兜底。
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/stayrec/rank"
)

// Duration 是支持 "2s" / "1h" 字符串写法的 YAML 时长。
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std 转回标准库时长。
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config 是 stayrecd 的顶层配置。
type Config struct {
	HTTP   HTTPConfig   `yaml:"http"`
	Mongo  MongoConfig  `yaml:"mongo"`
	Redis  RedisConfig  `yaml:"redis"`
	Engine EngineConfig `yaml:"engine"`
	Log    LogConfig    `yaml:"log"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// RedisConfig 是模型工件存储配置。Addr 为空时退回内存存储（工件不落盘）。
type RedisConfig struct {
	Addr        string        `yaml:"addr"`
	DB          int           `yaml:"db"`
	ArtifactTTL Duration      `yaml:"artifact_ttl"`
}

type EngineConfig struct {
	// Weights 融合权重，缺省 content=0.6 / collab=0.4 / popularity=0.1
	Weights rank.Weights `yaml:"weights"`

	// MaxFeatures TF-IDF 词表上限
	MaxFeatures int `yaml:"max_features"`

	// RecallTimeout 单个召回源的超时
	RecallTimeout Duration `yaml:"recall_timeout"`

	// RetrainInterval 周期性重训间隔，0 表示不自动重训
	RetrainInterval Duration `yaml:"retrain_interval"`

	// DiversityMaxPerType 同类型酒店上限，0 表示不启用多样性重排
	DiversityMaxPerType int `yaml:"diversity_max_per_type"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default 返回可直接运行的缺省配置。
func Default() *Config {
	return &Config{
		HTTP:  HTTPConfig{Addr: ":8080"},
		Mongo: MongoConfig{URI: "mongodb://localhost:27017", Database: "stayrec"},
		Engine: EngineConfig{
			Weights:       rank.DefaultWeights(),
			MaxFeatures:   1000,
			RecallTimeout: Duration(2 * time.Second),
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load 从 YAML 文件加载配置，未设置的字段保持缺省值。
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv 用环境变量覆盖各外部地址，优先级高于 YAML。
func (c *Config) ApplyEnv() {
	if v := os.Getenv("STAYREC_HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv("STAYREC_MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("STAYREC_MONGO_DATABASE"); v != "" {
		c.Mongo.Database = v
	}
	if v := os.Getenv("STAYREC_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
}

// Validate 做基本的合法性检查。
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	if c.Mongo.URI == "" || c.Mongo.Database == "" {
		return fmt.Errorf("mongo.uri and mongo.database are required")
	}
	w := c.Engine.Weights
	if w.Content < 0 || w.Collab < 0 || w.Popularity < 0 {
		return fmt.Errorf("engine.weights must be non-negative")
	}
	if c.Engine.MaxFeatures < 0 {
		return fmt.Errorf("engine.max_features must be non-negative")
	}
	return nil
}
