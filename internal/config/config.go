package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string            `yaml:"env" env-default:"local"`
	HTTP        HTTPConfig        `yaml:"http"`
	BlobStorage BlobStorageConfig `yaml:"blob_storage"`
	Cache       CacheConfig       `yaml:"cache"`
	Upload      UploadConfig      `yaml:"upload"`
}

type HTTPConfig struct {
	Host      string `yaml:"host"`
	Port      string `yaml:"port" env:"PORT" env-default:"8080"`
	StaticDir string `yaml:"static_dir" env-default:"web"`
}

type BlobStorageConfig struct {
	// "local" keeps objects on disk under LocalDir, "b2" talks to Backblaze.
	Provider       string `yaml:"provider" env-default:"local"`
	AccountID      string `yaml:"account_id" env:"BLOB_ACCOUNT_ID"`
	AccountKey     string `yaml:"account_key" env:"BLOB_ACCOUNT_KEY"`
	ImageBucket    string `yaml:"image_bucket" env-default:"photoboard-images"`
	MetadataBucket string `yaml:"metadata_bucket" env-default:"photoboard-metadata"`
	PublicBaseURL  string `yaml:"public_base_url"`
	DownloadToken  string `yaml:"download_token" env:"BLOB_DOWNLOAD_TOKEN"`
	LocalDir       string `yaml:"local_dir" env-default:"./data"`
}

type CacheConfig struct {
	ListingTTL time.Duration `yaml:"listing_ttl" env-default:"30s"`
}

type UploadConfig struct {
	MaxBodySize string `yaml:"max_body_size" env-default:"15M"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
