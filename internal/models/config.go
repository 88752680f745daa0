package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

type GeocoderConfig struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type VoiceConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type ExportConfig struct {
	OutputPath   string             `mapstructure:"output_path"`
	OutputFolder string             `mapstructure:"output_folder"`
	Destination  string             `mapstructure:"destination"` // "local" or "cloud"
	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`
}

type SeedConfig struct {
	Seed                  int     `mapstructure:"seed"`
	Restaurants           int     `mapstructure:"restaurants"`
	ProductsPerRestaurant int     `mapstructure:"products_per_restaurant"`
	ZonesPerRestaurant    int     `mapstructure:"zones_per_restaurant"`
	Discounts             int     `mapstructure:"discounts"`
	Surcharges            int     `mapstructure:"surcharges"`
	CityLat               float64 `mapstructure:"city_latitude"`
	CityLon               float64 `mapstructure:"city_longitude"`
	UrbanRadius           float64 `mapstructure:"urban_radius"`
}

type Config struct {
	HTTPAddr        string         `mapstructure:"http_addr"`
	Database        DatabaseConfig `mapstructure:"database"`
	KafkaEnabled    bool           `mapstructure:"kafka_enabled"`
	KafkaBrokerList string         `mapstructure:"kafka_broker_list"`
	EventOutputPath string         `mapstructure:"event_output_path"`
	Geocoder        GeocoderConfig `mapstructure:"geocoder"`
	Voice           VoiceConfig    `mapstructure:"voice"`
	Export          ExportConfig   `mapstructure:"export"`
	Seed            SeedConfig     `mapstructure:"seed"`
	DefaultNetwork  string         `mapstructure:"default_network"`
	DefaultRestaurant string       `mapstructure:"default_restaurant"`
}

// LoadConfig initializes and reads the configuration using Viper.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv()

	viper.SetDefault("http_addr", ":8080")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("kafka_broker_list", "localhost:9092")
	viper.SetDefault("geocoder.timeout", "5s")
	viper.SetDefault("voice.timeout", "10s")
	viper.SetDefault("export.destination", "local")
	viper.SetDefault("export.output_folder", "sales_reports")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}
