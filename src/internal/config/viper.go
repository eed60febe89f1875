package config

import "github.com/spf13/viper"

// NewViper reads the optional config.yaml and binds the environment.
// DATA_DIR overrides the storage root so test suites and tooling can
// sandbox the entire tree without touching production data.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	_ = v.BindEnv("storage.data_dir", "DATA_DIR")

	v.SetDefault("storage.data_dir", "data")
	v.SetDefault("storage.index_ttl", "60s")
	v.SetDefault("storage.scan_concurrency", 8)
	return v
}
