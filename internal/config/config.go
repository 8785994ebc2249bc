package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		Pandoc
		Tumblr
	}

	Pandoc struct {
		Binary string // Name or path of the pandoc executable
	}
	Tumblr struct {
		APIBase string // Tumblr API root, overridable for testing
		APIKey  string // Default API key when the flag is not given
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix("BLOG2PELICAN")
	v.AutomaticEnv()
	v.SetDefault("pandoc", DefaultPandocBinary)
	v.SetDefault("tumblr_api_base", DefaultTumblrAPIBase)
	v.SetDefault("tumblr_api_key", "")

	return &Config{
		Pandoc: Pandoc{
			Binary: v.GetString("PANDOC"),
		},
		Tumblr: Tumblr{
			APIBase: v.GetString("TUMBLR_API_BASE"),
			APIKey:  v.GetString("TUMBLR_API_KEY"),
		},
	}
}
