package config

const (
	// DefaultPandocBinary is looked up on PATH when no override is set
	DefaultPandocBinary = "pandoc"

	// DefaultTumblrAPIBase is the public Tumblr v2 API root
	DefaultTumblrAPIBase = "https://api.tumblr.com/v2"
)
