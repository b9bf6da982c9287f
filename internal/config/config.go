package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/verimedia/media-platform/internal/log"
)

// Cache providers
const (
	CacheProviderRedis  = "redis"
	CacheProviderMemory = "memory"
)

// Pinning providers
const (
	PinningProviderPinata = "pinata"
	PinningProviderNode   = "node"
)

// Configuration holds the project configuration
type Configuration struct {
	ServerUrl     string
	ServerPort    int
	Ledger        Ledger        `mapstructure:"Ledger"`
	Pinning       Pinning       `mapstructure:"Pinning"`
	MediaAnalyzer MediaAnalyzer `mapstructure:"MediaAnalyzer"`
	Thumbnailer   Thumbnailer   `mapstructure:"Thumbnailer"`
	Cache         Cache         `mapstructure:"Cache"`
	Log           Log           `mapstructure:"Log"`
}

// Ledger holds the DID registry and resolver service configuration.
// RegistryUrl is the base url of the hosted registry (key, DID and resource
// endpoints). ResolverUrl is the public resolver used to dereference
// resources. TemplateUrl, when set, points to the DID-document template
// service merged into DID creation requests.
type Ledger struct {
	RegistryUrl string        `mapstructure:"RegistryUrl" tip:"DID registry service base url"`
	ResolverUrl string        `mapstructure:"ResolverUrl" tip:"Public resolver service base url"`
	TemplateUrl string        `mapstructure:"TemplateUrl" tip:"DID document template service url (optional)"`
	APIKey      string        `mapstructure:"APIKey" tip:"DID registry API key"`
	Network     string        `mapstructure:"Network" tip:"Target ledger network (testnet/mainnet)"`
	Timeout     time.Duration `mapstructure:"Timeout" tip:"Registry request timeout"`
}

// Pinning holds the content pinning configuration. Provider selects between
// the hosted pinning service and a self hosted IPFS node.
type Pinning struct {
	Provider     string `mapstructure:"Provider" tip:"Pinning provider (pinata | node)"`
	PinataApiKey string `mapstructure:"PinataApiKey" tip:"Pinata API key"`
	PinataSecret string `mapstructure:"PinataSecret" tip:"Pinata API secret"`
	PinataUrl    string `mapstructure:"PinataUrl" tip:"Pinata pinning endpoint"`
	GatewayUrl   string `mapstructure:"GatewayUrl" tip:"IPFS gateway base url used to build retrieval urls"`
	NodeAddr     string `mapstructure:"NodeAddr" tip:"IPFS node API multiaddr (node provider)"`
}

// MediaAnalyzer holds the external media analysis service configuration
type MediaAnalyzer struct {
	Url     string        `mapstructure:"Url" tip:"Media analyzer service base url"`
	Timeout time.Duration `mapstructure:"Timeout" tip:"Media analyzer request timeout"`
}

// Thumbnailer holds the video thumbnail extraction configuration
type Thumbnailer struct {
	FFmpegPath string        `mapstructure:"FFmpegPath" tip:"Path to the ffmpeg binary"`
	Offset     time.Duration `mapstructure:"Offset" tip:"Frame capture offset from the start of the video"`
	Size       string        `mapstructure:"Size" tip:"Thumbnail size, WxH"`
}

// Cache configuration. CertificateTTL is how long shareable certificates stay
// resolvable.
type Cache struct {
	Provider       string        `mapstructure:"Provider" tip:"Cache provider (redis | memory)"`
	Url            string        `mapstructure:"Url" tip:"The redis url to use as a cache"`
	CertificateTTL time.Duration `mapstructure:"CertificateTTL" tip:"Shareable certificate time to live"`
}

// Log holds runtime configurations
//
// Level: The minimum log level to show on logs. Values can be
//
//	 -4: Debug
//		0: Info
//		4: Warning
//		8: Error
//
// Mode: Log mode is the format of the log. It can be text or json
// 1: JSON
// 2: Text
type Log struct {
	Level int `mapstructure:"Level" tip:"Minimum level to log: (-4:Debug, 0:Info, 4:Warning, 8:Error)"`
	Mode  int `mapstructure:"Mode" tip:"Log format (1: JSON, 2:Structured text)"`
}

// Sanitize performs some basic checks and sanitizations in the configuration.
// Returns nil if config is acceptable, error otherwise.
func (c *Configuration) Sanitize() error {
	sUrl, err := c.validateServerUrl()
	if err != nil {
		return fmt.Errorf("serverUrl is not a valid URL <%s>: %w", c.ServerUrl, err)
	}
	c.ServerUrl = sUrl

	if c.Cache.Provider != CacheProviderRedis && c.Cache.Provider != CacheProviderMemory {
		return fmt.Errorf("unknown cache provider <%s>", c.Cache.Provider)
	}

	if c.Pinning.Provider != PinningProviderPinata && c.Pinning.Provider != PinningProviderNode {
		return fmt.Errorf("unknown pinning provider <%s>", c.Pinning.Provider)
	}

	return nil
}

func (c *Configuration) validateServerUrl() (string, error) {
	sUrl, err := url.ParseRequestURI(c.ServerUrl)
	if err != nil {
		return c.ServerUrl, err
	}
	if sUrl.Scheme == "" {
		return c.ServerUrl, fmt.Errorf("server URL must be an absolute URL")
	}
	sUrl.RawQuery = ""
	return strings.Trim(strings.Trim(sUrl.String(), "/"), "?"), nil
}

// Load loads the configuration from a file plus the process environment
func Load(fileName string) (*Configuration, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug(context.Background(), ".env file loaded")
	}
	bindEnv()
	pathFlag := viper.GetString("config")
	if _, err := os.Stat(pathFlag); err == nil {
		ext := filepath.Ext(pathFlag)
		if len(ext) > 1 {
			ext = ext[1:]
		}
		name := strings.Split(filepath.Base(pathFlag), ".")[0]
		viper.AddConfigPath(".")
		viper.SetConfigName(name)
		viper.SetConfigType(ext)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("toml")
		if fileName == "" {
			viper.SetConfigName("config")
		} else {
			viper.SetConfigName(fileName)
		}
	}
	config := &Configuration{
		Log: Log{
			Level: log.LevelDebug,
			Mode:  log.OutputText,
		},
	}
	ctx := context.Background()
	if err := viper.ReadInConfig(); err != nil {
		log.Info(ctx, "config file not loaded, relying on environment", "err", err)
	}

	if err := viper.Unmarshal(config); err != nil {
		log.Error(ctx, "error unmarshalling config file", err)
	}
	setDefaults(config)
	checkEnvVars(ctx, config)
	return config, nil
}

func setDefaults(cfg *Configuration) {
	if cfg.Ledger.Network == "" {
		cfg.Ledger.Network = "testnet"
	}
	if cfg.Ledger.Timeout == 0 {
		cfg.Ledger.Timeout = 30 * time.Second
	}
	if cfg.Pinning.Provider == "" {
		cfg.Pinning.Provider = PinningProviderPinata
	}
	if cfg.Pinning.PinataUrl == "" {
		cfg.Pinning.PinataUrl = "https://api.pinata.cloud/pinning/pinFileToIPFS"
	}
	if cfg.Pinning.GatewayUrl == "" {
		cfg.Pinning.GatewayUrl = "https://gateway.pinata.cloud"
	}
	if cfg.MediaAnalyzer.Timeout == 0 {
		cfg.MediaAnalyzer.Timeout = 60 * time.Second
	}
	if cfg.Thumbnailer.FFmpegPath == "" {
		cfg.Thumbnailer.FFmpegPath = "ffmpeg"
	}
	if cfg.Thumbnailer.Offset == 0 {
		cfg.Thumbnailer.Offset = time.Second
	}
	if cfg.Thumbnailer.Size == "" {
		cfg.Thumbnailer.Size = "320x240"
	}
	if cfg.Cache.Provider == "" {
		cfg.Cache.Provider = CacheProviderMemory
	}
	if cfg.Cache.CertificateTTL == 0 {
		cfg.Cache.CertificateTTL = 24 * time.Hour
	}
}

func bindEnv() {
	viper.SetEnvPrefix("MEDIA")
	_ = viper.BindEnv("ServerUrl", "MEDIA_SERVER_URL")
	_ = viper.BindEnv("ServerPort", "MEDIA_SERVER_PORT")

	_ = viper.BindEnv("Ledger.RegistryUrl", "MEDIA_LEDGER_REGISTRY_URL")
	_ = viper.BindEnv("Ledger.ResolverUrl", "MEDIA_LEDGER_RESOLVER_URL")
	_ = viper.BindEnv("Ledger.TemplateUrl", "MEDIA_LEDGER_TEMPLATE_URL")
	_ = viper.BindEnv("Ledger.APIKey", "MEDIA_LEDGER_API_KEY")
	_ = viper.BindEnv("Ledger.Network", "MEDIA_LEDGER_NETWORK")
	_ = viper.BindEnv("Ledger.Timeout", "MEDIA_LEDGER_TIMEOUT")

	_ = viper.BindEnv("Pinning.Provider", "MEDIA_PINNING_PROVIDER")
	_ = viper.BindEnv("Pinning.PinataApiKey", "MEDIA_PINNING_PINATA_API_KEY")
	_ = viper.BindEnv("Pinning.PinataSecret", "MEDIA_PINNING_PINATA_SECRET")
	_ = viper.BindEnv("Pinning.PinataUrl", "MEDIA_PINNING_PINATA_URL")
	_ = viper.BindEnv("Pinning.GatewayUrl", "MEDIA_PINNING_GATEWAY_URL")
	_ = viper.BindEnv("Pinning.NodeAddr", "MEDIA_PINNING_NODE_ADDR")

	_ = viper.BindEnv("MediaAnalyzer.Url", "MEDIA_ANALYZER_URL")
	_ = viper.BindEnv("MediaAnalyzer.Timeout", "MEDIA_ANALYZER_TIMEOUT")

	_ = viper.BindEnv("Thumbnailer.FFmpegPath", "MEDIA_THUMBNAILER_FFMPEG_PATH")
	_ = viper.BindEnv("Thumbnailer.Offset", "MEDIA_THUMBNAILER_OFFSET")
	_ = viper.BindEnv("Thumbnailer.Size", "MEDIA_THUMBNAILER_SIZE")

	_ = viper.BindEnv("Cache.Provider", "MEDIA_CACHE_PROVIDER")
	_ = viper.BindEnv("Cache.Url", "MEDIA_CACHE_URL")
	_ = viper.BindEnv("Cache.CertificateTTL", "MEDIA_CACHE_CERTIFICATE_TTL")

	_ = viper.BindEnv("Log.Level", "MEDIA_LOG_LEVEL")
	_ = viper.BindEnv("Log.Mode", "MEDIA_LOG_MODE")

	viper.AutomaticEnv()
}

func checkEnvVars(ctx context.Context, cfg *Configuration) {
	if cfg.ServerUrl == "" {
		log.Info(ctx, "MEDIA_SERVER_URL value is missing")
	}

	if cfg.ServerPort == 0 {
		log.Info(ctx, "MEDIA_SERVER_PORT value is missing")
	}

	if cfg.Ledger.RegistryUrl == "" {
		log.Info(ctx, "MEDIA_LEDGER_REGISTRY_URL value is missing")
	}

	if cfg.Ledger.ResolverUrl == "" {
		log.Info(ctx, "MEDIA_LEDGER_RESOLVER_URL value is missing")
	}

	if cfg.Ledger.APIKey == "" {
		log.Info(ctx, "MEDIA_LEDGER_API_KEY value is missing")
	}

	if cfg.Pinning.Provider == PinningProviderPinata && cfg.Pinning.PinataApiKey == "" {
		log.Info(ctx, "MEDIA_PINNING_PINATA_API_KEY value is missing")
	}

	if cfg.Pinning.Provider == PinningProviderNode && cfg.Pinning.NodeAddr == "" {
		log.Info(ctx, "MEDIA_PINNING_NODE_ADDR value is missing")
	}

	if cfg.MediaAnalyzer.Url == "" {
		log.Info(ctx, "MEDIA_ANALYZER_URL value is missing")
	}

	if cfg.Cache.Provider == CacheProviderRedis && cfg.Cache.Url == "" {
		log.Info(ctx, "MEDIA_CACHE_URL value is missing")
	}
}
