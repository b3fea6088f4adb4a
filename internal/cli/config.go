package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"finapp/internal/config"
)

// setting is one configuration key that can come from a flag, the
// environment or a config file.
type setting struct {
	key   string
	env   string
	apply func(c *config.Config, v *viper.Viper, key string)
}

var settings = []setting{
	{"port", "PORT", func(c *config.Config, v *viper.Viper, k string) { c.Port = v.GetString(k) }},
	{"api-base", "FINAPP_API_BASE", func(c *config.Config, v *viper.Viper, k string) {
		c.APIBase = strings.TrimRight(v.GetString(k), "/")
	}},
	{"session-ttl", "SESSION_TTL", func(c *config.Config, v *viper.Viper, k string) { c.SessionTTL = v.GetDuration(k) }},
	{"session-max", "SESSION_MAX", func(c *config.Config, v *viper.Viper, k string) { c.SessionMax = v.GetInt(k) }},
	{"secure-cookie", "SESSION_SECURE_COOKIE", func(c *config.Config, v *viper.Viper, k string) { c.SecureCookie = v.GetBool(k) }},
	{"rate-limit-per-minute", "RATE_LIMIT_PER_MINUTE", func(c *config.Config, v *viper.Viper, k string) {
		c.RateLimitPerMinute = v.GetInt(k)
	}},
	{"amqp-url", "AMQP_URL", func(c *config.Config, v *viper.Viper, k string) { c.AMQPURL = v.GetString(k) }},
	{"amqp-exchange", "AMQP_EXCHANGE", func(c *config.Config, v *viper.Viper, k string) { c.AMQPExchange = v.GetString(k) }},
	{"amqp-routing-key", "AMQP_ROUTING_KEY", func(c *config.Config, v *viper.Viper, k string) { c.AMQPRoutingKey = v.GetString(k) }},
	{"event-queue-size", "EVENT_QUEUE_SIZE", func(c *config.Config, v *viper.Viper, k string) { c.EventQueueSize = v.GetInt(k) }},
	{"log-level", "LOG_LEVEL", func(c *config.Config, v *viper.Viper, k string) { c.LogLevel = strings.ToLower(v.GetString(k)) }},
	{"log-format", "LOG_FORMAT", func(c *config.Config, v *viper.Viper, k string) { c.LogFormat = strings.ToLower(v.GetString(k)) }},
}

// LoadAndValidateConfig builds the configuration and validates it.
//
// Precedence is flag, then environment, then config file, then default.
// Flags are matched by name against the setting keys ("port", "api-base");
// config files use the same keys.
func LoadAndValidateConfig(configFile string, flags *pflag.FlagSet) (*config.Config, error) {
	cfg := config.Load()

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	for _, s := range settings {
		var changed bool
		if flags != nil {
			if f := flags.Lookup(s.key); f != nil {
				if err := v.BindPFlag(s.key, f); err != nil {
					return nil, err
				}
				changed = f.Changed
			}
		}
		fromFile := v.InConfig(s.key) && os.Getenv(s.env) == ""
		if changed || fromFile {
			s.apply(cfg, v, s.key)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
