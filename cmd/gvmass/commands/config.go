package commands

import (
	"time"

	"gvmass/internal/components/telemetry"
	"gvmass/internal/outreach"
	"gvmass/internal/scrapers/voice"
)

const configName = "gvmass.json5"

type Config struct {
	Email    string `json:"email" env:"GVMASS_EMAIL"`
	Password string `json:"password" env:"GVMASS_PASSWORD"`

	Endpoints voice.Endpoints `json:"endpoints"`

	SendIntervalSeconds   int    `json:"send_interval_seconds"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
	UserAgent             string `json:"user_agent"`
	CloudflareBypass      bool   `json:"cloudflare_bypass"`
	// DumpHttp is a directory every HTTP exchange is written to.
	DumpHttp string `json:"dump_http" env:"GVMASS_DUMP_HTTP"`

	Telemetry telemetry.Config `json:"telemetry"`
}

func (c Config) sendInterval() time.Duration {
	if c.SendIntervalSeconds <= 0 {
		return outreach.DefaultSendInterval
	}
	return time.Duration(c.SendIntervalSeconds) * time.Second
}

func (c Config) requestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
