package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    Server    `yaml:"server" json:"server"`
	Data      Data      `yaml:"data" json:"data"`
	Sweep     Sweep     `yaml:"sweep" json:"sweep"`
	Schedule  Schedule  `yaml:"schedule" json:"schedule"`
	Challenge Challenge `yaml:"challenge" json:"challenge"`
	CORS      CORS      `yaml:"cors" json:"cors"`
}

type Server struct {
	Addr string `yaml:"addr" json:"addr"`
}

type Data struct {
	Dir string `yaml:"dir" json:"dir"`
}

type Sweep struct {
	IntervalSeconds int  `yaml:"interval_seconds" json:"interval_seconds"`
	RunOnLoad       bool `yaml:"run_on_load" json:"run_on_load"`
}

type Schedule struct {
	DefaultSlotStart string `yaml:"default_slot_start" json:"default_slot_start"`
	DefaultSlotEnd   string `yaml:"default_slot_end" json:"default_slot_end"`
}

type Challenge struct {
	GridSize int `yaml:"grid_size" json:"grid_size"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
}

func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Sweep.IntervalSeconds <= 0 {
		c.Sweep.IntervalSeconds = 60
	}
	if c.Schedule.DefaultSlotStart == "" {
		c.Schedule.DefaultSlotStart = "09:00"
	}
	if c.Schedule.DefaultSlotEnd == "" {
		c.Schedule.DefaultSlotEnd = "10:00"
	}
	if c.Challenge.GridSize <= 0 {
		c.Challenge.GridSize = 90
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
}

// Load reads a YAML config file. A missing file is not an error; defaults
// apply.
func Load(path string) (*Config, error) {
	var r Config
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			r.ApplyDefaults()
			return &r, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	return &r, nil
}
