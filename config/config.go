package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v2"

	"iptrust/trust"
)

// Resolver kinds.
const (
	ResolverIPWhois = "ipwhois"
	ResolverMaxMind = "maxmind"
)

// Main is the top level configuration.
type Main struct {
	Server    Server    `yaml:"server"`
	Engine    Engine    `yaml:"engine"`
	Rules     Rules     `yaml:"rules"`
	Blacklist Blacklist `yaml:"blacklist"`
	Resolver  Resolver  `yaml:"resolver"`
}

// Server configures the HTTP endpoint.
type Server struct {
	Addr string `yaml:"addr"`
}

// Engine configures the scoring policy. NeutralScore and Clamp are pointers so
// absent means disabled.
type Engine struct {
	CaseInsensitiveValues bool   `yaml:"caseInsensitiveValues"`
	NeutralScore          *int   `yaml:"neutralScore"`
	Clamp                 *Clamp `yaml:"clamp"`
}

// Clamp bounds the final score.
type Clamp struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Rules names the persisted rule document. An empty file selects the stock
// rule set.
type Rules struct {
	File string `yaml:"file"`
}

// Blacklist names the persisted blacklist file.
type Blacklist struct {
	File string `yaml:"file"`
}

// Resolver selects and configures the geolocation backend.
type Resolver struct {
	Kind           string `yaml:"kind"`
	BaseURL        string `yaml:"baseURL"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
	CityDB         string `yaml:"cityDB"`
	ASNDB          string `yaml:"asnDB"`
}

// Timeout returns the resolver's transport timeout.
func (r Resolver) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// Default returns the configuration used when no file is given.
func Default() Main {
	return Main{
		Server:    Server{Addr: ":8181"},
		Blacklist: Blacklist{File: "blacklist.txt"},
		Resolver:  Resolver{Kind: ResolverIPWhois, TimeoutSeconds: 10},
	}
}

// Load reads and validates the YAML configuration at path, applying defaults
// for absent fields.
func Load(fs trust.FileSystem, path string) (Main, error) {
	c := Default()

	data, err := fs.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("reading config file %s: %v", path, err)
	}

	if err = yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parsing config file %s: %v", path, err)
	}

	if c.Resolver.Kind == "" {
		c.Resolver.Kind = ResolverIPWhois
	}
	if c.Resolver.Kind != ResolverIPWhois && c.Resolver.Kind != ResolverMaxMind {
		return c, fmt.Errorf("unknown resolver kind %q", c.Resolver.Kind)
	}
	if c.Resolver.Kind == ResolverMaxMind && c.Resolver.CityDB == "" {
		return c, fmt.Errorf("resolver kind %q requires cityDB", ResolverMaxMind)
	}
	if c.Resolver.TimeoutSeconds <= 0 {
		c.Resolver.TimeoutSeconds = 10
	}
	if c.Engine.Clamp != nil && c.Engine.Clamp.Min > c.Engine.Clamp.Max {
		return c, fmt.Errorf("clamp min %d is greater than max %d", c.Engine.Clamp.Min, c.Engine.Clamp.Max)
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8181"
	}

	return c, nil
}
