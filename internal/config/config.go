// Package config loads analyzer and server settings from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete tool configuration.
type Config struct {
	Server   *ServerSettings   `hcl:"server,block"`
	Analysis *AnalysisSettings `hcl:"analysis,block"`
}

// ServerSettings configures the upload/analyze HTTP server.
type ServerSettings struct {
	Address     string `hcl:"address,optional"`
	MaxUploadMB int    `hcl:"max_upload_mb,optional"`
	LogLevel    string `hcl:"log_level,optional"`
}

// AnalysisSettings configures defaults for analysis runs.
type AnalysisSettings struct {
	// BigBlind overrides auto-detection when > 0.
	BigBlind float64 `hcl:"big_blind,optional"`
	CSVOut   string  `hcl:"csv_out,optional"`
	JSONOut  string  `hcl:"json_out,optional"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Server: &ServerSettings{
			Address:     ":8000",
			MaxUploadMB: 32,
			LogLevel:    "info",
		},
		Analysis: &AnalysisSettings{
			CSVOut:  "player_stats_summary.csv",
			JSONOut: "player_stats_summary.json",
		},
	}
}

// Load parses an HCL configuration file. A missing file yields the defaults;
// missing values inside the file are filled from them.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	p := hclparse.NewParser()
	file, diags := p.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	def := Default()
	if cfg.Server == nil {
		cfg.Server = def.Server
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = def.Server.Address
	}
	if cfg.Server.MaxUploadMB == 0 {
		cfg.Server.MaxUploadMB = def.Server.MaxUploadMB
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = def.Server.LogLevel
	}
	if cfg.Analysis == nil {
		cfg.Analysis = def.Analysis
	}
	if cfg.Analysis.CSVOut == "" {
		cfg.Analysis.CSVOut = def.Analysis.CSVOut
	}
	if cfg.Analysis.JSONOut == "" {
		cfg.Analysis.JSONOut = def.Analysis.JSONOut
	}

	return &cfg, nil
}
