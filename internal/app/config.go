package app

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/Pratik-Gohel/Viva-management/internal/reports"
)

type Config struct {
	Server struct {
		Port       string `toml:"port"`
		EnableAuth bool   `toml:"enable_auth"`
	} `toml:"server"`

	Auth struct {
		RedisURL         string `toml:"redis_url"`
		TokenHeader      string `toml:"token_header"`
		ClerkHeader      string `toml:"clerk_header"`
		TokenKeyTemplate string `toml:"token_key_template"`
		AdminToken       string `toml:"admin_token"`
	} `toml:"auth"`

	Database struct {
		DSN           string `toml:"dsn"`
		MigrationsDir string `toml:"migrations_dir"`
	} `toml:"database"`

	Exam struct {
		StateFile string `toml:"state_file"`
	} `toml:"exam"`

	Payment reports.Constants `toml:"payment"`

	BranchCodes map[string]int `toml:"branch_codes"`

	Export struct {
		DailySheetName   string `toml:"daily_sheet_name"`
		CoverSheetName   string `toml:"cover_sheet_name"`
		PaymentSheetName string `toml:"payment_sheet_name"`
	} `toml:"export"`
}

// defaultBranchCodes is the institute's department numbering used on cover
// sheets. Overridable per deployment via [branch_codes].
var defaultBranchCodes = map[string]int{
	"EC":    11,
	"IT":    16,
	"CE":    7,
	"MECH":  19,
	"CIVIL": 6,
	"ICT":   32,
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(
			"error reading config file %s\n> Error: %w\n> Content:\n%s",
			path,
			err,
			string(data),
		)
	}

	if config.Server.Port == "" {
		return nil, fmt.Errorf("Server port is not specified in config, use a value like :9999")
	}
	config.ApplyDefaults()

	logger.Debug.Printf("Loaded payment constants: %+v", config.Payment)

	return &config, nil
}

// ApplyDefaults fills the optional sections so handlers and exporters never
// see zero values for configuration-backed constants.
func (c *Config) ApplyDefaults() {
	if c.Database.MigrationsDir == "" {
		c.Database.MigrationsDir = "./migrations"
	}
	if c.Exam.StateFile == "" {
		c.Exam.StateFile = "current_exam.txt"
	}
	if c.Auth.TokenHeader == "" {
		c.Auth.TokenHeader = "Authorization"
	}
	if c.Auth.ClerkHeader == "" {
		c.Auth.ClerkHeader = "X-Clerk-Id"
	}
	if c.Auth.TokenKeyTemplate == "" {
		c.Auth.TokenKeyTemplate = "auth:{clerk}"
	}
	if c.BranchCodes == nil {
		c.BranchCodes = defaultBranchCodes
	}
	if c.Payment.FixedColumn == "" {
		c.Payment.FixedColumn = "10"
	}
	if c.Payment.Location == "" {
		c.Payment.Location = "Bhavnagar"
	}
	if c.Payment.PaymentMode == "" {
		c.Payment.PaymentMode = "NEFT"
	}
	if c.Payment.Institution == "" {
		c.Payment.Institution = "GEC"
	}
	if c.Export.DailySheetName == "" {
		c.Export.DailySheetName = "Viva Daily Sheet"
	}
	if c.Export.CoverSheetName == "" {
		c.Export.CoverSheetName = "Viva Cover Sheet"
	}
	if c.Export.PaymentSheetName == "" {
		c.Export.PaymentSheetName = "Viva Payment Details"
	}
}
