package main

import (
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/crmfill"
	"github.com/fwojciec/crmfill/autocomplete"
)

// Config is the optional TOML configuration file.
//
//	limit = 5
//	protected_fields = ["initiated-by", "notes"]
//
//	[elements]
//	search_input_id = "crm-search"
//
//	[field_mappings]
//	phone = "contact-phone"
//	bank_zip = ""
type Config struct {
	Elements        crmfill.ElementIDs `toml:"elements"`
	FieldMappings   map[string]string  `toml:"field_mappings"`
	ProtectedFields []string           `toml:"protected_fields"`
	Limit           int                `toml:"limit"`
}

// LoadConfig reads the configuration file at path. An empty path yields the
// zero Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, crmfill.Errorf(crmfill.EINVALID, "reading config %s: %v", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Config{}, crmfill.Errorf(crmfill.EINVALID, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	known := crmfill.DefaultFieldMapping()
	for field := range cfg.FieldMappings {
		if _, ok := known[crmfill.Field(field)]; !ok {
			return Config{}, crmfill.Errorf(crmfill.EINVALID, "unknown field %q in %s", field, path)
		}
	}
	return cfg, nil
}

// Mapping returns the field mapping overrides.
func (c Config) Mapping() crmfill.FieldMapping {
	if len(c.FieldMappings) == 0 {
		return nil
	}
	m := make(crmfill.FieldMapping, len(c.FieldMappings))
	for field, id := range c.FieldMappings {
		m[crmfill.Field(field)] = id
	}
	return m
}

// Controller returns the controller configuration described by c.
func (c Config) Controller(logger *slog.Logger) autocomplete.Config {
	return autocomplete.Config{
		FieldMappings:   c.Mapping(),
		ProtectedFields: c.ProtectedFields,
		Limit:           c.Limit,
		Logger:          logger,
		OnContactSelected: func(contact *crmfill.Contact) {
			logger.Info("contact selected", "contact", contact.Label(), "id", contact.ID)
		},
		OnDataCleared: func() {
			logger.Info("contact data cleared")
		},
	}
}
