package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/go-playground/validator/v10"
	"gopkg.in/ini.v1"
)

const typeKey = "type"

// Registry reads named order-source profiles from an INI file, one section per source:
//
//	[warehouse]
//	type = snowflake
//	account = ...
type Registry interface {
	GetProfiles(ctx context.Context) ([]domain.SourceProfile, error)
	GetProfile(ctx context.Context, name string) (domain.SourceProfile, error)
	// Decode maps the profile's keys onto target (using `ini` tags) and validates it.
	Decode(ctx context.Context, name string, target any) error
}

type cfgRegistry struct {
	cfg      *ini.File
	validate *validator.Validate
}

// NewRegistry loads profiles from path. A missing file yields an empty registry.
func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.LooseLoad(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load source profiles: %w", err)
	}
	return &cfgRegistry{cfg: cfg, validate: validator.New()}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]domain.SourceProfile, error) {
	var profiles []domain.SourceProfile
	for _, section := range cr.cfg.Sections() {
		if section.Name() == ini.DefaultSection || len(section.Keys()) == 0 {
			continue
		}
		profiles = append(profiles, toProfile(section))
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (domain.SourceProfile, error) {
	section, err := cr.section(name)
	if err != nil {
		return domain.SourceProfile{}, err
	}
	return toProfile(section), nil
}

func (cr *cfgRegistry) Decode(_ context.Context, name string, target any) error {
	section, err := cr.section(name)
	if err != nil {
		return err
	}
	if err := section.MapTo(target); err != nil {
		return fmt.Errorf("failed to parse profile %s: %w", name, err)
	}
	if err := cr.validate.Struct(target); err != nil {
		return fmt.Errorf("invalid profile %s: %w", name, err)
	}
	return nil
}

func (cr *cfgRegistry) section(name string) (*ini.Section, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil || name == ini.DefaultSection || len(section.Keys()) == 0 {
		return nil, fmt.Errorf("%w: profile %s", domain.ErrSourceNotFound, name)
	}
	return section, nil
}

func toProfile(section *ini.Section) domain.SourceProfile {
	var sourceType string
	if section.HasKey(typeKey) {
		sourceType = strings.ToLower(section.Key(typeKey).String())
	}

	settings := make(map[string]string)
	for _, key := range section.Keys() {
		if key.Name() == typeKey {
			continue
		}
		settings[key.Name()] = key.String()
	}
	return domain.SourceProfile{
		Name:     section.Name(),
		Type:     domain.SourceType(sourceType),
		Settings: settings,
	}
}
