package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/matsen/axd/internal/filter"
	"github.com/matsen/axd/internal/paper"
)

// ErrInvalidConfig is returned for settings the pipeline cannot run with.
var ErrInvalidConfig = errors.New("invalid configuration")

// styleToken matches the $attribute placeholders of a filename style.
var styleToken = regexp.MustCompile(`\$([A-Za-z]+)`)

// Validate checks the configuration and trims list entries in place.
func (c *Config) Validate() error {
	if err := ValidateStyle(c.Style); err != nil {
		return err
	}

	var err error
	if c.CategoryWhitelist, err = cleanCategories("category_whitelist", c.CategoryWhitelist); err != nil {
		return err
	}
	if c.CategoryBlacklist, err = cleanCategories("category_blacklist", c.CategoryBlacklist); err != nil {
		return err
	}
	if c.KeywordBlacklist, err = cleanKeywords(c.KeywordBlacklist); err != nil {
		return err
	}

	if c.Source != SourceHTML && c.Source != SourceRSS {
		return fmt.Errorf("%w: source must be %q or %q, got %q", ErrInvalidConfig, SourceHTML, SourceRSS, c.Source)
	}
	if c.OnFetchError != OnErrorHalt && c.OnFetchError != OnErrorSkip {
		return fmt.Errorf("%w: on_fetch_error must be %q or %q, got %q", ErrInvalidConfig, OnErrorHalt, OnErrorSkip, c.OnFetchError)
	}
	if c.BarWidth < 0 {
		return fmt.Errorf("%w: bar_width must not be negative", ErrInvalidConfig)
	}
	if c.NameMax < 0 {
		return fmt.Errorf("%w: name_max must not be negative", ErrInvalidConfig)
	}
	if c.Email.To != "" && !strings.Contains(c.Email.To, "@") {
		return fmt.Errorf("%w: email.to is not an address: %q", ErrInvalidConfig, c.Email.To)
	}
	return nil
}

// ValidateStyle checks that every $placeholder of a filename style names a
// paper attribute.
func ValidateStyle(style string) error {
	if strings.TrimSpace(style) == "" {
		return fmt.Errorf("%w: empty filename style", ErrInvalidConfig)
	}
	for _, m := range styleToken.FindAllStringSubmatch(style, -1) {
		if !paper.IsAttribute(m[1]) {
			return fmt.Errorf("%w: unknown style attribute $%s (available: %s)",
				ErrInvalidConfig, m[1], strings.Join(paper.Attributes, ", "))
		}
	}
	return nil
}

func cleanCategories(field string, cats []string) ([]string, error) {
	var out []string
	for _, c := range cats {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if strings.ContainsAny(c, " \t/") {
			return nil, fmt.Errorf("%w: %s entry %q is not a category identifier", ErrInvalidConfig, field, c)
		}
		out = append(out, c)
	}
	return out, nil
}

func cleanKeywords(kws []string) ([]string, error) {
	var out []string
	for _, k := range kws {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if strings.ToLower(k) != k {
			return nil, fmt.Errorf("%w: keyword %q is not lowercase", ErrInvalidConfig, k)
		}
		out = append(out, k)
	}
	return out, nil
}

// Blacklist returns the filter rules of the configuration.
func (c *Config) Blacklist() filter.Blacklist {
	return filter.Blacklist{
		Categories: c.CategoryBlacklist,
		Keywords:   c.KeywordBlacklist,
	}
}

// Policy returns the pipeline error policy.
func (c *Config) Policy() filter.ErrorPolicy {
	if c.OnFetchError == OnErrorSkip {
		return filter.SkipOnError
	}
	return filter.HaltOnError
}
