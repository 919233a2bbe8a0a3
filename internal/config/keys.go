package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Keys lists the settings that can be read and written by name.
var Keys = []string{
	"style", "colored", "category-whitelist", "category-blacklist", "keyword-blacklist",
	"download-dir", "download-tool", "name-max", "bar-width", "source", "on-fetch-error",
	"email-to", "email-from", "smtp-host", "smtp-port", "smtp-username",
}

// Get returns a setting as text. Lists are joined with "; ".
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "style":
		return c.Style, nil
	case "colored":
		return strconv.FormatBool(c.Colored), nil
	case "category-whitelist":
		return strings.Join(c.CategoryWhitelist, "; "), nil
	case "category-blacklist":
		return strings.Join(c.CategoryBlacklist, "; "), nil
	case "keyword-blacklist":
		return strings.Join(c.KeywordBlacklist, "; "), nil
	case "download-dir":
		return c.DownloadDir, nil
	case "download-tool":
		return c.DownloadTool, nil
	case "name-max":
		return strconv.Itoa(c.NameMax), nil
	case "bar-width":
		return strconv.Itoa(c.BarWidth), nil
	case "source":
		return c.Source, nil
	case "on-fetch-error":
		return c.OnFetchError, nil
	case "email-to":
		return c.Email.To, nil
	case "email-from":
		return c.Email.From, nil
	case "smtp-host":
		return c.Email.SMTPHost, nil
	case "smtp-port":
		return strconv.Itoa(c.Email.SMTPPort), nil
	case "smtp-username":
		return c.Email.Username, nil
	}
	return "", fmt.Errorf("unknown configuration key: %s", key)
}

// Set updates a setting from text and revalidates the configuration.
// List values are separated by ';'.
func (c *Config) Set(key, value string) error {
	switch key {
	case "style":
		c.Style = value
	case "colored":
		b, err := ParseYesNo(value)
		if err != nil {
			if b, err = strconv.ParseBool(value); err != nil {
				return fmt.Errorf("%w: colored must be y/n or true/false", ErrInvalidConfig)
			}
		}
		c.Colored = b
	case "category-whitelist":
		c.CategoryWhitelist = strings.Split(value, ";")
	case "category-blacklist":
		c.CategoryBlacklist = strings.Split(value, ";")
	case "keyword-blacklist":
		c.KeywordBlacklist = strings.Split(value, ";")
	case "download-dir":
		c.DownloadDir = value
	case "download-tool":
		c.DownloadTool = value
	case "name-max":
		return c.setInt(&c.NameMax, key, value)
	case "bar-width":
		return c.setInt(&c.BarWidth, key, value)
	case "source":
		c.Source = value
	case "on-fetch-error":
		c.OnFetchError = value
	case "email-to":
		c.Email.To = value
	case "email-from":
		c.Email.From = value
	case "smtp-host":
		c.Email.SMTPHost = value
	case "smtp-port":
		return c.setInt(&c.Email.SMTPPort, key, value)
	case "smtp-username":
		c.Email.Username = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return c.Normalize()
}

func (c *Config) setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%w: %s must be a number, got %q", ErrInvalidConfig, key, value)
	}
	*dst = n
	return c.Normalize()
}
