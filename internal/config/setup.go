package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCategoryChoice parses a setup answer of the form "2 12 5 ; 1 20":
// catalog indices to subscribe to, optionally followed by ';' and indices to
// blacklist. It returns the chosen category identifiers in input order.
func ParseCategoryChoice(input string, catalog []string) (whitelist, blacklist []string, err error) {
	parts := strings.Split(input, ";")
	if len(parts) > 2 {
		return nil, nil, fmt.Errorf("%w: more than one ';' in %q", ErrInvalidConfig, input)
	}

	whitelist, err = pickCategories(parts[0], catalog)
	if err != nil {
		return nil, nil, err
	}
	if len(parts) == 2 {
		blacklist, err = pickCategories(parts[1], catalog)
		if err != nil {
			return nil, nil, err
		}
	}
	return whitelist, blacklist, nil
}

func pickCategories(field string, catalog []string) ([]string, error) {
	var out []string
	for _, tok := range strings.Fields(field) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidConfig, tok)
		}
		if n < 0 || n >= len(catalog) {
			return nil, fmt.Errorf("%w: %d is not between 0 and %d", ErrInvalidConfig, n, len(catalog)-1)
		}
		out = append(out, catalog[n])
	}
	return out, nil
}

// ParseKeywords parses a ';'-separated keyword answer such as
// "heisenberg; gravitational waves; f(r,t)". Keywords must be lowercase.
func ParseKeywords(input string) ([]string, error) {
	if strings.ToLower(input) != input {
		return nil, fmt.Errorf("%w: keywords must be lowercase", ErrInvalidConfig)
	}
	return cleanKeywords(strings.Split(input, ";"))
}

// ParseYesNo parses a y/n answer.
func ParseYesNo(input string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not y or n", ErrInvalidConfig, input)
}
