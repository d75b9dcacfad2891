package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// readInputFile decodes a JSON or YAML file into v, chosen by extension.
func readInputFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		err = json.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// parseResourceSpec reads "Name:rateX:rateY:capacity".
func parseResourceSpec(s string) (name string, rateX, rateY, capacity float64, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return "", 0, 0, 0, fmt.Errorf("resource %q: want NAME:RATE_X:RATE_Y:CAPACITY", s)
	}
	name = strings.TrimSpace(parts[0])
	nums := make([]float64, 3)
	for i, p := range parts[1:] {
		nums[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return "", 0, 0, 0, fmt.Errorf("resource %q: %q is not a number", s, p)
		}
	}
	return name, nums[0], nums[1], nums[2], nil
}

// parseNamedValue reads "Name=value".
func parseNamedValue(s string) (string, float64, error) {
	i := strings.LastIndex(s, "=")
	if i <= 0 {
		return "", 0, fmt.Errorf("%q: want NAME=VALUE", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s[i+1:]), 64)
	if err != nil {
		return "", 0, fmt.Errorf("%q: %q is not a number", s, s[i+1:])
	}
	return strings.TrimSpace(s[:i]), v, nil
}
