package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SubscriptionFile declares the symbols a realtime session subscribes to per
// channel. It mirrors the wire subscription shape so the file reads like the
// request it produces.
type SubscriptionFile struct {
	Trades []string `yaml:"trades"`
	Quotes []string `yaml:"quotes"`
	Bars   []string `yaml:"bars"`
}

// Empty reports whether the file names no symbols at all.
func (s SubscriptionFile) Empty() bool {
	return len(s.Trades) == 0 && len(s.Quotes) == 0 && len(s.Bars) == 0
}

// LoadSubscriptions reads a yaml subscription declaration.
func LoadSubscriptions(path string) (SubscriptionFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SubscriptionFile{}, fmt.Errorf("read subscriptions %s: %w", path, err)
	}
	var sub SubscriptionFile
	if err := yaml.Unmarshal(raw, &sub); err != nil {
		return SubscriptionFile{}, fmt.Errorf("parse subscriptions %s: %w", path, err)
	}
	return sub, nil
}
