/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// yamlDoc is the top-level shellspawn key of a yaml tunables file:
//
//	shellspawn:
//	  proxyForegroundDrainUs: 50
//	  proxyInputConfirmDelayUs: 100
//	  resolverProbeTimeoutMs: 1000
//	  pathOverride: /usr/bin:/bin
type yamlDoc struct {
	ShellSpawn yamlTunables `yaml:"shellspawn"`
}

type yamlTunables struct {
	ProxyForegroundDrainUs   int64  `yaml:"proxyForegroundDrainUs"`
	ProxyInputConfirmDelayUs int64  `yaml:"proxyInputConfirmDelayUs"`
	ResolverProbeTimeoutMs   int64  `yaml:"resolverProbeTimeoutMs"`
	PathOverride             string `yaml:"pathOverride"`
}

// LoadFile parses a yaml tunables file, applying its values on top of base
//   - zero/absent fields in the file leave base's value unchanged
func LoadFile(path string, base Tunables) (t Tunables, err error) {
	t = base
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var doc yamlDoc
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return
	}
	y := doc.ShellSpawn
	if y.ProxyForegroundDrainUs > 0 {
		t.ProxyForegroundDrain = time.Duration(y.ProxyForegroundDrainUs) * time.Microsecond
	}
	if y.ProxyInputConfirmDelayUs > 0 {
		t.ProxyInputConfirmDelay = time.Duration(y.ProxyInputConfirmDelayUs) * time.Microsecond
	}
	if y.ResolverProbeTimeoutMs > 0 {
		t.ResolverProbeTimeout = time.Duration(y.ResolverProbeTimeoutMs) * time.Millisecond
	}
	if y.PathOverride != "" {
		t.PathOverride = y.PathOverride
	}
	return
}
