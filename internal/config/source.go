package config

import (
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Source is the read contract config.Build consumes: a value for key within
// section, or def when the key is absent.
type Source interface {
	Get(section, key string, def any) any
}

// DefaultSource answers every lookup with the supplied default.
type DefaultSource struct{}

func (DefaultSource) Get(_, _ string, def any) any {
	return def
}

// MapSource reads from nested maps, typically decoded YAML:
// section -> key -> value.
type MapSource map[string]any

func (m MapSource) Get(section, key string, def any) any {
	raw, ok := lookupFold(m, section)
	if !ok || raw == nil {
		return def
	}
	sec, err := cast.ToStringMapE(raw)
	if err != nil {
		return def
	}
	v, ok := lookupFold(sec, key)
	if !ok || v == nil {
		return def
	}
	return v
}

// lookupFold prefers an exact key, then the first case-insensitive match in
// sorted key order.
func lookupFold(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for _, k := range sortedKeys(m) {
		if strings.EqualFold(k, key) {
			return m[k], true
		}
	}
	return nil, false
}

// ViperSource layers config files, HYDROSTRESS_* environment variables and
// bound flags through viper.
type ViperSource struct {
	V *viper.Viper
}

func NewViperSource(v *viper.Viper) ViperSource {
	if v == nil {
		v = viper.GetViper()
	}
	return ViperSource{V: v}
}

func (s ViperSource) Get(section, key string, def any) any {
	path := section + "." + key
	if !s.V.IsSet(path) {
		return def
	}
	v := s.V.Get(path)
	if v == nil {
		return def
	}
	return v
}
