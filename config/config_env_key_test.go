package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"geolocation": map[string]any{
			"maxCacheAge": "30s",
		},
		"ranking": map[string]any{
			"defaultRadiusKm": 10.0,
		},
		"pubsub": map[string]any{
			"dealTopicId": "",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "GEOLOCATION_MAXCACHEAGE", want: "geolocation.maxCacheAge"},
		{envKey: "RANKING_DEFAULTRADIUSKM", want: "ranking.defaultRadiusKm"},
		{envKey: "PUBSUB_DEALTOPICID", want: "pubsub.dealTopicId"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
