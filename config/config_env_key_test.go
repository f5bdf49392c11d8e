package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"services": map[string]any{
			"cart":  "http://localhost:3014",
			"order": "http://localhost:3015",
		},
		"session": map[string]any{
			"tokenCookie":    "authToken",
			"verifyCacheTtl": "5m",
		},
		"upstream": map[string]any{
			"voteTimeout": "5s",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "SERVICES_CART", want: "services.cart"},
		{envKey: "SESSION_TOKENCOOKIE", want: "session.tokenCookie"},
		{envKey: "SESSION_VERIFYCACHETTL", want: "session.verifyCacheTtl"},
		{envKey: "UPSTREAM_VOTETIMEOUT", want: "upstream.voteTimeout"},
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
