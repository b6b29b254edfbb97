package config

import "testing"

func TestDefaultMatchesStorefrontLimits(t *testing.T) {
	cfg := Default()

	if cfg.Server.MaxBodyBytes != 10*1024 {
		t.Fatalf("max body bytes want 10240 got %d", cfg.Server.MaxBodyBytes)
	}
	if cfg.Security.RateLimit.WindowSeconds != 900 || cfg.Security.RateLimit.MaxRequests != 100 {
		t.Fatalf("unexpected global rate limit: %+v", cfg.Security.RateLimit)
	}
	if cfg.JWT.ExpireHours != 168 {
		t.Fatalf("jwt expire hours want 168 got %d", cfg.JWT.ExpireHours)
	}
	if cfg.Cookie.Name != "token" || !cfg.Cookie.Secure {
		t.Fatalf("unexpected cookie config: %+v", cfg.Cookie)
	}
	if cfg.Review.DailyLimit != 2 {
		t.Fatalf("review daily limit want 2 got %d", cfg.Review.DailyLimit)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORS.AllowedOrigins)
	}
	policy := cfg.Security.PasswordPolicy
	if policy.MinLength != 8 || !policy.RequireUpper || !policy.RequireLower || !policy.RequireNumber || !policy.RequireSpecial {
		t.Fatalf("unexpected password policy: %+v", policy)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REVIEW_DAILY_LIMIT", "5")

	cfg := Load()
	if cfg.Server.Port != "9090" {
		t.Fatalf("server port want 9090 got %s", cfg.Server.Port)
	}
	if cfg.Review.DailyLimit != 5 {
		t.Fatalf("review daily limit want 5 got %d", cfg.Review.DailyLimit)
	}
}

func TestServerConfigIsRelease(t *testing.T) {
	if !(ServerConfig{Mode: " Release "}).IsRelease() {
		t.Fatalf("release mode should be detected")
	}
	if (ServerConfig{Mode: "debug"}).IsRelease() {
		t.Fatalf("debug mode should not be release")
	}
}
