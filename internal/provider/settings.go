package provider

import "time"

// Profile settings are an opaque blob owned by the provider that consumes
// them. These helpers pull the few keys the built-in providers understand;
// unknown keys are ignored.

func settingFloat(settings map[string]any, key string) (float64, bool) {
	if settings == nil {
		return 0, false
	}
	switch v := settings[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func settingInt(settings map[string]any, key string) (int, bool) {
	if settings == nil {
		return 0, false
	}
	switch v := settings[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// requestTimeout returns the HTTP timeout for a profile, defaulting to 120s.
func requestTimeout(settings map[string]any) time.Duration {
	if seconds, ok := settingInt(settings, "timeout_seconds"); ok && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return 120 * time.Second
}

// applyRequestSettings folds profile-level defaults into a request when the
// caller left them unset.
func applyRequestSettings(req CompletionRequest, settings map[string]any) CompletionRequest {
	if req.Temperature == 0 {
		if temp, ok := settingFloat(settings, "temperature"); ok {
			req.Temperature = temp
		}
	}
	if req.MaxTokens == 0 {
		if tokens, ok := settingInt(settings, "max_tokens"); ok {
			req.MaxTokens = tokens
		}
	}
	return req
}
