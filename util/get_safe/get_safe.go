package getsafe

func String(payload map[string]any, key string) string {
	if v, ok := payload[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func Float(payload map[string]any, key string) (float64, bool) {
	if v, ok := payload[key]; ok {
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		}
	}
	return 0, false
}

func Int(payload map[string]any, key string) (int, bool) {
	if f, ok := Float(payload, key); ok {
		return int(f), true
	}
	return 0, false
}

func StringSlice(payload map[string]any, key string) []string {
	v, ok := payload[key]
	if !ok {
		return nil
	}

	raw, ok := v.([]any)
	if !ok {
		return nil
	}

	var items []string
	for _, item := range raw {
		if s, ok := item.(string); ok {
			items = append(items, s)
		}
	}

	return items
}

func Metadata(payload map[string]any, key string) map[string]any {
	if v, ok := payload[key]; ok {
		if m, ok := v.(map[string]any); ok {
			return m
		}
	}
	return nil
}
