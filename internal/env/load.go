package env

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Variables read by the demo.
const (
	ConfigPath = "DEMO_CONFIG"
	ScenePath  = "DEMO_SCENE"
	LogPath    = "DEMO_LOG"
)

// Parse reads KEY=VALUE lines from path. Blank lines and # comments are skipped,
// an optional "export " prefix is accepted and matching surrounding quotes are removed.
// A missing file yields an empty map.
func Parse(path string) (map[string]string, error) {
	vars := make(map[string]string)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return vars, nil
		}
		return nil, fmt.Errorf("env: %w", err)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		vars[key] = unquote(strings.TrimSpace(value))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	return vars, nil
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' && v[len(v)-1] == '"' || v[0] == '\'' && v[len(v)-1] == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}

// Load applies the file's variables to the process environment. Variables already set
// in the real environment win over the file.
func Load(path string) error {
	vars, err := Parse(path)
	if err != nil {
		return err
	}
	for k, v := range vars {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		_ = os.Setenv(k, v)
	}
	return nil
}

// Get returns the variable or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
