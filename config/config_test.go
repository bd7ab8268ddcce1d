package config

import (
	"errors"
	"testing"
)

type mockGetter struct {
	getFunc func(path string) (any, error)
}

func (m *mockGetter) Get(path string) (any, error) {
	return m.getFunc(path)
}

func staticGetter(value any) *mockGetter {
	return &mockGetter{
		getFunc: func(string) (any, error) {
			return value, nil
		},
	}
}

type simpleConfig struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

type configWithDefaults struct {
	Name    string `yaml:"name"`
	changed bool
}

func (c *configWithDefaults) SetDefaults() bool {
	return c.changed
}

type configWithValidator struct {
	Name string `yaml:"name"`
	err  error
}

func (c *configWithValidator) Validate() error {
	return c.err
}

type configWithBoth struct {
	Name    string `yaml:"name"`
	Port    int    `yaml:"port"`
	changed bool
	err     error
}

func (c *configWithBoth) SetDefaults() bool {
	return c.changed
}

func (c *configWithBoth) Validate() error {
	return c.err
}

func TestProvider_Success(t *testing.T) {
	t.Parallel()

	target := &simpleConfig{}

	var requested string

	getter := &mockGetter{
		getFunc: func(path string) (any, error) {
			requested = path

			return map[string]any{"name": "test", "port": int64(8080)}, nil
		},
	}

	provider := Provider(target, "services/api.yaml")

	result, err := provider(getter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result != target {
		t.Error("expected result to be the same as target")
	}

	if requested != "services/api.yaml" {
		t.Errorf("expected path 'services/api.yaml', got %q", requested)
	}

	if result.Name != "test" || result.Port != 8080 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestProvider_ScalarTarget(t *testing.T) {
	t.Parallel()

	port := 0

	result, err := Provider(&port, "db/port")(staticGetter(int64(5432)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *result != 5432 {
		t.Errorf("expected 5432, got %d", *result)
	}
}

func TestProvider_WithValidation_Success(t *testing.T) {
	t.Parallel()

	target := &configWithValidator{err: nil}
	provider := Provider(target, "test/path")

	result, err := provider(staticGetter(map[string]any{"name": "x"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result != target {
		t.Error("expected result to be the same as target")
	}
}

func TestProvider_WithDefaultsAndValidation_Success(t *testing.T) {
	t.Parallel()

	target := &configWithBoth{changed: true, err: nil}
	provider := Provider(target, "test/path")

	result, err := provider(staticGetter(map[string]any{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result != target {
		t.Error("expected result to be the same as target")
	}
}

func TestProvider_Errors(t *testing.T) {
	t.Parallel()

	getErr := errors.New("get failed")
	validationErr := errors.New("validation failed")

	tests := []struct {
		name      string
		getFunc   func(path string) (any, error)
		targetErr error
		wantErr   error
	}{
		{
			name: "get error",
			getFunc: func(string) (any, error) {
				return nil, getErr
			},
			targetErr: nil,
			wantErr:   getErr,
		},
		{
			name: "validation error",
			getFunc: func(string) (any, error) {
				return map[string]any{"name": "x"}, nil
			},
			targetErr: validationErr,
			wantErr:   validationErr,
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			target := &configWithBoth{err: testInfo.targetErr}
			getter := &mockGetter{getFunc: testInfo.getFunc}

			provider := Provider(target, "test/path")

			result, err := provider(getter)

			if result != nil {
				t.Error("expected result to be nil")
			}

			if err == nil {
				t.Fatal("expected error, got nil")
			}

			if !errors.Is(err, testInfo.wantErr) {
				t.Errorf("expected error to wrap %v, got %v", testInfo.wantErr, err)
			}
		})
	}
}

func TestProvider_DecodeError(t *testing.T) {
	t.Parallel()

	target := &configWithBoth{}
	provider := Provider(target, "test/path")

	result, err := provider(staticGetter(map[string]any{"port": "not a number"}))

	if result != nil {
		t.Error("expected result to be nil")
	}

	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestProvider_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		changed bool
	}{
		{
			name:    "defaults changed",
			changed: true,
		},
		{
			name:    "defaults not changed",
			changed: false,
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			target := &configWithDefaults{changed: testInfo.changed}
			provider := Provider(target, "test/path")

			result, err := provider(staticGetter(map[string]any{"name": "x"}))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result != target {
				t.Error("expected result to be the same as target")
			}
		})
	}
}

func TestGetterFunc(t *testing.T) {
	t.Parallel()

	var getter Getter = GetterFunc(func(path string) (any, error) {
		return path, nil
	})

	value, err := getter.Get("a/b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if value != "a/b" {
		t.Errorf("expected 'a/b', got %v", value)
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	var target struct {
		Hosts []string       `yaml:"hosts"`
		Limit float64        `yaml:"limit"`
		Extra map[string]any `yaml:"extra"`
	}

	err := Decode(map[string]any{
		"hosts": []any{"a", "b"},
		"limit": 0.5,
		"extra": map[string]any{"enabled": true},
	}, &target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(target.Hosts) != 2 || target.Hosts[1] != "b" {
		t.Errorf("unexpected hosts %v", target.Hosts)
	}

	if target.Limit != 0.5 {
		t.Errorf("expected limit 0.5, got %v", target.Limit)
	}

	if target.Extra["enabled"] != true {
		t.Errorf("unexpected extra %v", target.Extra)
	}
}
