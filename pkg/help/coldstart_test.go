package help

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestColdstartYAMLParses(t *testing.T) {
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(ColdstartYAML), &doc); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	for _, key := range []string{"commands", "input_columns", "tag_columns", "quadrants"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("ColdstartYAML missing %q", key)
		}
	}
}
