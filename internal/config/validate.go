package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// CheckConfigValidity reports every invalid option at once so the user
// can fix the file in a single pass.
func CheckConfigValidity(v *viper.Viper) error {
	var problems []string

	if strings.TrimSpace(v.GetString("data_dir")) == "" {
		problems = append(problems, "data_dir is required")
	}
	switch mode := v.GetString("editor.default_view"); mode {
	case "edit", "preview", "split":
	default:
		problems = append(problems, fmt.Sprintf("editor.default_view must be edit, preview or split (got %q)", mode))
	}
	if v.GetInt("recent.limit") <= 0 {
		problems = append(problems, "recent.limit must be greater than 0")
	}
	if v.GetInt("preview.max_width") < 0 {
		problems = append(problems, "preview.max_width must not be negative")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration:\n  - " + strings.Join(problems, "\n  - "))
	}
	return nil
}
