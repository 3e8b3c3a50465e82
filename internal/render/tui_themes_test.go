package render

import "testing"

func TestTUIThemes_Complete(t *testing.T) {
	for _, name := range TUIThemeNames() {
		theme, ok := GetTUIThemeByName(name)
		if !ok {
			t.Fatalf("GetTUIThemeByName(%q) not found", name)
		}
		if theme.Name != name {
			t.Errorf("theme %q has Name %q", name, theme.Name)
		}
		colors := map[string]string{
			"Border": string(theme.Border),
			"Muted":  string(theme.Muted),
			"Text":   string(theme.Text),
			"User":   string(theme.User),
			"Agent":  string(theme.Agent),
			"Accent": string(theme.Accent),
			"Error":  string(theme.Error),
		}
		for field, c := range colors {
			if c == "" {
				t.Errorf("theme %s has empty %s color", name, field)
			}
		}
	}
}

func TestTUIThemeNames_Sorted(t *testing.T) {
	names := TUIThemeNames()
	want := []string{"catppuccin", "dracula", "nord", "tokyonight"}
	if len(names) != len(want) {
		t.Fatalf("TUIThemeNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestSetTUITheme(t *testing.T) {
	defer SetTUITheme(DefaultTUIThemeName)

	tests := []struct {
		name     string
		input    string
		wantOK   bool
		wantName string
	}{
		{"known", "nord", true, "nord"},
		{"case insensitive", "  Dracula ", true, "dracula"},
		{"unknown keeps current", "solarized", false, "dracula"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SetTUITheme(tt.input); got != tt.wantOK {
				t.Errorf("SetTUITheme(%q) = %v, want %v", tt.input, got, tt.wantOK)
			}
			if got := GetTUITheme().Name; got != tt.wantName {
				t.Errorf("GetTUITheme().Name = %q, want %q", got, tt.wantName)
			}
		})
	}
}
