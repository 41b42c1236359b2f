package ui

import "testing"

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "15;0")
	dark := DetectTheme()
	if !dark.IsDark {
		t.Fatalf("expected dark theme for COLORFGBG=15;0")
	}

	t.Setenv("COLORFGBG", "0;15")
	light := DetectTheme()
	if light.IsDark {
		t.Fatalf("expected light theme for COLORFGBG=0;15")
	}

	t.Setenv("COLORFGBG", "")
	fallback := DetectTheme()
	if fallback.IsDark {
		t.Fatalf("expected light theme when COLORFGBG is unset")
	}
}

func TestThemeFromName(t *testing.T) {
	t.Setenv("COLORFGBG", "0;15")

	if !ThemeFromName("dark").IsDark {
		t.Error("expected dark theme for name \"dark\"")
	}
	if ThemeFromName("light").IsDark {
		t.Error("expected light theme for name \"light\"")
	}
	if ThemeFromName(" DARK ").IsDark != true {
		t.Error("expected theme names to be case and space insensitive")
	}
	if ThemeFromName("auto").IsDark {
		t.Error("expected auto to fall back to detection")
	}
}
