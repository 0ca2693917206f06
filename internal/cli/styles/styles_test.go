package styles

import (
	"strings"
	"testing"
	"time"

	"github.com/thenoetrevino/trtodo/internal/config/colors"
	"github.com/thenoetrevino/trtodo/internal/models"
)

func TestFromScheme(t *testing.T) {
	p := FromScheme(*colors.Wave())
	if p.Accent != colors.Wave().Accent || p.High != colors.Wave().High {
		t.Errorf("Palette does not follow the scheme: %+v", p)
	}
	if DefaultPalette.Accent != colors.Default().Accent {
		t.Errorf("Expected default palette from the default preset, got %s", DefaultPalette.Accent)
	}
}

func TestRenderTaskLine(t *testing.T) {
	defer Init(DefaultPalette)
	Init(FromScheme(*colors.Monochrome()))

	due := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)
	line := RenderTaskLine(models.Task{ID: 12, Title: "Write report", Priority: models.PriorityHigh, DueDate: &due})

	for _, want := range []string{"[ ]", "#12", "Write report", "high", "due 2025-03-17"} {
		if !strings.Contains(line, want) {
			t.Errorf("Expected %q in %q", want, line)
		}
	}
}

func TestRenderCategoryLine(t *testing.T) {
	line := RenderCategoryLine(models.Category{ID: 2, Name: "Personal"}, 3, true)
	if !strings.Contains(line, "Personal") || !strings.Contains(line, "(3 tasks)") || !strings.Contains(line, "*") {
		t.Errorf("Unexpected category line %q", line)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("# Plan\n\n- book flights\n- pack `charger`", 40)
	for _, want := range []string{"Plan", "book flights", "charger"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in %q", want, out)
		}
	}

	if got := RenderMarkdown("   ", 40); got != "   " {
		t.Errorf("Expected blank text untouched, got %q", got)
	}

	long := strings.Repeat("word ", 30)
	if lines := strings.Count(RenderMarkdown(long, 30), "\n"); lines < 3 {
		t.Errorf("Expected the paragraph wrapped over several lines, got %d breaks", lines)
	}
}
