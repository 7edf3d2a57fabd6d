package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/tagwm/internal/config"
)

// settings edits the config file with a huh form. Values are bound as
// strings and converted on submit.
type settings struct {
	path string
	cfg  *config.Config
	form *huh.Form

	fGapSize        string
	fPaddingTop     string
	fPaddingBottom  string
	fPaddingLeft    string
	fPaddingRight   string
	fBorderWidth    string
	fActiveColor    string
	fInactiveColor  string
	fDefaultLayout  string
	fMasterWidthPct string
}

// openSettings loads the config at path (the default location when empty)
// and builds the form around it.
func openSettings(path string, width int) (*settings, error) {
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	s := newSettings(path, res.Config)
	s.buildForm(width)
	return s, nil
}

func newSettings(path string, cfg *config.Config) *settings {
	return &settings{
		path:            path,
		cfg:             cfg,
		fGapSize:        strconv.Itoa(cfg.GapSize),
		fPaddingTop:     strconv.Itoa(cfg.ScreenPadding.Top),
		fPaddingBottom:  strconv.Itoa(cfg.ScreenPadding.Bottom),
		fPaddingLeft:    strconv.Itoa(cfg.ScreenPadding.Left),
		fPaddingRight:   strconv.Itoa(cfg.ScreenPadding.Right),
		fBorderWidth:    strconv.Itoa(cfg.Border.Width),
		fActiveColor:    cfg.Border.ActiveColor,
		fInactiveColor:  cfg.Border.InactiveColor,
		fDefaultLayout:  string(cfg.Layout.Default),
		fMasterWidthPct: strconv.Itoa(cfg.Layout.MasterWidthPercent),
	}
}

func (s *settings) buildForm(width int) {
	w := max(width-4, 40)

	layoutOpts := []huh.Option[string]{
		huh.NewOption("master-stack", string(config.LayoutModeMasterStack)),
		huh.NewOption("auto", string(config.LayoutModeAuto)),
		huh.NewOption("vertical", string(config.LayoutModeVertical)),
		huh.NewOption("horizontal", string(config.LayoutModeHorizontal)),
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("gap_size").
				Title("Gap Size").
				Description("Pixels between tiled windows").
				Validate(nonNegative).
				Value(&s.fGapSize),

			huh.NewSelect[string]().
				Key("default_layout").
				Title("Default Layout").
				Description("Layout every tag starts with").
				Options(layoutOpts...).
				Value(&s.fDefaultLayout),

			huh.NewInput().
				Key("master_width_percent").
				Title("Master Width").
				Description("Percent of the work area given to the master column (10-90)").
				Validate(percent).
				Value(&s.fMasterWidthPct),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("border_width").
				Title("Border Width").
				Validate(nonNegative).
				Value(&s.fBorderWidth),
			huh.NewInput().
				Key("active_color").
				Title("Active Border Color").
				Description("#rrggbb").
				Validate(color).
				Value(&s.fActiveColor),
			huh.NewInput().
				Key("inactive_color").
				Title("Inactive Border Color").
				Description("#rrggbb").
				Validate(color).
				Value(&s.fInactiveColor),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("padding_top").
				Title("Screen Padding: Top").
				Validate(nonNegative).
				Value(&s.fPaddingTop),
			huh.NewInput().
				Key("padding_bottom").
				Title("Screen Padding: Bottom").
				Validate(nonNegative).
				Value(&s.fPaddingBottom),
			huh.NewInput().
				Key("padding_left").
				Title("Screen Padding: Left").
				Validate(nonNegative).
				Value(&s.fPaddingLeft),
			huh.NewInput().
				Key("padding_right").
				Title("Screen Padding: Right").
				Validate(nonNegative).
				Value(&s.fPaddingRight),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)
}

// apply copies the form values into the config and validates the result.
func (s *settings) apply() error {
	ints := []struct {
		name string
		val  string
		dst  *int
	}{
		{"gap_size", s.fGapSize, &s.cfg.GapSize},
		{"screen_padding.top", s.fPaddingTop, &s.cfg.ScreenPadding.Top},
		{"screen_padding.bottom", s.fPaddingBottom, &s.cfg.ScreenPadding.Bottom},
		{"screen_padding.left", s.fPaddingLeft, &s.cfg.ScreenPadding.Left},
		{"screen_padding.right", s.fPaddingRight, &s.cfg.ScreenPadding.Right},
		{"border.width", s.fBorderWidth, &s.cfg.Border.Width},
		{"layout.master_width_percent", s.fMasterWidthPct, &s.cfg.Layout.MasterWidthPercent},
	}
	for _, f := range ints {
		v, err := strconv.Atoi(f.val)
		if err != nil {
			return fmt.Errorf("%s: %q is not a number", f.name, f.val)
		}
		*f.dst = v
	}
	s.cfg.Border.ActiveColor = s.fActiveColor
	s.cfg.Border.InactiveColor = s.fInactiveColor
	if s.fDefaultLayout != "" {
		s.cfg.Layout.Default = config.LayoutMode(s.fDefaultLayout)
	}
	return s.cfg.Validate()
}

// save applies the form and writes the config file.
func (s *settings) save() error {
	if err := s.apply(); err != nil {
		return err
	}
	return s.cfg.SaveTo(s.path)
}

func (s *settings) view(width, height int) string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Render("Editing Settings") +
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render("  "+s.path+"  (esc to cancel)")

	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2)

	return style.Render(header + "\n\n" + s.form.View())
}

func nonNegative(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("must be a whole number")
	}
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func percent(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("must be a whole number")
	}
	if n < 10 || n > 90 {
		return fmt.Errorf("must be between 10 and 90")
	}
	return nil
}

func color(v string) error {
	_, err := config.ParseColor(v)
	return err
}
