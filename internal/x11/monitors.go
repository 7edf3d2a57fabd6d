package x11

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xinerama"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// GetMonitors retrieves all active monitors. RandR is preferred; servers
// without it fall back to Xinerama and finally to the root window.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	monitors, err := c.randrMonitors()
	if err == nil && len(monitors) > 0 {
		return monitors, nil
	}
	if monitors, err := c.xineramaMonitors(); err == nil && len(monitors) > 0 {
		return monitors, nil
	}
	w, h := c.RootSize()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("no monitors found")
	}
	return []Monitor{{ID: 0, Name: "root", Width: w, Height: h}}, nil
}

func (c *Connection) randrMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	seen := make(map[[4]int]bool)

	// Query each CRTC for active monitors
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		// Mirrored outputs share one screen.
		key := [4]int{int(crtcInfo.X), int(crtcInfo.Y), int(crtcInfo.Width), int(crtcInfo.Height)}
		if seen[key] {
			continue
		}
		seen[key] = true

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			Name:   outputName,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		})
	}

	sortMonitors(monitors)
	return monitors, nil
}

func (c *Connection) xineramaMonitors() ([]Monitor, error) {
	if err := xinerama.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("xinerama init failed: %w", err)
	}
	reply, err := xinerama.QueryScreens(c.XUtil.Conn()).Reply()
	if err != nil {
		return nil, err
	}
	monitors := make([]Monitor, 0, len(reply.ScreenInfo))
	for i, si := range reply.ScreenInfo {
		monitors = append(monitors, Monitor{
			Name:   fmt.Sprintf("xinerama-%d", i),
			X:      int(si.XOrg),
			Y:      int(si.YOrg),
			Width:  int(si.Width),
			Height: int(si.Height),
		})
	}
	sortMonitors(monitors)
	return monitors, nil
}

// sortMonitors orders monitors left to right, then top to bottom, and
// numbers them in that order.
func sortMonitors(monitors []Monitor) {
	sort.SliceStable(monitors, func(i, j int) bool {
		if monitors[i].X != monitors[j].X {
			return monitors[i].X < monitors[j].X
		}
		return monitors[i].Y < monitors[j].Y
	})
	for i := range monitors {
		monitors[i].ID = i
	}
}
