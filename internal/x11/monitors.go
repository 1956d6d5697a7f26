package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
)

// Monitor is one enabled CRTC and the first output driving it.
type Monitor struct {
	Output  randr.Output
	Name    string
	X       int16
	Y       int16
	Width   uint16
	Height  uint16
	Primary bool
}

// Monitors lists enabled CRTCs in server order. A CRTC whose info cannot be
// read is skipped; an output whose name cannot be read is named by index.
func (c *Connection) Monitors() ([]Monitor, error) {
	xc := c.XUtil.Conn()
	if err := randr.Init(xc); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(xc, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(xc, c.Root).Reply(); err == nil {
		primary = reply.Output
	}

	monitors := make([]Monitor, 0, len(resources.Crtcs))
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(xc, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		output := info.Outputs[0]
		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(xc, output, resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		monitors = append(monitors, Monitor{
			Output:  output,
			Name:    name,
			X:       info.X,
			Y:       info.Y,
			Width:   info.Width,
			Height:  info.Height,
			Primary: primary != 0 && output == primary,
		})
	}
	return monitors, nil
}

// RootGeometry returns the root window rectangle, which spans every output.
func (c *Connection) RootGeometry() (x, y int16, width, height uint16, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to get root geometry: %w", err)
	}
	return geom.X, geom.Y, geom.Width, geom.Height, nil
}
