package criteria

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/aretw0/domaingen/internal/xmltok"
	"github.com/aretw0/domaingen/pkg/domain"
)

// Criterion types filled from the routes file.
const (
	RoutePlaybackType = "RoutePlaybackType"
	RouteCaptureType  = "RouteCaptureType"
)

// RouteTypes holds the mix port names of the primary module, in document order.
type RouteTypes struct {
	Playback []string // mixPorts with role "source"
	Capture  []string // mixPorts with role "sink"
}

// ReadRouteTypes collects the mixPort names of the first module named "primary" in an
// audio policy routes document (modules/module/mixPorts/mixPort).
func ReadRouteTypes(name string, routes io.Reader) (RouteTypes, error) {
	var rt RouteTypes
	primaries := 0
	err := xmltok.Walk(routes, func(path []xml.StartElement, line int) error {
		switch len(path) {
		case 3:
			if path[1].Name.Local == "modules" && path[2].Name.Local == "module" {
				if n, _ := xmltok.Attr(path[2], "name"); n == "primary" {
					primaries++
				}
			}
		case 5:
			if primaries != 1 || !isPrimaryMixPort(path) {
				return nil
			}
			port, _ := xmltok.Attr(path[4], "name")
			switch role, _ := xmltok.Attr(path[4], "role"); role {
			case "source":
				rt.Playback = append(rt.Playback, port)
			case "sink":
				rt.Capture = append(rt.Capture, port)
			}
		}
		return nil
	})
	if err != nil {
		return RouteTypes{}, asInputError(name, err)
	}
	if primaries == 0 {
		return RouteTypes{}, &domain.InputFormatError{File: name, Element: "module", Reason: `no module named "primary"`}
	}
	return rt, nil
}

func isPrimaryMixPort(path []xml.StartElement) bool {
	if path[1].Name.Local != "modules" || path[2].Name.Local != "module" ||
		path[3].Name.Local != "mixPorts" || path[4].Name.Local != "mixPort" {
		return false
	}
	n, _ := xmltok.Attr(path[2], "name")
	return n == "primary"
}

// FillRouteTypes rewrites the values of the RoutePlaybackType and RouteCaptureType criterion
// types with the primary module's mix ports, copying the rest of the types document unchanged.
func FillRouteTypes(routesName string, routes io.Reader, typesName string, types io.Reader, out io.Writer, opts ...Option) error {
	o := newOptions(opts)

	rt, err := ReadRouteTypes(routesName, routes)
	if err != nil {
		return err
	}
	playback := strings.Join(rt.Playback, ",")
	capture := strings.Join(rt.Capture, ",")
	o.logger.Info("filling route criterion types", RoutePlaybackType, playback, RouteCaptureType, capture)

	err = xmltok.Rewrite(types, out, func(ancestors []xml.Name, el *xml.StartElement) {
		if len(ancestors) != 1 || el.Name.Local != elemCriterionType {
			return
		}
		switch n, _ := xmltok.Attr(*el, "name"); n {
		case RoutePlaybackType:
			xmltok.SetAttr(el, "values", playback)
		case RouteCaptureType:
			xmltok.SetAttr(el, "values", capture)
		}
	})
	if err != nil {
		return asInputError(typesName, err)
	}
	return nil
}
